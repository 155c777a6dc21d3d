package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"clubmedia/internal/service"
)

type createHighlightRequest struct {
	Title        string `json:"title"`
	VideoURL     string `json:"video_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// CreateHighlight persists a highlight record referencing uploaded media.
func CreateHighlight(svc service.HighlightService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createHighlightRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		h, err := svc.Create(c.UserContext(), req.Title, req.VideoURL, req.ThumbnailURL)
		if err != nil {
			if errors.Is(err, service.ErrTitleRequired) || errors.Is(err, service.ErrVideoURLRequired) {
				return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", err.Error())
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(h)
	}
}

// ListHighlights returns highlights with limit & offset.
func ListHighlights(svc service.HighlightService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// GetHighlight returns a highlight by ID.
func GetHighlight(svc service.HighlightService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		h, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "highlight not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(h)
	}
}

// DeleteHighlight removes a highlight record and best-effort deletes its media.
// Media-cleanup warnings come back in the response body; the record is gone
// regardless.
func DeleteHighlight(svc service.HighlightService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		out, err := svc.Delete(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "highlight not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		if len(out.MediaWarnings) > 0 {
			return c.JSON(out)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
