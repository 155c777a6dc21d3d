package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"clubmedia/internal/model"
	"clubmedia/internal/service"
)

// The upload API uses the {success, ...} wire shape consumed by the admin
// screens, not the standardized error envelope of the CRUD routes.

type presignRequest struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
	FileSize int64  `json:"fileSize"`
	Folder   string `json:"folder"`
}

type presignResponse struct {
	Success      bool              `json:"success"`
	PresignedURL string            `json:"presignedUrl,omitempty"`
	PublicURL    string            `json:"publicUrl,omitempty"`
	Key          string            `json:"key,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
	Error        string            `json:"error,omitempty"`
}

type uploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty"`
	Error   string `json:"error,omitempty"`
}

// PresignUpload mints a direct-upload credential for the described file.
func PresignUpload(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req presignRequest
		if err := c.BodyParser(&req); err != nil {
			return writeUploadError(c, fiber.StatusBadRequest, "invalid request body")
		}

		grant, err := svc.IssueUpload(c.UserContext(), model.UploadRequest{
			FileName:    req.FileName,
			ContentType: req.FileType,
			Size:        req.FileSize,
			Folder:      model.Folder(req.Folder),
		})
		if err != nil {
			return writeUploadServiceError(c, err)
		}

		return c.JSON(presignResponse{
			Success:      true,
			PresignedURL: grant.UploadURL,
			PublicURL:    grant.PublicURL,
			Key:          grant.Key,
			Headers:      grant.Headers,
		})
	}
}

// ProxyUpload receives the file through the server and writes it to storage.
// Fallback path for clients whose direct PUT failed.
func ProxyUpload(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeUploadError(c, fiber.StatusBadRequest, "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeUploadError(c, fiber.StatusBadRequest, "cannot open uploaded file")
		}
		defer f.Close()

		url, err := svc.ProxyUpload(c.UserContext(), f, model.UploadRequest{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Folder:      model.Folder(c.FormValue("folder")),
		})
		if err != nil {
			return writeUploadServiceError(c, err)
		}

		return c.JSON(uploadResponse{Success: true, URL: url})
	}
}

// DeleteMedia removes a stored object addressed by its public URL.
func DeleteMedia(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteByURL(c.UserContext(), c.Query("url")); err != nil {
			return writeUploadServiceError(c, err)
		}
		return c.JSON(uploadResponse{Success: true})
	}
}

func writeUploadError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(uploadResponse{Success: false, Error: msg})
}

// writeUploadServiceError maps the service error taxonomy onto HTTP statuses.
// Taxonomy errors are surfaced verbatim so the admin UI can show the reason;
// anything else stays generic.
func writeUploadServiceError(c *fiber.Ctx, err error) error {
	var tooLarge *service.PayloadTooLargeError
	var integrity *service.IntegrityError

	switch {
	case errors.Is(err, service.ErrStorageNotConfigured):
		return writeUploadError(c, fiber.StatusInternalServerError, err.Error())
	case errors.Is(err, service.ErrFileNameRequired),
		errors.Is(err, service.ErrContentTypeRequired),
		errors.Is(err, service.ErrInvalidFolder),
		errors.Is(err, service.ErrURLRequired),
		errors.Is(err, service.ErrReaderNil):
		return writeUploadError(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &tooLarge):
		return writeUploadError(c, fiber.StatusRequestEntityTooLarge, err.Error())
	case errors.As(err, &integrity):
		return writeUploadError(c, fiber.StatusInternalServerError, err.Error())
	default:
		return writeUploadError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
