package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request ID between client, server, and response.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is where the request ID lives in fiber's per-request locals.
	RequestIDLocalKey = "request_id"
)

// RequestID tags every request with an ID for log and error-envelope
// correlation: the caller-supplied X-Request-ID when present, otherwise a
// fresh UUID. The ID is stored in locals for downstream handlers and echoed
// on the response header.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)

		return c.Next()
	}
}
