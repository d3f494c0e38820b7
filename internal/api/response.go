package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/HarshChauhan111/stream-sync-lite/internal/service"
)

// Every response uses the same envelope: success flag, optional message,
// optional data, optional error detail.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respondOK(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(envelope{Success: true, Message: message, Data: data})
}

func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(envelope{Success: false, Message: message})
}

func statusForKind(kind service.Kind) int {
	switch kind {
	case service.KindValidation:
		return fiber.StatusBadRequest
	case service.KindConflict:
		return fiber.StatusConflict
	case service.KindUnauthorized:
		return fiber.StatusUnauthorized
	case service.KindForbidden:
		return fiber.StatusForbidden
	case service.KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// respondServiceError maps a categorized service error to its status code.
// Anything uncategorized becomes a 500; the underlying message is echoed
// only outside production.
func respondServiceError(c *fiber.Ctx, err error, production bool) error {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		return respondError(c, statusForKind(svcErr.Kind), svcErr.Message)
	}

	slog.Error("unhandled error", "path", c.Path(), "error", err)

	resp := envelope{Success: false, Message: "Internal server error"}
	if !production {
		resp.Error = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(resp)
}
