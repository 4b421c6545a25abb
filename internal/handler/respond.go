package handler

import (
	"errors"

	"go-stock-tracker/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// statusOf maps error kinds to HTTP statuses. Storage details never reach
// the caller; only the kind and display message do.
func statusOf(kind apperror.Kind) int {
	switch kind {
	case apperror.KindInvalidInput, apperror.KindInsufficientStock:
		return fiber.StatusBadRequest
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(c *fiber.Ctx, err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		msg := appErr.Message
		if appErr.Kind == apperror.KindStorage {
			msg = "Server error"
		}
		return c.Status(statusOf(appErr.Kind)).JSON(fiber.Map{
			"kind":  string(appErr.Kind),
			"error": msg,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
}

// Helpers to pull identity from the auth middleware's locals.
func actorID(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok {
		return id
	}
	return "system"
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}
