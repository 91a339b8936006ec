package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"kasir/internal/repositories"
	"kasir/internal/services"
)

// statusForError maps the core error taxonomy to HTTP status codes so every
// handler renders failures the same way.
func statusForError(err error) int {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrMalformedSnapshot):
		return fiber.StatusBadRequest
	case errors.Is(err, repositories.ErrDuplicateKey):
		return fiber.StatusConflict
	case errors.Is(err, repositories.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, repositories.ErrStorageBlocked),
		errors.Is(err, repositories.ErrStorageUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, message string, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
