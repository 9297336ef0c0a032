package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"relwatch/internal/track"
)

// httpError maps the shared error taxonomy onto HTTP statuses. Anything
// unclassified is a 500.
func httpError(err error) error {
	switch {
	case errors.Is(err, track.ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, track.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, track.ErrConflict):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
