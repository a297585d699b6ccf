package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/cliniccare/clinic-api/scheduler"
)

// ErrorResponse is a struct for error response
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// StatusForError maps engine errors onto HTTP status codes. Anything
// unrecognized is a storage or programming failure and becomes a 500.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, scheduler.ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, scheduler.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, scheduler.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, scheduler.ErrSlotConflict):
		return fiber.StatusConflict
	case errors.Is(err, scheduler.ErrInvalidTransition),
		errors.Is(err, scheduler.ErrInvalidInput):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// Fail renders an engine error. Internal failure details stay out of the
// payload; only domain errors carry their message through.
func Fail(c *fiber.Ctx, err error, message string) error {
	status := StatusForError(err)
	resp := ErrorResponse{Message: message}
	if status != fiber.StatusInternalServerError {
		resp.Error = err.Error()
	}
	return c.Status(status).JSON(resp)
}
