package http

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/avdeenkov/hotel_backend/internal/domain"
	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

// parseDate parses a YYYY-MM-DD value.
func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *fiber.Ctx, name string) (int, error) {
	id, err := strconv.Atoi(c.Params(name))
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// statusForError maps domain errors onto HTTP status codes. Anything
// unrecognized is treated as an internal error.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrRoomUnavailable),
		errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrPastCheckIn),
		errors.Is(err, domain.ErrInvalidGuest):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the standard error envelope for err. Unexpected
// errors are logged and surface to the client as a generic 500, so
// wrapped driver internals never leak into responses.
func respondError(c *fiber.Ctx, err error) error {
	status := statusForError(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		message = "internal server error"
	}
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// badRequest writes a 400 with the given message.
func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	})
}
