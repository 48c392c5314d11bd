// Package response renders the JSON envelope every endpoint uses and is the
// single place where application errors become HTTP status codes.
package response

import (
	"errors"

	"go-inventory-ledger/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Debug controls whether internal error detail reaches the client. Set from
// config at startup; off outside development.
var Debug bool

// Envelope is the response shape shared by every endpoint: a success flag, a
// human-readable message on failure, and a data payload on success.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Data: data})
}

// OKCount is used for list endpoints that report the result size.
func OKCount(c *fiber.Ctx, count int, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Count: &count, Data: data})
}

func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Data: data})
}

// OKMessage reports a successful operation that has no payload.
func OKMessage(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Message: message})
}

func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope{Success: false, Message: message})
}

// Error translates an application error into the envelope. Routine outcomes
// (invalid input, insufficient stock) pass their message through untouched;
// unexpected failures are logged server-side and reported generically unless
// Debug is on.
func Error(c *fiber.Ctx, err error) error {
	switch {
	case apperr.IsInsufficientStock(err):
		return Fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrInvalidArgument):
		return Fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		return Fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrUnauthenticated):
		return Fail(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		return Fail(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, apperr.ErrConflict):
		return Fail(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, apperr.ErrUnavailable):
		logrus.WithError(err).Warn("external collaborator unavailable")
		return Fail(c, fiber.StatusServiceUnavailable, err.Error())
	default:
		logrus.WithError(err).WithField("path", c.Path()).Error("unhandled error")
		if Debug {
			return Fail(c, fiber.StatusInternalServerError, err.Error())
		}
		return Fail(c, fiber.StatusInternalServerError, "Server Error")
	}
}
