package response

import (
	"achievement-tracker/core/errs"

	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the error part of a failure envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Failure is the envelope returned when an operation fails.
type Failure struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// OK writes a success envelope with the given fields merged in.
func OK(c *fiber.Ctx, fields fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	return c.JSON(body)
}

// Error writes a failure envelope. The status follows the error kind.
func Error(c *fiber.Ctx, err error) error {
	kind := errs.KindOf(err)
	return c.Status(StatusFor(kind)).JSON(Failure{
		Success: false,
		Error:   ErrorBody{Code: string(kind), Message: err.Error()},
	})
}

// StatusFor maps an error kind to an HTTP status.
func StatusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound:
		return fiber.StatusNotFound
	case errs.KindInvalidInput:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
