package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"visitor-management/pkg/apperror"
)

var statusByKind = map[apperror.Kind]int{
	apperror.KindValidation:        fiber.StatusBadRequest,
	apperror.KindUnauthenticated:   fiber.StatusUnauthorized,
	apperror.KindForbidden:         fiber.StatusForbidden,
	apperror.KindNotFound:          fiber.StatusNotFound,
	apperror.KindInvalidTransition: fiber.StatusConflict,
	apperror.KindDuplicate:         fiber.StatusConflict,
}

// ErrorHandler maps apperror kinds to HTTP statuses. Unclassified failures
// become 500; their cause is only echoed back outside production.
func ErrorHandler(logger *slog.Logger, production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}

		var invalid *invalidPayload
		if errors.As(err, &invalid) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": invalid.Error(), "errors": invalid.fields})
		}

		kind := apperror.KindOf(err)
		if status, ok := statusByKind[kind]; ok {
			return c.Status(status).JSON(fiber.Map{"error": apperror.MessageOf(err)})
		}

		logger.Error("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"kind", kind,
			"error", err,
		)

		body := fiber.Map{"error": "internal server error"}
		if !production {
			body["details"] = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(body)
	}
}
