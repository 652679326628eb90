// Package api exposes the REST surface of the dashboard over Fiber.
package api

import (
	"errors"

	"github.com/asnhub/asndash/internal/common"
	"github.com/gofiber/fiber/v2"
)

// ok writes the standard success envelope.
func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

// fail writes the standard failure envelope with the given status.
func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}

// failErr maps domain sentinel errors to HTTP statuses. Unknown errors are
// reported as 500 without leaking internals.
func failErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, common.ErrorConflict):
		return fail(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, common.ErrorInvalidInput):
		return fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorUnitInUse):
		return fail(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		return fail(c, fiber.StatusUnauthorized, err.Error())
	default:
		return fail(c, fiber.StatusInternalServerError, "internal server error")
	}
}
