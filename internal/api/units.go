package api

import (
	"github.com/asnhub/asndash/internal/units"
	"github.com/gofiber/fiber/v2"
)

type unitRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id"`
	HeadName string `json:"head_name"`
}

// ListUnits returns all organizational units.
func ListUnits(svc *units.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.List(c.Context())
		if err != nil {
			return failErr(c, err)
		}
		return ok(c, list)
	}
}

// GetUnit returns one unit by id.
func GetUnit(svc *units.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return failErr(c, err)
		}
		return ok(c, u)
	}
}

// CreateUnit creates an organizational unit.
func CreateUnit(svc *units.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req unitRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}

		created, err := svc.Create(c.Context(), &units.Unit{
			Code:     req.Code,
			Name:     req.Name,
			ParentID: req.ParentID,
			HeadName: req.HeadName,
		})
		if err != nil {
			return failErr(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": created})
	}
}

// UpdateUnit replaces a unit by id.
func UpdateUnit(svc *units.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req unitRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}

		updated, err := svc.Update(c.Context(), &units.Unit{
			ID:       c.Params("id"),
			Code:     req.Code,
			Name:     req.Name,
			ParentID: req.ParentID,
			HeadName: req.HeadName,
		})
		if err != nil {
			return failErr(c, err)
		}
		return ok(c, updated)
	}
}

// DeleteUnit removes a unit. Units that still have employees are rejected.
func DeleteUnit(svc *units.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			return failErr(c, err)
		}
		return ok(c, nil)
	}
}
