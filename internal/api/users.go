package api

import (
	"github.com/asnhub/asndash/internal/identity"
	"github.com/gofiber/fiber/v2"
)

type userPayload struct {
	ID        string        `json:"id"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	Name      string        `json:"name"`
	Role      identity.Role `json:"role"`
	CreatedAt string        `json:"created_at"`
}

// toUserPayload strips the password before a record leaves the API.
func toUserPayload(u identity.RegisteredUser) userPayload {
	return userPayload{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.Format("2006-01-02"),
	}
}

// ListUsers returns all registered accounts.
func ListUsers(ids *identity.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := ids.ListUsers(c.Context())
		if err != nil {
			return failErr(c, err)
		}
		out := make([]userPayload, 0, len(users))
		for _, u := range users {
			out = append(out, toUserPayload(u))
		}
		return ok(c, out)
	}
}

// GetUser returns one registered account by username.
func GetUser(ids *identity.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := ids.GetUser(c.Context(), c.Params("username"))
		if err != nil {
			return failErr(c, err)
		}
		if u == nil {
			return fail(c, fiber.StatusNotFound, "user not found")
		}
		return ok(c, toUserPayload(*u))
	}
}

// CreateUser creates an account with an explicit role.
func CreateUser(ids *identity.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Username string        `json:"username"`
			Password string        `json:"password"`
			Email    string        `json:"email"`
			Name     string        `json:"name"`
			Role     identity.Role `json:"role"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}
		if req.Role == "" {
			req.Role = identity.RoleUser
		}

		res, err := ids.CreateUser(c.Context(), req.Username, req.Password, req.Email, req.Name, req.Role)
		if err != nil {
			return failErr(c, err)
		}
		if !res.OK {
			return fail(c, fiber.StatusConflict, res.Message)
		}
		return ok(c, nil)
	}
}

// UpdateUser updates profile fields and role of an account by id.
func UpdateUser(ids *identity.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Email string        `json:"email"`
			Name  string        `json:"name"`
			Role  identity.Role `json:"role"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}

		res, err := ids.UpdateUser(c.Context(), c.Params("id"), req.Email, req.Name, req.Role)
		if err != nil {
			return failErr(c, err)
		}
		if !res.OK {
			return fail(c, fiber.StatusNotFound, res.Message)
		}
		return ok(c, nil)
	}
}

// DeleteUser soft-deletes an account. Every name in its rename chain stops
// authenticating.
func DeleteUser(ids *identity.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := ids.DeleteUser(c.Context(), c.Params("username"))
		if err != nil {
			return failErr(c, err)
		}
		if !res.OK {
			return fail(c, fiber.StatusNotFound, res.Message)
		}
		return ok(c, nil)
	}
}

// CleanupCredentials removes credential entries that no longer belong to
// any default or registered account.
func CleanupCredentials(ids *identity.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := ids.CleanupInvalidCredentials(c.Context())
		if err != nil {
			return failErr(c, err)
		}
		return ok(c, fiber.Map{"cleaned": res.Cleaned, "remaining": res.Remaining})
	}
}

// ResetIdentityData wipes the identity store back to factory defaults.
func ResetIdentityData(ids *identity.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := ids.ResetAllData(c.Context())
		if err != nil {
			return failErr(c, err)
		}
		if !res.OK {
			return fail(c, fiber.StatusInternalServerError, res.Message)
		}
		return ok(c, nil)
	}
}
