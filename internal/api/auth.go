package api

import (
	"github.com/asnhub/asndash/internal/identity"
	"github.com/gofiber/fiber/v2"
)

// Login authenticates a username/password pair and opens a session.
func Login(ids *identity.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}

		res, err := ids.Authenticate(c.Context(), req.Username, req.Password)
		if err != nil {
			return failErr(c, err)
		}
		if !res.OK {
			return fail(c, fiber.StatusUnauthorized, res.Message)
		}

		return ok(c, fiber.Map{"username": req.Username, "role": res.Role})
	}
}

// Logout clears the active session. It succeeds even when no session exists.
func Logout(ids *identity.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := ids.Logout(c.Context()); err != nil {
			return failErr(c, err)
		}
		return ok(c, nil)
	}
}

// Me reports the current session, plus the one-shot username-change marker
// so the UI can refresh its cached principal after a rename.
func Me(ids *identity.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := currentSession(c)

		changed, err := ids.ConsumeUsernameChangedFlag(c.Context())
		if err != nil {
			return failErr(c, err)
		}
		passwordChangedAt, err := ids.PasswordChangedAt(c.Context())
		if err != nil {
			return failErr(c, err)
		}

		return ok(c, fiber.Map{
			"username":            sess.Username,
			"role":                sess.Role,
			"login_time":          sess.LoginTime,
			"username_changed":    changed,
			"password_changed_at": passwordChangedAt,
		})
	}
}

// Signup registers a new account with the default role.
func Signup(ids *identity.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
			Email    string `json:"email"`
			Name     string `json:"name"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}

		res, err := ids.Register(c.Context(), req.Username, req.Password, req.Email, req.Name)
		if err != nil {
			return failErr(c, err)
		}
		if !res.OK {
			return fail(c, fiber.StatusConflict, res.Message)
		}
		return ok(c, nil)
	}
}

// ChangePassword updates the logged-in account's password.
func ChangePassword(ids *identity.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			CurrentPassword string `json:"current_password"`
			NewPassword     string `json:"new_password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}

		res, err := ids.ChangePassword(c.Context(), req.CurrentPassword, req.NewPassword)
		if err != nil {
			return failErr(c, err)
		}
		if !res.OK {
			return fail(c, fiber.StatusBadRequest, res.Message)
		}
		return ok(c, nil)
	}
}

// ChangeUsername renames the logged-in account after re-verifying its
// password. The old name stays permanently retired.
func ChangeUsername(ids *identity.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Password    string `json:"password"`
			NewUsername string `json:"new_username"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}

		res, err := ids.ChangeUsername(c.Context(), req.Password, req.NewUsername)
		if err != nil {
			return failErr(c, err)
		}
		if !res.OK {
			return fail(c, fiber.StatusBadRequest, res.Message)
		}
		return ok(c, fiber.Map{"username": req.NewUsername})
	}
}
