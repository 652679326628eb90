package api

import (
	"github.com/asnhub/asndash/internal/identity"
	"github.com/gofiber/fiber/v2"
)

const sessionLocalsKey = "session"

// RequireAuth rejects requests without an active session and stores the
// session in request locals for downstream handlers.
func RequireAuth(ids *identity.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := ids.Session(c.Context())
		if err != nil {
			return failErr(c, err)
		}
		if sess == nil {
			return fail(c, fiber.StatusUnauthorized, "authentication required")
		}
		c.Locals(sessionLocalsKey, sess)
		return c.Next()
	}
}

// RequireRole allows only sessions holding one of the given roles. It must
// run after RequireAuth.
func RequireRole(roles ...identity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, _ := c.Locals(sessionLocalsKey).(*identity.Session)
		if sess == nil {
			return fail(c, fiber.StatusUnauthorized, "authentication required")
		}
		for _, r := range roles {
			if sess.Role == r {
				return c.Next()
			}
		}
		return fail(c, fiber.StatusForbidden, "insufficient privileges")
	}
}

// currentSession returns the session placed in locals by RequireAuth.
func currentSession(c *fiber.Ctx) *identity.Session {
	sess, _ := c.Locals(sessionLocalsKey).(*identity.Session)
	return sess
}
