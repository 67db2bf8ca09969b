package middleware

import (
	"day-diary/session"

	"github.com/gofiber/fiber/v2"
)

// SiteLock guards the API behind the shared password gate. When no password
// is configured the gate is disabled and every request passes. This is a
// convenience lock like the original client-side one, not a security
// boundary.
func SiteLock(store *session.Store, password string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if password == "" {
			return c.Next()
		}

		sessionID := c.Cookies("session_id")
		if sessionID != "" {
			if sess := store.Get(sessionID); sess != nil {
				c.Locals("session", sess)
				return c.Next()
			}
			c.ClearCookie("session_id")
		}

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "site is locked",
		})
	}
}
