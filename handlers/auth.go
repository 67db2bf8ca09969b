package handlers

import (
	"crypto/subtle"
	"time"

	"day-diary/app"
	"day-diary/models"
	"day-diary/services"

	"github.com/gofiber/fiber/v2"
)

// Unlock checks the shared site password and issues a session cookie.
func Unlock(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if a.Config.SitePassword == "" {
			return success(c, fiber.Map{"unlocked": true})
		}

		var req models.UnlockRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		if subtle.ConstantTimeCompare([]byte(req.Password), []byte(a.Config.SitePassword)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": services.ErrWrongPassword.Error()})
		}

		sess := a.Sessions.Create()
		c.Cookie(&fiber.Cookie{
			Name:     "session_id",
			Value:    sess.ID,
			Expires:  sess.ExpiresAt,
			HTTPOnly: true,
			SameSite: "Lax",
		})

		return success(c, fiber.Map{"unlocked": true})
	}
}

// Lock clears the current session.
func Lock(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sessionID := c.Cookies("session_id"); sessionID != "" {
			a.Sessions.Delete(sessionID)
		}
		c.Cookie(&fiber.Cookie{
			Name:     "session_id",
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			SameSite: "Lax",
		})
		return success(c, fiber.Map{"locked": true})
	}
}

// Status reports whether the gate is enabled and whether this client is
// currently unlocked.
func Status(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if a.Config.SitePassword == "" {
			return success(c, fiber.Map{"locked": false, "enabled": false})
		}

		unlocked := false
		if sessionID := c.Cookies("session_id"); sessionID != "" {
			unlocked = a.Sessions.Get(sessionID) != nil
		}
		return success(c, fiber.Map{"locked": !unlocked, "enabled": true})
	}
}
