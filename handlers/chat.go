package handlers

import (
	"day-diary/app"
	"day-diary/chat"
	"day-diary/models"

	"github.com/gofiber/fiber/v2"
)

// Chat relays a conversation to the completion provider and returns the
// reply together with the model that handled it.
func Chat(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.ChatRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if len(req.Messages) == 0 {
			return badRequest(c, "no message received")
		}

		reply, model, err := a.Chat.Complete(c.Context(), req.Messages)
		if err != nil {
			return serverErrorWithDetails(c, "Chat provider request failed", err)
		}

		return success(c, fiber.Map{
			"reply": reply,
			"model": model,
		})
	}
}

// Quote returns one short uplifting line. Provider failures degrade to the
// fixed fallback, never to an error response.
func Quote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if a.Chat == nil {
			return success(c, fiber.Map{"quote": chat.FallbackQuote})
		}
		return success(c, fiber.Map{"quote": a.Chat.Quote(c.Context())})
	}
}
