package handlers

import (
	"errors"

	"day-diary/app"
	"day-diary/models"
	"day-diary/services"

	"github.com/gofiber/fiber/v2"
)

// GetEntries serves both reads of the entry surface: with ?date= it returns
// the single entry for that date (JSON null when absent), without it the full
// list, newest date first.
func GetEntries(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if date := c.Query("date"); date != "" {
			entry, err := a.Entries.Get(date)
			if err != nil {
				if errors.Is(err, services.ErrInvalidDate) {
					return badRequest(c, err.Error())
				}
				return serverErrorWithDetails(c, "Failed to fetch entry", err)
			}
			if entry == nil {
				return c.JSON(nil)
			}
			return success(c, entry)
		}

		entries, err := a.Entries.List()
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch entries", err)
		}
		return success(c, entries)
	}
}

// UpsertEntry creates or fully replaces the entry for the payload's date.
func UpsertEntry(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.UpsertEntryRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if req.Date == "" {
			return badRequest(c, "date is required")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		entry, err := a.Entries.Upsert(&req)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrDateRequired),
				errors.Is(err, services.ErrInvalidDate),
				errors.Is(err, services.ErrTitleRequired):
				return badRequest(c, err.Error())
			}
			return serverErrorWithDetails(c, "Failed to save entry", err)
		}

		return success(c, entry)
	}
}
