package handlers

import (
	"strconv"

	"day-diary/app"
	"day-diary/calendar"

	"github.com/gofiber/fiber/v2"
)

// GetMonth composes the calendar month grid, marking days that have an
// entry. The month path param is 1-based.
func GetMonth(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, err := strconv.Atoi(c.Params("year"))
		if err != nil || year < 1 || year > 9999 {
			return badRequest(c, "invalid year")
		}
		month, err := strconv.Atoi(c.Params("month"))
		if err != nil || month < 1 || month > 12 {
			return badRequest(c, "invalid month")
		}

		entries, err := a.Entries.List()
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch entries", err)
		}

		entryDates := make(map[string]bool, len(entries))
		for _, e := range entries {
			entryDates[e.Date] = true
		}

		return success(c, calendar.MonthGrid(year, month-1, entryDates))
	}
}

// GetMoods returns the fixed mood enumeration with the gradient each mood
// maps to, plus the default used for absent or unmapped moods.
func GetMoods(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type moodTheme struct {
			Mood     string `json:"mood"`
			Gradient string `json:"gradient"`
		}

		themes := make([]moodTheme, 0, len(calendar.Moods))
		for _, m := range calendar.Moods {
			themes = append(themes, moodTheme{Mood: m, Gradient: calendar.MoodGradient(m)})
		}

		return success(c, fiber.Map{
			"moods":   themes,
			"default": calendar.DefaultGradient,
		})
	}
}
