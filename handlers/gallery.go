package handlers

import (
	"errors"
	"strconv"

	"day-diary/app"
	"day-diary/models"
	"day-diary/services"

	"github.com/gofiber/fiber/v2"
)

// GetGallery lists all media, newest first.
func GetGallery(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		media, err := a.Media.List()
		if err != nil {
			return serverErrorWithDetails(c, "Failed to load gallery", err)
		}
		return success(c, media)
	}
}

// CreateMedia registers metadata for an upload the client already completed
// against the media host.
func CreateMedia(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateMediaRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		item, err := a.Media.Create(req.Name, req.Type, req.URL)
		if err != nil {
			if errors.Is(err, services.ErrMissingFields) {
				return badRequest(c, err.Error())
			}
			return serverErrorWithDetails(c, "Failed to add media", err)
		}

		return created(c, item)
	}
}

// DeleteMedia confirms the record exists, dispatches the background deletion
// and responds immediately. The remote-object removal never gates the
// response.
func DeleteMedia(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return badRequest(c, "invalid media id")
		}

		if err := a.Media.Delete(id); err != nil {
			if errors.Is(err, services.ErrMediaNotFound) {
				return notFound(c, "media not found")
			}
			return serverErrorWithDetails(c, "Failed to delete media", err)
		}

		return success(c, fiber.Map{"success": true})
	}
}

// UpdateFavorite flips the favorite flag on a media item.
func UpdateFavorite(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return badRequest(c, "invalid media id")
		}

		var req models.UpdateFavoriteRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		item, err := a.Media.UpdateFavorite(id, req.Favorite)
		if err != nil {
			if errors.Is(err, services.ErrMediaNotFound) {
				return notFound(c, "media not found")
			}
			return serverErrorWithDetails(c, "Failed to update media", err)
		}

		return success(c, item)
	}
}

// UploadMedia accepts a multipart file, streams it to the media host and
// registers the resulting URL in one request (the gallery's direct
// upload-and-register path).
func UploadMedia(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ref, ok := uploadToHost(a, c)
		if !ok {
			return nil
		}

		item, err := a.Media.Create(ref.Name, ref.Type, ref.URL)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to register media", err)
		}

		return created(c, item)
	}
}

// UploadFile uploads a file for the add/edit flow and returns the reference
// to embed in a later entry save. Nothing is persisted here: the entry upsert
// is the commit.
func UploadFile(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ref, ok := uploadToHost(a, c)
		if !ok {
			return nil
		}

		return success(c, ref)
	}
}

// uploadToHost streams the multipart "file" field to the media host. On
// failure the response has already been written and ok is false.
func uploadToHost(a *app.App, c *fiber.Ctx) (ref models.EntryFile, ok bool) {
	if a.Host == nil {
		badRequest(c, "media host is not configured")
		return ref, false
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "missing file")
		return ref, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		serverErrorWithDetails(c, "Failed to read upload", err)
		return ref, false
	}
	defer file.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	url, err := a.Host.Upload(c.Context(), fileHeader.Filename, mimeType, file)
	if err != nil {
		serverErrorWithDetails(c, "Upload to media host failed", err)
		return ref, false
	}

	return models.EntryFile{Name: fileHeader.Filename, Type: mimeType, URL: url}, true
}
