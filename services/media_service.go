package services

import (
	"log/slog"

	"day-diary/models"
)

// MediaService handles business logic for the gallery media catalog
type MediaService struct {
	repo    MediaRepository
	cleanup CleanupDispatcher
	logger  *slog.Logger
}

// NewMediaService creates a new media service
func NewMediaService(repo MediaRepository, cleanup CleanupDispatcher, logger *slog.Logger) *MediaService {
	return &MediaService{
		repo:    repo,
		cleanup: cleanup,
		logger:  logger,
	}
}

// List retrieves all media, newest first.
func (ms *MediaService) List() ([]models.MediaItem, error) {
	return ms.repo.ListMedia()
}

// Create registers metadata for an upload that already completed on the
// media host. The caller must have obtained the durable URL first.
func (ms *MediaService) Create(name, mimeType, url string) (*models.MediaItem, error) {
	if name == "" || mimeType == "" || url == "" {
		return nil, ErrMissingFields
	}

	item := &models.MediaItem{
		Name: name,
		Type: mimeType,
		URL:  url,
	}
	if err := ms.repo.CreateMedia(item); err != nil {
		return nil, err
	}

	return item, nil
}

// Delete removes a media item. The existence check happens inline so an
// unknown id reports not-found with no partial effects. The row removal and
// the best-effort remote delete both run in the background worker; the caller
// gets success as soon as the job is dispatched.
func (ms *MediaService) Delete(id int64) error {
	item, err := ms.repo.GetMedia(id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrMediaNotFound
	}

	if !ms.cleanup.EnqueueDelete(item.ID, item.URL) {
		// Worker saturated or stopped: fall back to deleting the row inline
		// so the user-visible removal still happens. The remote object is
		// orphaned, which is the accepted tradeoff.
		ms.logger.Warn("cleanup queue unavailable, deleting media row inline", "id", id)
		return ms.repo.DeleteMedia(id)
	}

	return nil
}

// UpdateFavorite flips the favorite flag on a media item.
func (ms *MediaService) UpdateFavorite(id int64, favorite bool) (*models.MediaItem, error) {
	item, err := ms.repo.UpdateFavorite(id, favorite)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMediaNotFound
	}
	return item, nil
}
