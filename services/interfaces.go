package services

import "day-diary/models"

// EntryRepository defines the interface for entry data access
type EntryRepository interface {
	GetEntry(date string) (*models.DiaryEntry, error)
	UpsertEntry(entry *models.DiaryEntry) error
	ListEntries() ([]models.DiaryEntry, error)
}

// MediaRepository defines the interface for media data access
type MediaRepository interface {
	CreateMedia(item *models.MediaItem) error
	GetMedia(id int64) (*models.MediaItem, error)
	ListMedia() ([]models.MediaItem, error)
	DeleteMedia(id int64) error
	UpdateFavorite(id int64, favorite bool) (*models.MediaItem, error)
}

// CleanupDispatcher hands a confirmed delete off to the background worker.
// EnqueueDelete returns false when the worker is not accepting jobs.
type CleanupDispatcher interface {
	EnqueueDelete(mediaID int64, url string) bool
}
