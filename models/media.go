package models

import "time"

// MediaItem is one registered upload in the gallery. The id is the durable
// handle for delete/update; name, type and url are set once at registration.
type MediaItem struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	URL      string    `json:"url"`
	Favorite bool      `json:"favorite"`
	AddedAt  time.Time `json:"addedAt"`
}

// CreateMediaRequest registers metadata for a completed upload. The binary
// transfer to the media host must already have happened; this never proxies it.
type CreateMediaRequest struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required"`
	URL  string `json:"url" validate:"required"`
}

// UpdateFavoriteRequest is the PUT /gallery/:id payload.
type UpdateFavoriteRequest struct {
	Favorite bool `json:"favorite"`
}
