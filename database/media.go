package database

import (
	"database/sql"
	"time"

	"day-diary/models"
)

// ==================== MEDIA OPERATIONS ====================

// CreateMedia inserts a media record and fills in the assigned id.
func (r *Repository) CreateMedia(item *models.MediaItem) error {
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}

	res, err := r.db.Exec(`
		INSERT INTO media (name, type, url, favorite, added_at)
		VALUES (?, ?, ?, ?, ?)
	`, item.Name, item.Type, item.URL, item.Favorite, item.AddedAt)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	item.ID = id
	return nil
}

// GetMedia retrieves one media record by id, (nil, nil) when absent.
func (r *Repository) GetMedia(id int64) (*models.MediaItem, error) {
	var item models.MediaItem
	err := r.db.QueryRow(`
		SELECT id, name, type, url, favorite, added_at
		FROM media
		WHERE id = ?
	`, id).Scan(&item.ID, &item.Name, &item.Type, &item.URL, &item.Favorite, &item.AddedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// ListMedia retrieves all media, newest first. Ties on added_at fall back to
// id so the order is stable within one timestamp.
func (r *Repository) ListMedia() ([]models.MediaItem, error) {
	rows, err := r.db.Query(`
		SELECT id, name, type, url, favorite, added_at
		FROM media
		ORDER BY added_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.MediaItem, 0)
	for rows.Next() {
		var item models.MediaItem
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Type, &item.URL, &item.Favorite, &item.AddedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// DeleteMedia removes exactly one record by id.
func (r *Repository) DeleteMedia(id int64) error {
	_, err := r.db.Exec("DELETE FROM media WHERE id = ?", id)
	return err
}

// UpdateFavorite flips the favorite flag and returns the updated record,
// (nil, nil) when the id is unknown.
func (r *Repository) UpdateFavorite(id int64, favorite bool) (*models.MediaItem, error) {
	res, err := r.db.Exec("UPDATE media SET favorite = ? WHERE id = ?", favorite, id)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, nil
	}

	return r.GetMedia(id)
}

// CountMedia returns the number of stored media records.
func (r *Repository) CountMedia() (int, error) {
	var n int
	err := r.db.QueryRow("SELECT COUNT(*) FROM media").Scan(&n)
	return n, err
}
