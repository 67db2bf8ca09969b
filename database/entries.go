package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"day-diary/models"
)

// ==================== ENTRY OPERATIONS ====================

// GetEntry retrieves the entry for a calendar date. A missing entry is not an
// error: it returns (nil, nil).
func (r *Repository) GetEntry(date string) (*models.DiaryEntry, error) {
	var entry models.DiaryEntry
	var files string

	err := r.db.QueryRow(`
		SELECT date, title, mood, content, files, created_at, updated_at
		FROM entries
		WHERE date = ?
	`, date).Scan(
		&entry.Date, &entry.Title, &entry.Mood, &entry.Content,
		&files, &entry.CreatedAt, &entry.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(files), &entry.Files); err != nil {
		return nil, fmt.Errorf("corrupt files column for %s: %w", date, err)
	}

	return &entry, nil
}

// UpsertEntry creates the entry for its date or fully replaces the non-key
// fields. The single ON CONFLICT statement is the store's atomic
// insert-or-update primitive; concurrent saves for the same date are
// last-write-wins.
func (r *Repository) UpsertEntry(entry *models.DiaryEntry) error {
	if entry.Files == nil {
		entry.Files = []models.EntryFile{}
	}
	files, err := json.Marshal(entry.Files)
	if err != nil {
		return fmt.Errorf("failed to encode files: %w", err)
	}

	now := time.Now()
	entry.UpdatedAt = now
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}

	_, err = r.db.Exec(`
		INSERT INTO entries (date, title, mood, content, files, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			title = excluded.title,
			mood = excluded.mood,
			content = excluded.content,
			files = excluded.files,
			updated_at = excluded.updated_at
	`,
		entry.Date, entry.Title, entry.Mood, entry.Content,
		string(files), entry.CreatedAt, entry.UpdatedAt,
	)
	return err
}

// ListEntries retrieves all entries, newest date first.
func (r *Repository) ListEntries() ([]models.DiaryEntry, error) {
	rows, err := r.db.Query(`
		SELECT date, title, mood, content, files, created_at, updated_at
		FROM entries
		ORDER BY date DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Initialize with empty slice to avoid returning nil
	entries := make([]models.DiaryEntry, 0)
	for rows.Next() {
		var entry models.DiaryEntry
		var files string
		if err := rows.Scan(
			&entry.Date, &entry.Title, &entry.Mood, &entry.Content,
			&files, &entry.CreatedAt, &entry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(files), &entry.Files); err != nil {
			return nil, fmt.Errorf("corrupt files column for %s: %w", entry.Date, err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// CountEntries returns the number of stored entries.
func (r *Repository) CountEntries() (int, error) {
	var n int
	err := r.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&n)
	return n, err
}
