package database

import (
	"os"
	"path/filepath"
	"testing"

	"day-diary/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) (*Repository, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "day-diary-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := New(dbPath)
	require.NoError(t, err)

	err = db.Migrate()
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return repo, cleanup
}

func TestGetEntry_Absent(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	entry, err := repo.GetEntry("2025-01-05")
	require.NoError(t, err)
	assert.Nil(t, entry, "missing entry should resolve to nil, not an error")
}

func TestUpsertEntry_IdempotentByDate(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	entry := &models.DiaryEntry{
		Date:    "2025-03-10",
		Title:   "A quiet day",
		Mood:    "😌",
		Content: "Rain all afternoon.",
		Files: []models.EntryFile{
			{Name: "rain.jpg", Type: "image/jpeg", URL: "https://host/rain.jpg"},
		},
	}

	require.NoError(t, repo.UpsertEntry(entry))
	require.NoError(t, repo.UpsertEntry(entry))

	count, err := repo.CountEntries()
	require.NoError(t, err)
	assert.Equal(t, 1, count, "two identical upserts must leave exactly one record")

	stored, err := repo.GetEntry("2025-03-10")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "A quiet day", stored.Title)
	assert.Equal(t, "😌", stored.Mood)
	assert.Len(t, stored.Files, 1)
}

func TestUpsertEntry_FullReplacement(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	first := &models.DiaryEntry{
		Date:  "2025-03-11",
		Title: "First version",
		Mood:  "😊",
		Files: []models.EntryFile{
			{Name: "a.jpg", Type: "image/jpeg", URL: "https://host/a.jpg"},
			{Name: "b.jpg", Type: "image/jpeg", URL: "https://host/b.jpg"},
		},
	}
	require.NoError(t, repo.UpsertEntry(first))

	second := &models.DiaryEntry{
		Date:  "2025-03-11",
		Title: "Second version",
		Files: []models.EntryFile{
			{Name: "c.mp4", Type: "video/mp4", URL: "https://host/c.mp4"},
		},
	}
	require.NoError(t, repo.UpsertEntry(second))

	stored, err := repo.GetEntry("2025-03-11")
	require.NoError(t, err)
	require.NotNil(t, stored)

	// Non-key fields are fully replaced, never merged
	assert.Equal(t, "Second version", stored.Title)
	assert.Empty(t, stored.Mood)
	require.Len(t, stored.Files, 1)
	assert.Equal(t, "c.mp4", stored.Files[0].Name)
}

func TestListEntries_OrderedByDateDescending(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	// Insert out of order on purpose
	for _, date := range []string{"2025-02-14", "2025-06-01", "2024-12-31", "2025-03-03"} {
		require.NoError(t, repo.UpsertEntry(&models.DiaryEntry{Date: date, Title: "day " + date}))
	}

	entries, err := repo.ListEntries()
	require.NoError(t, err)
	require.Len(t, entries, 4)

	expected := []string{"2025-06-01", "2025-03-03", "2025-02-14", "2024-12-31"}
	for i, e := range entries {
		assert.Equal(t, expected[i], e.Date)
	}
}

func TestListEntries_EmptyStore(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	entries, err := repo.ListEntries()
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}
