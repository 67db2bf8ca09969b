package services

import (
	"regexp"

	"day-diary/models"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// EntryService handles business logic for diary entries
type EntryService struct {
	repo          EntryRepository
	titleRequired bool
}

// NewEntryService creates a new entry service. titleRequired mirrors the
// ENTRY_TITLE_REQUIRED setting: some deployments insist on a title at
// creation, others only require the date.
func NewEntryService(repo EntryRepository, titleRequired bool) *EntryService {
	return &EntryService{
		repo:          repo,
		titleRequired: titleRequired,
	}
}

// Get retrieves the entry for a date. Absence is a normal outcome and
// resolves to nil, not an error.
func (es *EntryService) Get(date string) (*models.DiaryEntry, error) {
	if !datePattern.MatchString(date) {
		return nil, ErrInvalidDate
	}
	return es.repo.GetEntry(date)
}

// List retrieves all entries, newest date first.
func (es *EntryService) List() ([]models.DiaryEntry, error) {
	return es.repo.ListEntries()
}

// Upsert creates or fully replaces the entry for req.Date. The date is the
// only unconditional precondition; it is rejected before any store access.
// File references without a URL (failed or incomplete uploads) are dropped
// from the payload rather than persisted.
func (es *EntryService) Upsert(req *models.UpsertEntryRequest) (*models.DiaryEntry, error) {
	if req.Date == "" {
		return nil, ErrDateRequired
	}
	if !datePattern.MatchString(req.Date) {
		return nil, ErrInvalidDate
	}
	if es.titleRequired && req.Title == "" {
		return nil, ErrTitleRequired
	}

	files := make([]models.EntryFile, 0, len(req.Files))
	for _, f := range req.Files {
		if f.URL == "" {
			continue
		}
		files = append(files, f)
	}

	entry := &models.DiaryEntry{
		Date:    req.Date,
		Title:   req.Title,
		Mood:    req.Mood,
		Content: req.Content,
		Files:   files,
	}

	if existing, err := es.repo.GetEntry(req.Date); err == nil && existing != nil {
		entry.CreatedAt = existing.CreatedAt
	}

	if err := es.repo.UpsertEntry(entry); err != nil {
		return nil, err
	}

	return entry, nil
}
