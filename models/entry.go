package models

import (
	"encoding/json"
	"path"
	"strings"
	"time"
)

// EntryFile is one attached media reference embedded in a diary entry.
// Each reference points at an already-completed upload on the media host.
type EntryFile struct {
	Name string `json:"name"`
	Type string `json:"type"`
	URL  string `json:"url" validate:"required"`
}

// UnmarshalJSON accepts both the object form {name,type,url} and the legacy
// bare-URL string form, so older payloads normalize into one representation
// before they reach the store.
func (f *EntryFile) UnmarshalJSON(data []byte) error {
	var url string
	if err := json.Unmarshal(data, &url); err == nil {
		f.Name = path.Base(strings.SplitN(url, "?", 2)[0])
		f.Type = ""
		f.URL = url
		return nil
	}

	type entryFile EntryFile
	var obj entryFile
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*f = EntryFile(obj)
	return nil
}

// DiaryEntry is one diary record. Date is the identity: at most one entry
// exists per calendar date, and saving again fully replaces the non-key fields.
type DiaryEntry struct {
	Date      string      `json:"date"`
	Title     string      `json:"title"`
	Mood      string      `json:"mood,omitempty"`
	Content   string      `json:"content,omitempty"`
	Files     []EntryFile `json:"files"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// UpsertEntryRequest is the POST /entries payload.
type UpsertEntryRequest struct {
	Date    string      `json:"date" validate:"required,dateformat"`
	Title   string      `json:"title"`
	Mood    string      `json:"mood" validate:"omitempty,mood"`
	Content string      `json:"content"`
	Files   []EntryFile `json:"files"`
}
