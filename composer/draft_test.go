package composer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"day-diary/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEntries is an in-memory EntryService.
type fakeEntries struct {
	mu      sync.Mutex
	entries map[string]*models.DiaryEntry
	upserts int
	fail    bool
}

func newFakeEntries() *fakeEntries {
	return &fakeEntries{entries: make(map[string]*models.DiaryEntry)}
}

func (f *fakeEntries) Get(date string) (*models.DiaryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries[date], nil
}

func (f *fakeEntries) Upsert(req *models.UpsertEntryRequest) (*models.DiaryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errors.New("database error")
	}
	f.upserts++
	entry := &models.DiaryEntry{
		Date:    req.Date,
		Title:   req.Title,
		Mood:    req.Mood,
		Content: req.Content,
		Files:   req.Files,
	}
	f.entries[req.Date] = entry
	return entry, nil
}

// blockingHost holds every upload until released, so tests can observe the
// in-flight window deterministically.
type blockingHost struct {
	mu      sync.Mutex
	gate    chan struct{}
	uploads int
	failFor map[string]error
}

func newBlockingHost() *blockingHost {
	return &blockingHost{gate: make(chan struct{}), failFor: make(map[string]error)}
}

func (h *blockingHost) release() { close(h.gate) }

func (h *blockingHost) Upload(ctx context.Context, name, mimeType string, content io.Reader) (string, error) {
	<-h.gate
	if _, err := io.Copy(io.Discard, content); err != nil {
		return "", err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if err, ok := h.failFor[name]; ok {
		return "", err
	}
	h.uploads++
	return fmt.Sprintf("https://host/files/%s", name), nil
}

func (h *blockingHost) Delete(ctx context.Context, objectID string) error { return nil }

func TestDraft_RequiresDateBeforeMode(t *testing.T) {
	d := NewDraft(newFakeEntries(), nil)

	assert.ErrorIs(t, d.ChooseNew(), ErrNoDate)
	assert.ErrorIs(t, d.ChooseEdit(), ErrNoDate)

	_, err := d.Submit("title", "", "")
	assert.ErrorIs(t, err, ErrNoDate)
}

func TestDraft_RequiresModeBeforeSubmit(t *testing.T) {
	d := NewDraft(newFakeEntries(), nil)
	require.NoError(t, d.SelectDate("2025-04-01"))

	_, err := d.Submit("title", "", "")
	assert.ErrorIs(t, err, ErrNoMode)

	_, err = d.Attach(context.Background(), "a.jpg", "image/jpeg", 0, strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrNoMode)
}

func TestDraft_EditRequiresExistingEntry(t *testing.T) {
	entries := newFakeEntries()
	entries.entries["2025-04-02"] = &models.DiaryEntry{Date: "2025-04-02", Title: "Already there"}

	fresh := NewDraft(entries, nil)
	require.NoError(t, fresh.SelectDate("2025-04-01"))
	assert.ErrorIs(t, fresh.ChooseEdit(), ErrNothingToEdit)

	editing := NewDraft(entries, nil)
	require.NoError(t, editing.SelectDate("2025-04-02"))
	require.NotNil(t, editing.Existing())
	assert.NoError(t, editing.ChooseEdit())
	assert.Equal(t, StateModeEdit, editing.State())
}

func TestDraft_NewModeAllowedOverExistingEntry(t *testing.T) {
	entries := newFakeEntries()
	entries.entries["2025-04-02"] = &models.DiaryEntry{Date: "2025-04-02", Title: "Old"}

	d := NewDraft(entries, nil)
	require.NoError(t, d.SelectDate("2025-04-02"))
	require.NoError(t, d.ChooseNew())

	saved, err := d.Submit("Replacement", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Replacement", saved.Title)
	assert.Equal(t, 1, entries.upserts)
}

func TestDraft_SubmitBlockedWhileUploading(t *testing.T) {
	entries := newFakeEntries()
	host := newBlockingHost()

	d := NewDraft(entries, host)
	require.NoError(t, d.SelectDate("2025-04-03"))
	require.NoError(t, d.ChooseNew())

	_, err := d.Attach(context.Background(), "slow.jpg", "image/jpeg", 0, strings.NewReader("payload"))
	require.NoError(t, err)
	require.True(t, d.Pending())

	_, err = d.Submit("title", "", "")
	assert.ErrorIs(t, err, ErrUploadsPending)
	assert.Equal(t, 0, entries.upserts, "commit must not reach the store while uploads are pending")

	host.release()
	d.Wait()
	require.False(t, d.Pending())

	saved, err := d.Submit("title", "", "")
	require.NoError(t, err)
	require.Len(t, saved.Files, 1)
	assert.Equal(t, "https://host/files/slow.jpg", saved.Files[0].URL)
}

func TestDraft_FailedUploadExcludedSilently(t *testing.T) {
	entries := newFakeEntries()
	host := newBlockingHost()
	host.failFor["broken.jpg"] = errors.New("host rejected upload")

	d := NewDraft(entries, host)
	require.NoError(t, d.SelectDate("2025-04-04"))
	require.NoError(t, d.ChooseNew())

	_, err := d.Attach(context.Background(), "ok.jpg", "image/jpeg", 0, strings.NewReader("a"))
	require.NoError(t, err)
	_, err = d.Attach(context.Background(), "broken.jpg", "image/jpeg", 0, strings.NewReader("b"))
	require.NoError(t, err)

	host.release()
	d.Wait()

	states := map[string]FileState{}
	for _, u := range d.Uploads() {
		states[u.Name] = u.State
	}
	assert.Equal(t, FileSucceeded, states["ok.jpg"])
	assert.Equal(t, FileFailed, states["broken.jpg"])

	saved, err := d.Submit("title", "", "")
	require.NoError(t, err, "one failed upload must not block the commit")
	require.Len(t, saved.Files, 1)
	assert.Equal(t, "ok.jpg", saved.Files[0].Name)
}

func TestDraft_ParallelUploads(t *testing.T) {
	entries := newFakeEntries()
	host := newBlockingHost()

	d := NewDraft(entries, host)
	require.NoError(t, d.SelectDate("2025-04-05"))
	require.NoError(t, d.ChooseNew())

	// All three start before any can finish: if uploads ran sequentially the
	// first would block the gate forever.
	for i := 0; i < 3; i++ {
		_, err := d.Attach(context.Background(), fmt.Sprintf("f%d.jpg", i), "image/jpeg", 0, strings.NewReader("x"))
		require.NoError(t, err)
	}
	require.Len(t, d.Uploads(), 3)
	require.True(t, d.Pending())

	host.release()
	d.Wait()

	saved, err := d.Submit("title", "", "")
	require.NoError(t, err)
	assert.Len(t, saved.Files, 3)
}

func TestDraft_ProgressReachesHundred(t *testing.T) {
	entries := newFakeEntries()
	host := newBlockingHost()
	host.release()

	d := NewDraft(entries, host)
	require.NoError(t, d.SelectDate("2025-04-06"))
	require.NoError(t, d.ChooseNew())

	payload := strings.Repeat("x", 1024)
	_, err := d.Attach(context.Background(), "sized.jpg", "image/jpeg", int64(len(payload)), strings.NewReader(payload))
	require.NoError(t, err)
	d.Wait()

	uploads := d.Uploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, 100, uploads[0].Progress)
	assert.Equal(t, FileSucceeded, uploads[0].State)
}

func TestDraft_SubmitOnlyOnce(t *testing.T) {
	entries := newFakeEntries()

	d := NewDraft(entries, nil)
	require.NoError(t, d.SelectDate("2025-04-07"))
	require.NoError(t, d.ChooseNew())

	_, err := d.Submit("title", "😊", "body")
	require.NoError(t, err)
	assert.Equal(t, StateDone, d.State())

	_, err = d.Submit("title", "😊", "body")
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	assert.Equal(t, 1, entries.upserts)
}

func TestDraft_FailedSubmitAllowsRetry(t *testing.T) {
	entries := newFakeEntries()
	entries.fail = true

	d := NewDraft(entries, nil)
	require.NoError(t, d.SelectDate("2025-04-08"))
	require.NoError(t, d.ChooseNew())

	_, err := d.Submit("title", "", "")
	require.Error(t, err)
	assert.Equal(t, StateModeNew, d.State(), "a failed commit returns to the mode state")

	entries.fail = false
	_, err = d.Submit("title", "", "")
	assert.NoError(t, err)
}

func TestDraft_OnCommitFires(t *testing.T) {
	entries := newFakeEntries()

	var committed *models.DiaryEntry
	d := NewDraft(entries, nil)
	d.OnCommit = func(e *models.DiaryEntry) { committed = e }

	require.NoError(t, d.SelectDate("2025-04-09"))
	require.NoError(t, d.ChooseNew())

	saved, err := d.Submit("title", "", "")
	require.NoError(t, err)
	require.NotNil(t, committed)
	assert.Equal(t, saved, committed)
}
