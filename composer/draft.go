package composer

import (
	"context"
	"errors"
	"io"
	"sync"

	"day-diary/mediahost"
	"day-diary/models"
)

// State is the form-session state machine position.
type State string

const (
	StateNoDate       State = "no-date-selected"
	StateDateSelected State = "date-selected"
	StateModeNew      State = "mode-new"
	StateModeEdit     State = "mode-edit"
	StateSubmitting   State = "submitting"
	StateDone         State = "done"
)

// FileState is the terminal/in-flight state of one attached upload.
type FileState string

const (
	FileUploading FileState = "uploading"
	FileSucceeded FileState = "succeeded"
	FileFailed    FileState = "failed"
)

var (
	ErrNoDate           = errors.New("no date selected")
	ErrNoMode           = errors.New("no mode chosen")
	ErrNothingToEdit    = errors.New("no existing entry to edit")
	ErrUploadsPending   = errors.New("uploads still in progress")
	ErrAlreadySubmitted = errors.New("draft already submitted")
)

// FileUpload tracks one attached file through its independent transfer.
type FileUpload struct {
	Name     string
	Type     string
	URL      string
	Progress int
	State    FileState
	Err      error
}

// EntryService is the slice of the entry access service the draft commits
// through.
type EntryService interface {
	Get(date string) (*models.DiaryEntry, error)
	Upsert(req *models.UpsertEntryRequest) (*models.DiaryEntry, error)
}

// Draft is one add/edit form session implementing the upload-then-commit
// protocol: files go to the media host first, independently and in parallel;
// the commit joins on them but only requires that none remain pending. Failed
// uploads are excluded from the payload, never retried, and never block the
// others.
type Draft struct {
	entries EntryService
	host    mediahost.Host

	// OnCommit, when set, signals the container after a successful commit so
	// cached list views get refetched rather than patched.
	OnCommit func(*models.DiaryEntry)

	mu       sync.Mutex
	wg       sync.WaitGroup
	state    State
	date     string
	existing *models.DiaryEntry
	files    []*FileUpload
}

// NewDraft starts a fresh form session.
func NewDraft(entries EntryService, host mediahost.Host) *Draft {
	return &Draft{
		entries: entries,
		host:    host,
		state:   StateNoDate,
	}
}

// State returns the current state machine position.
func (d *Draft) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// SelectDate picks the date being edited and loads any existing entry for it.
// A store failure surfaces; absence does not.
func (d *Draft) SelectDate(date string) error {
	existing, err := d.entries.Get(date)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.date = date
	d.existing = existing
	d.state = StateDateSelected
	return nil
}

// Existing returns the entry already stored for the selected date, if any.
func (d *Draft) Existing() *models.DiaryEntry {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.existing
}

// ChooseEdit enters edit mode. Only valid when an entry already exists for
// the selected date.
func (d *Draft) ChooseEdit() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == StateNoDate {
		return ErrNoDate
	}
	if d.existing == nil {
		return ErrNothingToEdit
	}
	d.state = StateModeEdit
	return nil
}

// ChooseNew enters new-entry mode. Valid unconditionally once a date is
// selected; when an entry exists the eventual save is a full replacement,
// not a merge.
func (d *Draft) ChooseNew() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == StateNoDate {
		return ErrNoDate
	}
	d.state = StateModeNew
	return nil
}

// Attach starts an independent upload for one file and returns immediately.
// size is the total byte count, used for progress; pass 0 when unknown.
// A failure here never blocks or rolls back the other files.
func (d *Draft) Attach(ctx context.Context, name, mimeType string, size int64, content io.Reader) (*FileUpload, error) {
	d.mu.Lock()
	if d.state != StateModeNew && d.state != StateModeEdit {
		d.mu.Unlock()
		return nil, ErrNoMode
	}
	upload := &FileUpload{
		Name:  name,
		Type:  mimeType,
		State: FileUploading,
	}
	d.files = append(d.files, upload)
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()

		reader := content
		if size > 0 {
			reader = &progressReader{
				r:     content,
				total: size,
				report: func(pct int) {
					d.mu.Lock()
					upload.Progress = pct
					d.mu.Unlock()
				},
			}
		}

		url, err := d.host.Upload(ctx, name, mimeType, reader)

		d.mu.Lock()
		defer d.mu.Unlock()
		if err != nil {
			upload.State = FileFailed
			upload.Err = err
			return
		}
		upload.State = FileSucceeded
		upload.URL = url
		upload.Progress = 100
	}()

	return upload, nil
}

// Pending reports whether any attached file is still uploading.
func (d *Draft) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, f := range d.files {
		if f.State == FileUploading {
			return true
		}
	}
	return false
}

// Uploads returns a snapshot of every attached file's transfer state.
func (d *Draft) Uploads() []FileUpload {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]FileUpload, len(d.files))
	for i, f := range d.files {
		out[i] = *f
	}
	return out
}

// Wait blocks until every attached upload reaches a terminal state.
func (d *Draft) Wait() {
	d.wg.Wait()
}

// Submit commits the entry. It must not run while any file is still
// uploading: the caller is told to wait. Failed files are silently excluded.
// On success the container's OnCommit hook fires so stale list views get
// invalidated.
func (d *Draft) Submit(title, mood, content string) (*models.DiaryEntry, error) {
	d.mu.Lock()
	switch d.state {
	case StateNoDate:
		d.mu.Unlock()
		return nil, ErrNoDate
	case StateDateSelected:
		d.mu.Unlock()
		return nil, ErrNoMode
	case StateSubmitting, StateDone:
		d.mu.Unlock()
		return nil, ErrAlreadySubmitted
	}
	for _, f := range d.files {
		if f.State == FileUploading {
			d.mu.Unlock()
			return nil, ErrUploadsPending
		}
	}

	prevState := d.state
	d.state = StateSubmitting

	files := make([]models.EntryFile, 0, len(d.files))
	for _, f := range d.files {
		if f.State != FileSucceeded {
			continue
		}
		files = append(files, models.EntryFile{Name: f.Name, Type: f.Type, URL: f.URL})
	}
	req := &models.UpsertEntryRequest{
		Date:    d.date,
		Title:   title,
		Mood:    mood,
		Content: content,
		Files:   files,
	}
	d.mu.Unlock()

	entry, err := d.entries.Upsert(req)

	d.mu.Lock()
	if err != nil {
		d.state = prevState
		d.mu.Unlock()
		return nil, err
	}
	d.state = StateDone
	onCommit := d.OnCommit
	d.mu.Unlock()

	if onCommit != nil {
		onCommit(entry)
	}
	return entry, nil
}

// progressReader reports cumulative transfer percentage as it is consumed.
type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	report func(pct int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		pct := int(p.read * 100 / p.total)
		if pct > 100 {
			pct = 100
		}
		p.report(pct)
	}
	return n, err
}
