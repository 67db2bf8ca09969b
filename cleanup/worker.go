package cleanup

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"day-diary/mediahost"
)

// MediaRepository is the slice of the store the worker needs.
type MediaRepository interface {
	DeleteMedia(id int64) error
}

// Job is one dispatched media deletion: remove the database row, then
// best-effort delete the remote object derived from the stored URL.
type Job struct {
	MediaID int64
	URL     string
}

// Worker processes media deletions outside the request/response cycle.
// Outcomes are logged and never retried; failures leave at worst an orphaned
// remote object, which is the accepted tradeoff for a fast delete response.
type Worker struct {
	repo          MediaRepository
	host          mediahost.Host
	logger        *slog.Logger
	jobs          chan Job
	stopChan      chan struct{}
	done          chan struct{}
	running       bool
	mu            sync.Mutex
	remoteTimeout time.Duration
}

// NewWorker creates a cleanup worker. host may be nil, in which case remote
// deletion is skipped and only the local row is removed.
func NewWorker(repo MediaRepository, host mediahost.Host, logger *slog.Logger) *Worker {
	return &Worker{
		repo:          repo,
		host:          host,
		logger:        logger,
		jobs:          make(chan Job, 64),
		stopChan:      make(chan struct{}),
		done:          make(chan struct{}),
		remoteTimeout: 30 * time.Second,
	}
}

// Start begins the background loop.
func (w *Worker) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	w.logger.Info("cleanup worker started")
	go w.run()
}

// Stop drains queued jobs best-effort and stops the loop.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopChan)
	<-w.done
	w.logger.Info("cleanup worker stopped")
}

// EnqueueDelete hands a deletion to the worker without blocking the caller.
// Returns false when the queue is full or the worker is stopped.
func (w *Worker) EnqueueDelete(mediaID int64, url string) bool {
	w.mu.Lock()
	running := w.running
	w.mu.Unlock()
	if !running {
		return false
	}

	select {
	case w.jobs <- Job{MediaID: mediaID, URL: url}:
		return true
	default:
		return false
	}
}

func (w *Worker) run() {
	defer close(w.done)

	for {
		select {
		case job := <-w.jobs:
			w.process(job)
		case <-w.stopChan:
			// Drain whatever is already queued
			for {
				select {
				case job := <-w.jobs:
					w.process(job)
				default:
					return
				}
			}
		}
	}
}

func (w *Worker) process(job Job) {
	if err := w.repo.DeleteMedia(job.MediaID); err != nil {
		w.logger.Error("cleanup: failed to delete media row", "id", job.MediaID, "error", err)
		return
	}

	objectID := mediahost.ObjectIDFromURL(job.URL)
	if objectID == "" {
		w.logger.Warn("cleanup: no remote object id derivable from url", "id", job.MediaID, "url", job.URL)
		return
	}
	if w.host == nil {
		w.logger.Info("cleanup: media host disabled, skipping remote delete", "id", job.MediaID, "object_id", objectID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.remoteTimeout)
	defer cancel()

	if err := w.host.Delete(ctx, objectID); err != nil {
		// Logged only: never surfaced, never retried
		w.logger.Error("cleanup: remote delete failed", "id", job.MediaID, "object_id", objectID, "error", err)
		return
	}

	w.logger.Info("cleanup: media deleted", "id", job.MediaID, "object_id", objectID)
}
