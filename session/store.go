package session

import (
	"sync"
	"time"

	"day-diary/models"

	"github.com/google/uuid"
)

const sessionTTL = 30 * 24 * time.Hour

// Store holds unlocked site-lock sessions in memory with an explicit
// lifecycle: create on unlock, touch on use, delete on lock, periodic expiry
// sweep between StartCleanup and Stop.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
	stopChan chan struct{}
	once     sync.Once
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*models.Session),
		stopChan: make(chan struct{}),
	}
}

func (s *Store) Create() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	sess := &models.Session{
		ID:         uuid.New().String(),
		ExpiresAt:  now.Add(sessionTTL),
		CreatedAt:  now,
		LastUsedAt: now,
	}
	s.sessions[sess.ID] = sess
	return sess
}

// Get returns the session or nil when unknown or expired.
func (s *Store) Get(sessionID string) *models.Session {
	s.mu.RLock()
	sess, exists := s.sessions[sessionID]
	s.mu.RUnlock()

	if !exists || time.Now().After(sess.ExpiresAt) {
		return nil
	}

	s.mu.Lock()
	sess.LastUsedAt = time.Now()
	s.mu.Unlock()
	return sess
}

func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

func (s *Store) cleanupExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, id)
		}
	}
}

// StartCleanup launches the hourly expiry sweep.
func (s *Store) StartCleanup() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.cleanupExpired()
			case <-s.stopChan:
				return
			}
		}
	}()
}

// Stop ends the cleanup routine.
func (s *Store) Stop() {
	s.once.Do(func() { close(s.stopChan) })
}
