// Package memory provides an in-process storage.SessionStore. Sessions are
// lost on restart, which is acceptable for a single web instance.
package memory

import (
	"context"
	"sync"
	"time"

	"emailfinder/pkg/domain"
	"emailfinder/pkg/storage"
)

type entry struct {
	session   domain.Session
	expiresAt time.Time // zero means no expiry
}

// Store is safe for concurrent use. Expired entries are dropped lazily on
// read and by Sweep.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	closed  bool
	now     func() time.Time
}

// Get implements storage.SessionStore.
func (s *Store) Get(_ context.Context, key string) (domain.Session, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	closed := s.closed
	s.mu.RUnlock()

	if closed {
		return domain.Session{}, storage.ErrClosed
	}
	if !ok {
		return domain.Session{}, storage.ErrSessionNotFound
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()

		return domain.Session{}, storage.ErrSessionNotFound
	}

	return e.session, nil
}

// Put implements storage.SessionStore.
func (s *Store) Put(_ context.Context, key string, session domain.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storage.ErrClosed
	}

	e := entry{session: session}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.entries[key] = e

	return nil
}

// Delete implements storage.SessionStore.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storage.ErrClosed
	}
	delete(s.entries, key)

	return nil
}

// Sweep removes every expired entry and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for k, e := range s.entries {
		if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
			delete(s.entries, k)
			n++
		}
	}

	return n
}

// Close implements storage.SessionStore.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.entries = nil

	return nil
}

var _ storage.SessionStore = (*Store)(nil)

// New returns an empty Store.
func New() *Store {
	return NewWithClock(time.Now)
}

// NewWithClock returns an empty Store that reads time from now.
func NewWithClock(now func() time.Time) *Store {
	return &Store{entries: make(map[string]entry), now: now}
}
