// Package filestore provides a storage.SessionStore persisted to a YAML file,
// used by the CLI to remember the signed-in account between invocations.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"emailfinder/pkg/domain"
	"emailfinder/pkg/storage"

	"gopkg.in/yaml.v3"
)

type record struct {
	domain.Session `yaml:",inline"`
	ExpiresAt      *time.Time `yaml:"expiresAt,omitempty"`
}

type document struct {
	Sessions map[string]record `yaml:"sessions"`
}

// Store rewrites the whole file on every change. The file is created with
// 0600 permissions since it holds bearer tokens.
type Store struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func (s *Store) load() (document, error) {
	doc := document{Sessions: map[string]record{}}

	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("could not read credentials file: %w", err)
	}

	if err := yaml.Unmarshal(b, &doc); err != nil {
		return doc, fmt.Errorf("could not parse credentials file: %w", err)
	}
	if doc.Sessions == nil {
		doc.Sessions = map[string]record{}
	}

	return doc, nil
}

func (s *Store) save(doc document) error {
	b, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("could not encode credentials: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("could not create credentials directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".credentials-*")
	if err != nil {
		return fmt.Errorf("could not create temp file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("could not write credentials: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("could not set credentials permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close credentials: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("could not replace credentials file: %w", err)
	}

	return nil
}

// Get implements storage.SessionStore.
func (s *Store) Get(_ context.Context, key string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return domain.Session{}, err
	}

	r, ok := doc.Sessions[key]
	if !ok || (r.ExpiresAt != nil && !s.now().Before(*r.ExpiresAt)) {
		return domain.Session{}, storage.ErrSessionNotFound
	}

	return r.Session, nil
}

// Put implements storage.SessionStore.
func (s *Store) Put(_ context.Context, key string, session domain.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	r := record{Session: session}
	if ttl > 0 {
		exp := s.now().Add(ttl).UTC()
		r.ExpiresAt = &exp
	}
	doc.Sessions[key] = r

	return s.save(doc)
}

// Delete implements storage.SessionStore. The file is left in place even when
// it ends up empty.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := doc.Sessions[key]; !ok {
		return nil
	}
	delete(doc.Sessions, key)

	return s.save(doc)
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

var _ storage.SessionStore = (*Store)(nil)

// New returns a Store for the file at path. The file is created on first Put.
func New(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// DefaultPath is ~/.config/emailfinder/credentials.yml, or a file in the
// working directory when the user config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "emailfinder-credentials.yml"
	}

	return filepath.Join(dir, "emailfinder", "credentials.yml")
}
