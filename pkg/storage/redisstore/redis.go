// Package redisstore provides a storage.SessionStore backed by Redis, for web
// deployments where several instances share sessions.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"emailfinder/pkg/domain"
	"emailfinder/pkg/storage"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "emailfinder:session:"

// Store keeps each session as a JSON string under keyPrefix+key.
type Store struct {
	client    *redis.Client
	keyPrefix string
}

// Option configures a Store.
type Option func(*Store)

// WithKeyPrefix overrides the namespace sessions are stored under.
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) {
		s.keyPrefix = prefix
	}
}

// Get implements storage.SessionStore.
func (s *Store) Get(ctx context.Context, key string) (domain.Session, error) {
	b, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Session{}, storage.ErrSessionNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("could not get session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(b, &session); err != nil {
		return domain.Session{}, fmt.Errorf("could not decode session: %w", err)
	}

	return session, nil
}

// Put implements storage.SessionStore.
func (s *Store) Put(ctx context.Context, key string, session domain.Session, ttl time.Duration) error {
	b, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("could not encode session: %w", err)
	}
	if ttl < 0 {
		ttl = 0
	}

	if err := s.client.Set(ctx, s.keyPrefix+key, b, ttl).Err(); err != nil {
		return fmt.Errorf("could not store session: %w", err)
	}

	return nil
}

// Delete implements storage.SessionStore.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("could not delete session: %w", err)
	}

	return nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

var _ storage.SessionStore = (*Store)(nil)

// New wraps an existing client.
func New(client *redis.Client, opts ...Option) *Store {
	s := &Store{client: client, keyPrefix: defaultKeyPrefix}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// Connect parses a redis:// URL, verifies the server answers and returns a
// Store using the resulting client.
func Connect(ctx context.Context, url string, opts ...Option) (*Store, error) {
	ropts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("could not parse redis URL: %w", err)
	}

	client := redis.NewClient(ropts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("could not ping redis: %w", err)
	}

	return New(client, opts...), nil
}
