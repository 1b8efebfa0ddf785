// Package storage defines where authenticated sessions are kept between
// requests (web) or invocations (CLI). Implementations live in subpackages:
// memory for a single process, redis for shared web deployments and file for
// the CLI credentials file.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import (
	"context"
	"time"

	"emailfinder/pkg/domain"
)

// SessionStore persists a bearer token and its user under an opaque key.
type SessionStore interface {
	// Get returns the session stored under key, or ErrSessionNotFound when it
	// does not exist or has expired.
	Get(ctx context.Context, key string) (domain.Session, error)
	// Put stores s under key. A zero ttl keeps it until deleted.
	Put(ctx context.Context, key string, s domain.Session, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases held resources. The store must not be used afterwards.
	Close() error
}
