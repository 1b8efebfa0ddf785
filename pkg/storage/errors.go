package storage

import "emailfinder/pkg/serrors"

var (
	// ErrSessionNotFound is returned by Get for a missing or expired session.
	ErrSessionNotFound = serrors.With(serrors.ErrNotFound, "session not found")
	// ErrClosed is returned by every operation after Close.
	ErrClosed = serrors.With(serrors.ErrUnavailable, "session store closed")
)
