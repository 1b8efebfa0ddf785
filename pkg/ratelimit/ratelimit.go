// Package ratelimit implements an in-memory sliding-window limiter keyed by
// arbitrary strings (typically session id plus action).
package ratelimit

import (
	"sync"
	"time"
)

// Result describes the outcome of one Allow call.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter is how long the caller should wait before trying again.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed || !r.ResetAt.After(now) {
		return 0
	}

	return r.ResetAt.Sub(now)
}

type window struct {
	hits []time.Time
}

// prune drops hits older than cutoff. Hits are kept in arrival order.
func (w *window) prune(cutoff time.Time) {
	i := 0
	for ; i < len(w.hits); i++ {
		if w.hits[i].After(cutoff) {
			break
		}
	}
	w.hits = w.hits[i:]
}

// Limiter allows at most limit hits per key within any span of length per.
// It is safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	limit   int
	per     time.Duration
	windows map[string]*window
	now     func() time.Time
}

// Allow records a hit for key when it fits in the window.
func (l *Limiter) Allow(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w := l.windows[key]
	if w == nil {
		w = &window{}
		l.windows[key] = w
	}
	w.prune(now.Add(-l.per))

	if len(w.hits) >= l.limit {
		return Result{Allowed: false, Limit: l.limit, Remaining: 0, ResetAt: w.hits[0].Add(l.per)}
	}

	w.hits = append(w.hits, now)

	return Result{
		Allowed:   true,
		Limit:     l.limit,
		Remaining: l.limit - len(w.hits),
		ResetAt:   w.hits[0].Add(l.per),
	}
}

// Reset forgets every hit recorded for key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.windows, key)
}

// Sweep drops keys whose windows are empty.
func (l *Limiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.per)
	for k, w := range l.windows {
		w.prune(cutoff)
		if len(w.hits) == 0 {
			delete(l.windows, k)
		}
	}
}

// New returns a Limiter allowing limit hits per duration. A non-positive
// limit disables limiting.
func New(limit int, per time.Duration) *Limiter {
	return NewWithClock(limit, per, time.Now)
}

// NewWithClock is New with an injectable clock.
func NewWithClock(limit int, per time.Duration, now func() time.Time) *Limiter {
	if limit <= 0 {
		limit = int(^uint(0) >> 1)
	}

	return &Limiter{limit: limit, per: per, windows: make(map[string]*window), now: now}
}
