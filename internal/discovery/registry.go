package discovery

import (
	"sync"
	"time"
)

type registryEntry struct {
	workflow *Workflow
	lastUsed time.Time
}

// Registry hands out one Workflow per session key.
type Registry struct {
	mu      sync.Mutex
	svc     Service
	options WorkflowOptions
	entries map[string]*registryEntry
	now     func() time.Time
}

// Get returns the workflow of key, creating it on first use.
func (r *Registry) Get(key string) *Workflow {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok {
		e = &registryEntry{workflow: NewWorkflow(r.svc, r.options)}
		r.entries[key] = e
	}
	e.lastUsed = r.now()

	return e.workflow
}

// Drop forgets the workflow of key.
func (r *Registry) Drop(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, key)
}

// Len is the number of live workflows.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}

// Sweep drops workflows unused for longer than idle, skipping running ones.
// It returns how many were dropped.
func (r *Registry) Sweep(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	n := 0
	for k, e := range r.entries {
		if e.lastUsed.After(cutoff) || e.workflow.Running() {
			continue
		}
		delete(r.entries, k)
		n++
	}

	return n
}

func NewRegistry(svc Service, options WorkflowOptions) *Registry {
	return NewRegistryWithClock(svc, options, time.Now)
}

func NewRegistryWithClock(svc Service, options WorkflowOptions, now func() time.Time) *Registry {
	return &Registry{
		svc:     svc,
		options: options,
		entries: make(map[string]*registryEntry),
		now:     now,
	}
}
