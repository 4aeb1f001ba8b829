package auth

import (
	"context"
	"sync"
	"time"

	"github.com/01moynul/artstudio-golang/internal/storage"
)

type entry struct {
	c        *Container
	lastUsed time.Time
}

// Registry hands out exactly one Container per session id.
type Registry struct {
	mu      sync.Mutex
	dir     *Directory
	store   storage.Adapter
	latency time.Duration
	entries map[string]*entry
	now     func() time.Time
}

func NewRegistry(dir *Directory, store storage.Adapter, latency time.Duration) *Registry {
	return &Registry{dir: dir, store: store, latency: latency, entries: make(map[string]*entry), now: time.Now}
}

// For returns the session's container, hydrating it on first use.
// Hydration runs outside the lock; when two requests race, the first stored container wins.
func (r *Registry) For(ctx context.Context, sessionID string) *Container {
	if c, ok := r.lookup(sessionID); ok {
		return c
	}

	c := New(ctx, r.dir, r.store, storage.SessionKey(sessionID), r.latency)

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[sessionID]; ok {
		e.lastUsed = r.now()
		return e.c
	}
	r.entries[sessionID] = &entry{c: c, lastUsed: r.now()}
	return c
}

func (r *Registry) lookup(sessionID string) (*Container, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[sessionID]
	if !ok {
		return nil, false
	}
	e.lastUsed = r.now()
	return e.c, true
}

// Evict drops containers unused for longer than idle and returns how many.
func (r *Registry) Evict(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	n := 0
	for id, e := range r.entries {
		if e.lastUsed.Before(cutoff) {
			delete(r.entries, id)
			n++
		}
	}
	return n
}

// Directory exposes the shared user list.
func (r *Registry) Directory() *Directory {
	return r.dir
}
