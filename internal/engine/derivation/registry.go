// Package derivation decides when a sketch's compiler configuration must be
// re-derived and runs the derivation pipeline.
package derivation

import (
	"slices"
	"sync"

	"go.trai.ch/sketchsense/internal/core/domain"
)

// Decision is the outcome of Registry.Begin.
type Decision int

const (
	// DecisionHit means the cached entry is valid for the request.
	DecisionHit Decision = iota
	// DecisionDerive means the caller now holds the file's lock and must call Finish.
	DecisionDerive
	// DecisionDropped means a derivation for the file is already in flight.
	DecisionDropped
)

func (d Decision) String() string {
	switch d {
	case DecisionHit:
		return "hit"
	case DecisionDerive:
		return "derive"
	case DecisionDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Registry owns the cache entries and regeneration locks of every sketch,
// keyed by file identity.
type Registry struct {
	mu       sync.Mutex
	entries  map[string]*domain.CacheEntry
	deriving map[string]struct{}
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		entries:  make(map[string]*domain.CacheEntry),
		deriving: make(map[string]struct{}),
	}
}

// Begin checks the cache for id and takes its lock when a derivation is
// needed. The check and the lock transition happen atomically. A request for
// a file that is already deriving is dropped. force skips the hit path.
func (r *Registry) Begin(id string, fp domain.Fingerprint, boardID string, force bool) (*domain.CacheEntry, Decision) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, busy := r.deriving[id]; busy {
		return nil, DecisionDropped
	}

	entry := r.entries[id]
	if !force && entry.Matches(fp, boardID) {
		return entry, DecisionHit
	}

	r.deriving[id] = struct{}{}
	return entry, DecisionDerive
}

// Finish stores entry for id, when non-nil, and releases the lock. A nil entry
// leaves the previous one in place.
func (r *Registry) Finish(id string, entry *domain.CacheEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry != nil {
		r.entries[id] = entry
	}
	delete(r.deriving, id)
}

// Seed installs entry unless the registry already knows its file.
// It reports whether the entry was installed.
func (r *Registry) Seed(entry *domain.CacheEntry) bool {
	if entry == nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[entry.FileID]; ok {
		return false
	}
	r.entries[entry.FileID] = entry
	return true
}

// Known reports whether id has a cache entry.
func (r *Registry) Known(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[id]
	return ok
}

// Lookup returns the cache entry of id.
func (r *Registry) Lookup(id string) (*domain.CacheEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	return e, ok
}

// Deriving reports whether a derivation for id is in flight.
func (r *Registry) Deriving(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.deriving[id]
	return ok
}

// Files returns the sorted identities of every cached file under root.
func (r *Registry) Files(root string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ids []string
	for id := range r.entries {
		if domain.IsWithin(root, id) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// InvalidateWorkspace drops every entry whose file lies under root and
// returns the dropped identities, sorted. Locks are left alone.
func (r *Registry) InvalidateWorkspace(root string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var dropped []string
	for id := range r.entries {
		if domain.IsWithin(root, id) {
			delete(r.entries, id)
			dropped = append(dropped, id)
		}
	}
	slices.Sort(dropped)
	return dropped
}
