package linklock

import (
	"sync"
	"time"
)

// InMemoryRegistry is a thread-safe in-memory implementation of Registry.
type InMemoryRegistry struct {
	mu      sync.Mutex
	entries map[string]Entry
	nowTime func() time.Time
}

var _ Registry = (*InMemoryRegistry)(nil)

// NewInMemoryRegistry creates an empty link lock registry.
func NewInMemoryRegistry() *InMemoryRegistry {
	return &InMemoryRegistry{
		entries: make(map[string]Entry),
		nowTime: time.Now,
	}
}

func (r *InMemoryRegistry) TryClaim(linkID, fingerprint string) (owned, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.entries[linkID]
	if !exists {
		r.entries[linkID] = Entry{
			LinkID:      linkID,
			Fingerprint: fingerprint,
			LockedAt:    r.nowTime(),
		}
		return true, true
	}
	if entry.Fingerprint == fingerprint {
		return true, false
	}
	return false, false
}

func (r *InMemoryRegistry) Owner(linkID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.entries[linkID]
	if !exists {
		return "", false
	}
	return entry.Fingerprint, true
}

func (r *InMemoryRegistry) Release(linkID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, linkID)
}
