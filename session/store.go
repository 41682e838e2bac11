package session

// Store is the single source of truth mapping session ids to records.
// Implementations guard their own map operations; per-record serialization is
// the caller's responsibility (the interview service holds one lock per
// session id and routes both the request path and the sweeper through it).
type Store interface {
	// Get returns the record for id, or false if none exists.
	Get(sessionID string) (*Record, bool)

	// Put stores or replaces the record for id.
	Put(sessionID string, record *Record)

	// Remove deletes the record for id. Removing an absent id is a no-op.
	Remove(sessionID string)

	// IDs returns a snapshot of every stored session id. Record state must
	// only be inspected under the per-session lock; the store's own lock
	// covers the map, not the records it points at.
	IDs() []string

	// Len returns the number of stored records.
	Len() int
}
