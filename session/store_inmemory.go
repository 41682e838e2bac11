package session

import "sync"

// InMemoryStore is a thread-safe in-memory implementation of Store. The
// process is expected to run continuously; durable resumption state lives in
// the persistent identity map, not here.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

var _ Store = (*InMemoryStore)(nil)

// NewInMemoryStore creates an empty session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		records: make(map[string]*Record),
	}
}

func (s *InMemoryStore) Get(sessionID string) (*Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[sessionID]
	return record, ok
}

func (s *InMemoryStore) Put(sessionID string, record *Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[sessionID] = record
}

func (s *InMemoryStore) Remove(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, sessionID)
}

func (s *InMemoryStore) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	return ids
}

func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}
