package session

import "sync"

// MemoryStore keeps sessions in a map guarded by a single mutex.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string][]HistoryEntry
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string][]HistoryEntry),
	}
}

// lookup returns the history for id, materializing the default session.
// Callers must hold s.mu.
func (s *MemoryStore) lookup(id string) ([]HistoryEntry, bool) {
	history, ok := s.sessions[id]
	if !ok && id == DefaultID {
		history = []HistoryEntry{}
		s.sessions[id] = history
		ok = true
	}
	return history, ok
}

// Create implements Store.
func (s *MemoryStore) Create(id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; ok {
		return exists(id)
	}
	s.sessions[id] = []HistoryEntry{}
	return nil
}

// Append implements Store.
func (s *MemoryStore) Append(id string, entry HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	history, ok := s.lookup(id)
	if !ok {
		return notFound(id)
	}
	s.sessions[id] = append(history, entry.clone())
	return nil
}

// History implements Store.
func (s *MemoryStore) History(id string) ([]HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	history, ok := s.lookup(id)
	if !ok {
		return nil, notFound(id)
	}
	out := make([]HistoryEntry, len(history))
	for i, e := range history {
		out[i] = e.clone()
	}
	return out, nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lookup(id); !ok {
		return notFound(id)
	}
	delete(s.sessions, id)
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}
