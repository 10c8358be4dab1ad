package store

import "sync"

// MemoryStore implements KeyValue in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
	quota   int64
	failErr error
	writes  int
	closed  bool
}

// NewMemoryStore creates an empty in-memory store. A quota of zero means unlimited.
func NewMemoryStore(quota int64) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]string),
		quota:   quota,
	}
}

// Get returns the value stored under key.
func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, ErrClosed
	}
	v, ok := s.entries[key]
	return v, ok, nil
}

// Set replaces the value stored under key.
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.failErr != nil {
		return s.failErr
	}
	if !fits(s.entries, s.quota, key, value) {
		return ErrQuotaExceeded
	}
	s.entries[key] = value
	s.writes++
	return nil
}

// Delete removes key.
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	delete(s.entries, key)
	return nil
}

// Close marks the store closed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// FailWrites makes every subsequent Set return err. Pass nil to restore writes.
func (s *MemoryStore) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

// Writes returns the number of successful Set calls.
func (s *MemoryStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
