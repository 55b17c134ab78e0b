package auth

import (
	"sync"
	"time"
)

// MemoryStore is a minimal in-memory implementation of storage.Storage,
// used as the token revocation store for the sqlite driver and in tests.
// Deployments backed by mysql or postgres use the matching gofiber storage.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
}

type memoryEntry struct {
	val []byte
	exp time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]memoryEntry)}
}

// Get returns the stored value, or nil when absent or expired.
func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.data[key]
	if !ok {
		return nil, nil
	}

	if !entry.exp.IsZero() && time.Now().After(entry.exp) {
		return nil, nil
	}

	out := make([]byte, len(entry.val))
	copy(out, entry.val)

	return out, nil
}

// Set stores a value with an optional expiry.
func (s *MemoryStore) Set(key string, val []byte, exp time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := memoryEntry{val: append([]byte(nil), val...)}
	if exp > 0 {
		entry.exp = time.Now().Add(exp)
	}

	s.data[key] = entry

	return nil
}

// Delete removes a key.
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)

	return nil
}

// Reset removes all keys.
func (s *MemoryStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string]memoryEntry)

	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
