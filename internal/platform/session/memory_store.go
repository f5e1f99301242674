package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore is a thread-safe in-memory Store for development and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string]memoryEntry
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		slots: make(map[string]memoryEntry),
		now:   time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, sid string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.slots[sid] = memoryEntry{data: data, expiresAt: s.now().Add(ttl)}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, sid string, dest any) (bool, error) {
	s.mu.RLock()
	entry, ok := s.slots[sid]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.slots, sid)
		s.mu.Unlock()
		return false, nil
	}
	if err := json.Unmarshal(entry.data, dest); err != nil {
		// Unreadable slot: discard it and report absent.
		s.mu.Lock()
		delete(s.slots, sid)
		s.mu.Unlock()
		return false, nil
	}
	return true, nil
}

func (s *MemoryStore) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	delete(s.slots, sid)
	s.mu.Unlock()
	return nil
}

// corrupt overwrites a slot with non-JSON bytes. Test hook.
func (s *MemoryStore) corrupt(sid string) {
	s.mu.Lock()
	if entry, ok := s.slots[sid]; ok {
		entry.data = []byte("{not-json")
		s.slots[sid] = entry
	}
	s.mu.Unlock()
}
