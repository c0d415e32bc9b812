package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in a mutex-guarded map. It is the
// fallback backend when Redis is unreachable and the backend used by
// tests. Expired records linger until the next Lookup triggers
// eviction by the caller; there is no background sweeper.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	now      func() time.Time
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the store's time source. Tests use it to simulate
// the passage of time past a session's expiry.
func (m *MemoryStore) SetClock(now func() time.Time) { m.now = now }

// Create issues a session for username valid for ttl.
func (m *MemoryStore) Create(_ context.Context, username string, ttl time.Duration) (Session, error) {
	now := m.now()
	s := Session{
		ID:        newToken(),
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s, nil
}

// Lookup returns the stored session, expired or not.
func (m *MemoryStore) Lookup(_ context.Context, id string) (Session, bool, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	return s, ok, nil
}

// Delete removes the session; absent ids are ignored.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

// Close discards all sessions.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	m.sessions = make(map[string]Session)
	m.mu.Unlock()
	return nil
}
