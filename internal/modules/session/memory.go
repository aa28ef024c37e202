// README: In-memory session store with expiry, used when Redis is not configured.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[uuid.UUID]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *MemoryStore) Get(ctx context.Context, id uuid.UUID) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.sessions[id]
	if !ok || (m.ttl > 0 && m.now().After(e.expiresAt)) {
		return Session{}, ErrNotFound
	}
	return e.session, nil
}

func (m *MemoryStore) Save(ctx context.Context, sess Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, e := range m.sessions {
		if m.ttl > 0 && now.After(e.expiresAt) {
			delete(m.sessions, id)
		}
	}
	m.sessions[sess.ID] = memoryEntry{session: sess, expiresAt: now.Add(m.ttl)}
	return nil
}
