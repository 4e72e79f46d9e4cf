package sessions

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// MemoryStore is a process-local Store for single-instance deployments and
// tests.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: map[string]memoryEntry{},
	}
}

func (m *MemoryStore) Create(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweepLocked(now)
	if _, ok := m.entries[s.ID]; ok {
		return ErrExists
	}
	m.entries[s.ID] = memoryEntry{session: s, expiresAt: now.Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.liveLocked(id, m.now())
	if !ok {
		return Session{}, ErrNotFound
	}
	return e.session, nil
}

func (m *MemoryStore) Update(_ context.Context, id string, fn UpdateFunc) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	e, ok := m.liveLocked(id, now)
	if !ok {
		return Session{}, ErrNotFound
	}
	s := e.session
	if err := fn(&s); err != nil {
		return Session{}, err
	}
	m.entries[id] = memoryEntry{session: s, expiresAt: now.Add(m.ttl)}
	return s, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.liveLocked(id, m.now()); !ok {
		return ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

// Len reports the number of live sessions.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked(m.now())
	return len(m.entries)
}

func (m *MemoryStore) liveLocked(id string, now time.Time) (memoryEntry, bool) {
	e, ok := m.entries[id]
	if !ok {
		return memoryEntry{}, false
	}
	if !now.Before(e.expiresAt) {
		delete(m.entries, id)
		return memoryEntry{}, false
	}
	return e, true
}

func (m *MemoryStore) sweepLocked(now time.Time) {
	for id, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, id)
		}
	}
}
