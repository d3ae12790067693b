package cache

import (
	"context"
	"sync"
	"time"

	"qbr-dash/internal/qbr"
)

type memoryEntry struct {
	Rows []qbr.Summary
	Time time.Time
}

// Memory is an in-process TTL cache.
type Memory struct {
	mu   sync.Mutex
	ttl  time.Duration
	data map[string]memoryEntry
	now  func() time.Time
}

// NewMemory creates a Memory cache whose entries live for ttl.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:  ttl,
		data: make(map[string]memoryEntry),
		now:  time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]qbr.Summary, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ent, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	if m.now().Sub(ent.Time) >= m.ttl {
		delete(m.data, key)
		return nil, false, nil
	}
	return cloneRows(ent.Rows), true, nil
}

// Set stores rows under key and drops every expired entry.
func (m *Memory) Set(_ context.Context, key string, rows []qbr.Summary) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, ent := range m.data {
		if now.Sub(ent.Time) >= m.ttl {
			delete(m.data, k)
		}
	}
	m.data[key] = memoryEntry{Rows: cloneRows(rows), Time: now}
	return nil
}

// Len returns the number of entries, expired or not.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

func cloneRows(rows []qbr.Summary) []qbr.Summary {
	out := make([]qbr.Summary, len(rows))
	copy(out, rows)
	return out
}
