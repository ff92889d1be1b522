package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultMemorySize = 1024

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is an in-process LRU with per-entry expiry. It is shared by all
// requests of one server process only.
type MemoryStore struct {
	cache *lru.Cache[string, memoryEntry]
	now   func() time.Time
}

func NewMemoryStore(size int) (*MemoryStore, error) {
	c, err := lru.New[string, memoryEntry](size)
	if err != nil {
		return nil, err
	}
	return &MemoryStore{cache: c, now: time.Now}, nil
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	entry, ok := m.cache.Get(key)
	if !ok {
		return "", false, nil
	}
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		m.cache.Remove(key)
		return "", false, nil
	}
	return entry.value, true, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.cache.Add(key, entry)
	return nil
}
