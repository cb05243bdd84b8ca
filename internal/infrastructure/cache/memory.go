package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// MemoryCache is a process-local, size-bounded TTL cache.
// Values are stored as JSON so Get/Set keep the same marshal contract an
// external cache would have. When the entry count reaches maxEntries the
// oldest ~25% (by insertion order) are evicted to make room.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]entry
	order      []string // insertion order; may hold stale keys, skipped on eviction
	maxEntries int
	now        func() time.Time
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryCache creates a cache bounded to maxEntries. The clock is
// injectable for tests; pass nil for time.Now.
func NewMemoryCache(maxEntries int, clock func() time.Time) *MemoryCache {
	if clock == nil {
		clock = time.Now
	}
	return &MemoryCache{
		entries:    make(map[string]entry),
		maxEntries: maxEntries,
		now:        clock,
	}
}

func (m *MemoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return false, nil
	}

	if m.now().After(e.expiresAt) {
		delete(m.entries, key)
		return false, nil
	}

	if err := json.Unmarshal(e.data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal failed for key %s: %w", key, err)
	}

	return true, nil
}

func (m *MemoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed for key %s: %w", key, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; !exists {
		if len(m.entries) >= m.maxEntries {
			m.evictOldest()
		}
		m.order = append(m.order, key)
	}

	m.entries[key] = entry{
		data:      data,
		expiresAt: m.now().Add(ttl),
	}

	return nil
}

// evictOldest removes roughly a quarter of maxEntries in insertion order.
// Caller holds the lock.
func (m *MemoryCache) evictOldest() {
	quota := m.maxEntries / 4
	if quota < 1 {
		quota = 1
	}

	evicted := 0
	i := 0
	for ; i < len(m.order) && evicted < quota; i++ {
		key := m.order[i]
		if _, ok := m.entries[key]; ok {
			delete(m.entries, key)
			evicted++
		}
	}
	m.order = m.order[i:]
}

func (m *MemoryCache) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.entries, key)
	}
	return nil
}

func (m *MemoryCache) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]entry)
	m.order = nil
	return nil
}

func (m *MemoryCache) Prune(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	pruned := 0
	for key, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, key)
			pruned++
		}
	}

	// Drop stale order entries so the slice cannot grow unbounded.
	if pruned > 0 {
		live := m.order[:0]
		for _, key := range m.order {
			if _, ok := m.entries[key]; ok {
				live = append(live, key)
			}
		}
		m.order = live
	}

	return pruned, nil
}

func (m *MemoryCache) Ping(ctx context.Context) error {
	return nil
}

// Len reports the current entry count. Used by tests and the health check.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
