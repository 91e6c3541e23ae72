package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is a process-wide, thread-safe in-memory store with lazy TTL
// expiry: entries are checked on read and removed once stale. There is no
// background eviction goroutine.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
	}
}

// Get returns the value for key, or ErrCacheMiss if absent or expired.
// Expired entries are deleted on the way out.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		CacheMisses.Inc()
		return nil, ErrCacheMiss
	}

	if time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		// Re-check under the write lock; a racing Set may have refreshed it.
		if cur, ok := m.entries[key]; ok && time.Now().After(cur.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		CacheMisses.Inc()
		return nil, ErrCacheMiss
	}

	CacheHits.WithLabelValues("memory").Inc()
	return entry.value, nil
}

// Set stores value under key for the given TTL, replacing any previous
// entry. Values with a non-positive TTL are not stored.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	buf := make([]byte, len(value))
	copy(buf, value)

	m.mu.Lock()
	m.entries[key] = memoryEntry{
		value:     buf,
		expiresAt: time.Now().Add(ttl),
	}
	m.mu.Unlock()

	return nil
}

// Delete removes the entry for key.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Len returns the number of entries currently held, including entries that
// have expired but not yet been read.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
