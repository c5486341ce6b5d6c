package cache

import (
	"context"
	"sync"
	"time"

	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/metrics"
)

type memoryEntry struct {
	val     []byte
	expires time.Time
}

// Memory is a process-local Store. Expired keys are dropped lazily on read.
type Memory struct {
	mu    sync.RWMutex
	items map[string]memoryEntry
	now   func() time.Time
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]memoryEntry), now: time.Now}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.items[key]
	m.mu.RUnlock()

	if ok && m.expired(e) {
		m.mu.Lock()
		// A Set may have replaced the entry since the read lock was dropped.
		if cur, still := m.items[key]; still && m.expired(cur) {
			delete(m.items, key)
		}
		m.mu.Unlock()
		ok = false
	}
	if !ok {
		metrics.CacheMisses.WithLabelValues("memory").Inc()
		return nil, false, nil
	}

	metrics.CacheHits.WithLabelValues("memory").Inc()
	out := make([]byte, len(e.val))
	copy(out, e.val)
	return out, true, nil
}

func (m *Memory) expired(e memoryEntry) bool {
	return !e.expires.IsZero() && m.now().After(e.expires)
}

func (m *Memory) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	e := memoryEntry{val: append([]byte(nil), val...)}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.items[key] = e
	m.mu.Unlock()
	return nil
}

func (m *Memory) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, k := range keys {
		delete(m.items, k)
	}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Driver() string { return "memory" }

// Close is a no-op.
func (m *Memory) Close() error { return nil }

// Len reports the number of stored keys, expired or not.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
