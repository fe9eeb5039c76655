package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
)

// Memory is an in-process Cache, used by tests and single-instance setups.
type Memory struct {
	mu    sync.Mutex
	items map[string]memoryItem
	now   func() time.Time
}

type memoryItem struct {
	data    []byte
	expires time.Time
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]memoryItem), now: time.Now}
}

func (m *Memory) GetJSON(_ context.Context, key string, dst any) error {
	if key == "" {
		return ErrCacheKeyEmpty
	}
	m.mu.Lock()
	it, ok := m.items[key]
	if ok && !it.expires.IsZero() && !m.now().Before(it.expires) {
		delete(m.items, key)
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		return ErrCacheMiss
	}
	return sonic.Unmarshal(it.data, dst)
}

func (m *Memory) SetJSON(_ context.Context, key string, v any, ttl time.Duration) error {
	if key == "" {
		return ErrCacheKeyEmpty
	}
	b, err := sonic.Marshal(v)
	if err != nil {
		return err
	}
	it := memoryItem{data: b}
	if ttl > 0 {
		it.expires = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.items[key] = it
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

func (m *Memory) DeletePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.items {
		if strings.HasPrefix(k, prefix) {
			delete(m.items, k)
		}
	}
	return nil
}

func (m *Memory) Close() error { return nil }

// Len reports the number of stored keys, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
