// Package capturetest provides an in-memory capture.Store for tests.
package capturetest

import (
	"context"
	"path"
	"sort"
	"sync"
	"time"

	"github.com/bxxf/flight-schema/internal/capture"
)

type MemStore struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration

	// Err, when set, is returned by every call.
	Err error
}

func NewMemStore() *MemStore {
	return &MemStore{
		data: make(map[string][]byte),
		ttls: make(map[string]time.Duration),
	}
}

func (m *MemStore) Save(_ context.Context, key string, raw []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.data[key] = append([]byte(nil), raw...)
	m.ttls[key] = ttl
	return nil
}

func (m *MemStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	raw, ok := m.data[key]
	if !ok {
		return nil, capture.ErrNotFound
	}
	return append([]byte(nil), raw...), nil
}

// Keys matches with path.Match, which agrees with redis KEYS for the
// prefix:* patterns the service uses.
func (m *MemStore) Keys(_ context.Context, pattern string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	keys := []string{}
	for key := range m.data {
		if ok, _ := path.Match(pattern, key); ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	delete(m.data, key)
	delete(m.ttls, key)
	return nil
}

// Put stores raw directly, bypassing validation.
func (m *MemStore) Put(key string, raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
}

func (m *MemStore) TTL(key string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ttls[key]
}
