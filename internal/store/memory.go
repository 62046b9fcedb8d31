package store

import (
	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

func init() {
	Register("memory", newMemoryStore)
}

// memoryStore wraps hashicorp/golang-lru/v2/expirable to implement the Store
// interface. A zero TTL disables expiry, so with a generous Size this behaves
// as a plain in-process table; the LRU bound is a safety valve, not a cache
// policy.
type memoryStore struct {
	inner *lru.LRU[string, []byte]
}

func newMemoryStore(cfg ProviderConfig) (Store, error) {
	var onEvict func(string, []byte)
	if cfg.OnEvict != nil {
		onEvict = func(key string, value []byte) {
			cfg.OnEvict(key, value)
		}
	}
	return &memoryStore{
		inner: lru.NewLRU[string, []byte](cfg.Size, onEvict, cfg.TTL),
	}, nil
}

func (m *memoryStore) Get(key string) ([]byte, bool) {
	return m.inner.Get(key)
}

func (m *memoryStore) Set(key string, value []byte) error {
	m.inner.Add(key, value)
	return nil
}

func (m *memoryStore) Contains(key string) bool {
	return m.inner.Contains(key)
}

func (m *memoryStore) Len() int {
	return m.inner.Len()
}

func (m *memoryStore) Close() error {
	return nil
}
