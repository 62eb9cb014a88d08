package storage

import (
	"context"

	"github.com/patrickmn/go-cache"
)

// Memory keeps values in process memory; it is the default backend and the
// one used in tests.
type Memory struct {
	c *cache.Cache
}

func NewMemory() *Memory {
	return &Memory{c: cache.New(cache.NoExpiration, 0)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, ErrNotFound
	}
	return cloneBytes(v.([]byte)), nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.c.Set(key, cloneBytes(value), cache.NoExpiration)
	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.c.Delete(key)
	return nil
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
