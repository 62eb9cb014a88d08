package storage

import (
	"context"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
)

// Memcached does not expire entries; values survive until the server evicts
// or restarts, so it only suits demo deployments.
type Memcached struct {
	mc *memcache.Client
}

func NewMemcached(server string) *Memcached {
	return &Memcached{mc: memcache.New(server)}
}

func (m *Memcached) Get(_ context.Context, key string) ([]byte, error) {
	it, err := m.mc.Get(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "storage: memcached get %s", key)
	}
	return it.Value, nil
}

func (m *Memcached) Set(_ context.Context, key string, value []byte) error {
	err := m.mc.Set(&memcache.Item{Key: key, Value: value})
	return errors.Wrapf(err, "storage: memcached set %s", key)
}

func (m *Memcached) Remove(_ context.Context, key string) error {
	err := m.mc.Delete(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil
	}
	return errors.Wrapf(err, "storage: memcached remove %s", key)
}
