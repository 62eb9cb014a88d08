// Package storage is the persistence port of the back-office: a namespaced
// key-value store that holds store snapshots, the data-mode config, page-size
// preferences, the gateway token and operator accounts.
package storage

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

const namespace = "backoffice"

var ErrNotFound = errors.New("storage: key not found")

// KV is implemented by every backend (memory, postgres, redis, memcached).
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// Key builds a namespaced key, e.g. Key("store", "jobs") -> "backoffice:store:jobs".
func Key(parts ...string) string {
	return namespace + ":" + strings.Join(parts, ":")
}

// GetJSON decodes the value under key into dst. Missing keys report false
// without an error.
func GetJSON(ctx context.Context, kv KV, key string, dst any) (bool, error) {
	raw, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, errors.Wrapf(err, "storage: decode %s", key)
	}
	return true, nil
}

func SetJSON(ctx context.Context, kv KV, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "storage: encode %s", key)
	}
	return kv.Set(ctx, key, raw)
}
