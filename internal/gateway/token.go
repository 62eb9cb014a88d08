package gateway

import (
	"context"

	"backoffice/internal/storage"

	"github.com/pkg/errors"
)

// TokenSource supplies the bearer token for API calls.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

var tokenKey = storage.Key("auth-token")

// KVToken keeps the token in the persistence port so it survives restarts.
type KVToken struct {
	kv storage.KV
}

func NewKVToken(kv storage.KV) *KVToken {
	return &KVToken{kv: kv}
}

func (t *KVToken) Token(ctx context.Context) (string, error) {
	raw, err := t.kv.Get(ctx, tokenKey)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (t *KVToken) Set(ctx context.Context, token string) error {
	return t.kv.Set(ctx, tokenKey, []byte(token))
}

func (t *KVToken) Clear(ctx context.Context) error {
	return t.kv.Remove(ctx, tokenKey)
}
