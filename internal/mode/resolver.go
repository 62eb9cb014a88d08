// Package mode decides whether stores talk to the remote API ("live") or to
// their local seed ("demo").
package mode

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"backoffice/internal/storage"
)

const (
	Demo = "demo"
	Live = "live"
)

type Config struct {
	DataMode   string `json:"dataMode"`
	APIBaseURL string `json:"apiBaseUrl"`
}

// Resolver holds the persisted data-mode config. Switching modes does not
// refetch anything: stores keep whatever they loaded from the previous source
// until Fetch is called again.
type Resolver struct {
	mu  sync.RWMutex
	cfg Config
	kv  storage.KV
}

var configKey = storage.Key("data-mode")

// NewResolver reads the persisted config, falling back to def.
func NewResolver(ctx context.Context, kv storage.KV, def Config) (*Resolver, error) {
	r := &Resolver{kv: kv, cfg: normalize(def)}

	var saved Config
	found, err := storage.GetJSON(ctx, kv, configKey, &saved)
	if err != nil {
		return nil, err
	}
	if found {
		r.cfg = normalize(saved)
	}
	return r, nil
}

func (r *Resolver) Current() Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg
}

func (r *Resolver) IsLiveMode() bool {
	cfg := r.Current()
	return cfg.DataMode == Live && cfg.APIBaseURL != ""
}

// APIURL joins the configured base URL with path.
func (r *Resolver) APIURL(path string) string {
	base := strings.TrimRight(r.Current().APIBaseURL, "/")
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

func (r *Resolver) Set(ctx context.Context, cfg Config) error {
	cfg = normalize(cfg)
	if cfg.DataMode != Demo && cfg.DataMode != Live {
		return fmt.Errorf("mode: unknown data mode %q", cfg.DataMode)
	}
	if err := storage.SetJSON(ctx, r.kv, configKey, cfg); err != nil {
		return err
	}

	r.mu.Lock()
	r.cfg = cfg
	r.mu.Unlock()
	return nil
}

func normalize(cfg Config) Config {
	cfg.DataMode = strings.ToLower(strings.TrimSpace(cfg.DataMode))
	if cfg.DataMode == "" {
		cfg.DataMode = Demo
	}
	cfg.APIBaseURL = strings.TrimSpace(cfg.APIBaseURL)
	return cfg
}
