// Package app wires the persistence backend, data mode, gateway and stores
// from config. The HTTP server and the CLI share it.
package app

import (
	"context"
	"log/slog"

	"backoffice/internal/accounts"
	"backoffice/internal/audit"
	"backoffice/internal/config"
	"backoffice/internal/database"
	"backoffice/internal/gateway"
	"backoffice/internal/listview"
	"backoffice/internal/metrics"
	"backoffice/internal/mode"
	"backoffice/internal/storage"
	"backoffice/internal/store"

	"github.com/pkg/errors"
)

type App struct {
	Config   *config.Config
	Log      *slog.Logger
	KV       storage.KV
	Mode     *mode.Resolver
	Tokens   *gateway.KVToken
	Gateway  *gateway.Client
	Stores   *store.Stores
	Audit    *audit.Logger
	Accounts *accounts.Directory
	Prefs    *listview.PageSizePrefs
	Metrics  *metrics.Collector

	closers []func() error
}

// Build opens the configured KV backend and assembles everything on top of it.
func Build(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	a := &App{Config: cfg, Log: log, Metrics: metrics.NewCollector()}

	kv, err := a.openKV(ctx)
	if err != nil {
		return nil, err
	}
	a.KV = kv

	a.Mode, err = mode.NewResolver(ctx, kv, mode.Config{DataMode: cfg.DataMode, APIBaseURL: cfg.APIBaseURL})
	if err != nil {
		_ = a.Close()
		return nil, errors.Wrap(err, "load data mode")
	}

	a.Tokens = gateway.NewKVToken(kv)
	if cfg.APIToken != "" {
		if err := a.Tokens.Set(ctx, cfg.APIToken); err != nil {
			_ = a.Close()
			return nil, errors.Wrap(err, "store api token")
		}
	}
	a.Gateway = gateway.New(a.Mode, a.Tokens,
		gateway.WithTimeout(cfg.GatewayTimeout),
		gateway.WithObserver(a.Metrics.ObserveGateway),
	)

	a.Stores = store.NewStores(
		store.Deps{Gateway: a.Gateway, Mode: a.Mode, KV: kv},
		store.WithLogger(log),
		store.WithDemoDelay(cfg.DemoDelay),
	)
	a.Stores.OnConfirm(a.Metrics.ObserveConfirmation)
	a.Metrics.TrackStores(a.Stores)

	a.Audit = audit.New(a.Stores.AuditLogs, audit.WithLogger(log))
	a.Accounts = accounts.NewDirectory(kv)
	a.Prefs = listview.NewPageSizePrefs(kv)
	return a, nil
}

func (a *App) openKV(ctx context.Context) (storage.KV, error) {
	cfg := a.Config
	switch cfg.StateBackend {
	case config.BackendPostgres:
		db, err := database.Open(cfg.DBDSN)
		if err != nil {
			return nil, errors.Wrap(err, "connect postgres")
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrap(err, "postgres handle")
		}
		a.closers = append(a.closers, sqlDB.Close)
		return storage.NewPostgres(db), nil

	case config.BackendRedis:
		rdb, err := storage.DialRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, rdb.Close)
		return storage.NewRedis(rdb), nil

	case config.BackendMemcached:
		return storage.NewMemcached(cfg.MemcachedAddr), nil

	default:
		return storage.NewMemory(), nil
	}
}

// Close waits for pending confirmations and releases the backend.
func (a *App) Close() error {
	if a.Stores != nil {
		a.Stores.Wait()
	}
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
