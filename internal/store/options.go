package store

import (
	"log/slog"
	"time"

	"backoffice/internal/storage"
)

// Deps are shared by every store of the process.
type Deps struct {
	Gateway Gateway
	Mode    ModeSource
	KV      storage.KV
}

type options struct {
	logger         *slog.Logger
	now            func() time.Time
	demoDelay      time.Duration
	confirmTimeout time.Duration
}

func defaultOptions() options {
	return options{
		logger:         slog.Default(),
		now:            func() time.Time { return time.Now().UTC() },
		confirmTimeout: 30 * time.Second,
	}
}

type Option func(*options)

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithDemoDelay imitates network latency for demo fetches.
func WithDemoDelay(d time.Duration) Option {
	return func(o *options) { o.demoDelay = d }
}

func WithConfirmTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.confirmTimeout = d
		}
	}
}
