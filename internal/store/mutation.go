package store

import (
	"context"
	"log/slog"
	"time"

	"backoffice/internal/models"
)

type MutationKind string

const (
	KindCreate MutationKind = "create"
	KindUpdate MutationKind = "update"
	KindDelete MutationKind = "delete"
	KindToggle MutationKind = "toggle"
)

// Mutation is a change already applied locally that still has to reach the API.
type Mutation struct {
	Kind     MutationKind
	Resource string
	ID       models.ID
	Action   string
	Payload  any
}

// Result is the outcome of a remote confirmation. A failed Result never
// undoes the local change.
type Result struct {
	Mutation
	Err      error
	Duration time.Duration
}

func (r Result) OK() bool { return r.Err == nil }

// dispatch confirms m in the background when the live API is in use. The
// request outlives the caller's context.
func (s *Store[T]) dispatch(ctx context.Context, m Mutation) {
	if !s.deps.Mode.IsLiveMode() || s.deps.Gateway == nil {
		return
	}

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()

		cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.confirmTimeout)
		defer cancel()

		res := s.confirmRemote(cctx, m)
		if res.Err != nil {
			s.logger().Warn("remote confirmation failed",
				slog.String("action", string(m.Kind)),
				slog.String("id", m.ID.String()),
				slog.String("error", res.Err.Error()),
			)
		}
		s.notify(res)
	}()
}

func (s *Store[T]) confirmRemote(ctx context.Context, m Mutation) Result {
	start := s.opts.now()
	var err error
	switch m.Kind {
	case KindCreate:
		_, err = s.deps.Gateway.Create(ctx, m.Resource, m.Payload)
	case KindUpdate:
		err = s.deps.Gateway.Update(ctx, m.Resource, m.ID, m.Payload)
	case KindDelete:
		err = s.deps.Gateway.Delete(ctx, m.Resource, m.ID)
	case KindToggle:
		err = s.deps.Gateway.Patch(ctx, m.Resource, m.ID, m.Action, m.Payload)
	}
	return Result{Mutation: m, Err: err, Duration: s.opts.now().Sub(start)}
}

func (s *Store[T]) notify(res Result) {
	s.mu.RLock()
	observers := append(([]func(Result))(nil), s.observers...)
	s.mu.RUnlock()
	for _, fn := range observers {
		fn(res)
	}
}
