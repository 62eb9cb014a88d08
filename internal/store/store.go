// Package store holds one Store per admin resource. A Store owns the canonical
// item list, applies mutations locally first and then confirms them with the
// remote API without waiting and without rolling back on failure.
package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"
	"time"

	"backoffice/internal/models"
	"backoffice/internal/storage"

	"github.com/pkg/errors"
)

type Record interface {
	RecordID() models.ID
	DisplayName() string
}

// Patch is a partial record as it arrives from a form or the JSON API.
type Patch map[string]any

func (p Patch) clone() Patch {
	out := make(Patch, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Gateway is the subset of the remote API client the stores use.
type Gateway interface {
	List(ctx context.Context, resource string) ([]json.RawMessage, error)
	Create(ctx context.Context, resource string, payload any) (json.RawMessage, error)
	Update(ctx context.Context, resource string, id models.ID, payload any) error
	Delete(ctx context.Context, resource string, id models.ID) error
	Patch(ctx context.Context, resource string, id models.ID, action string, payload any) error
}

type ModeSource interface {
	IsLiveMode() bool
}

const (
	scopeDemo = "demo"
	scopeLive = "live"
)

type State[T Record] struct {
	Items     []T    `json:"items"`
	IsLoading bool   `json:"isLoading"`
	Error     string `json:"error,omitempty"`
}

type Store[T Record] struct {
	def  Definition[T]
	deps Deps
	opts options

	mu        sync.RWMutex
	loaded    bool
	scope     string // режим данных, из которого пришли items
	items     []T
	loading   bool
	err       string
	observers []func(Result)

	inflight sync.WaitGroup
}

func New[T Record](def Definition[T], deps Deps, opts ...Option) *Store[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[T]{
		def:  def,
		deps: deps,
		opts: o,
	}
}

func (s *Store[T]) Name() string { return s.def.Name }

// ключ состояния разделён по режимам, чтобы демо-правки не попадали в live
func (s *Store[T]) key() string { return storage.Key("store", s.scope, s.def.Name) }

func (s *Store[T]) currentScope() string {
	if s.deps.Mode.IsLiveMode() {
		return scopeLive
	}
	return scopeDemo
}

func (s *Store[T]) logger() *slog.Logger {
	return s.opts.logger.With(slog.String("module", s.def.Name))
}

// Fetch reloads the list. Errors end up in State().Error and the previous
// items stay in place. Overlapping fetches are not coordinated: whichever
// finishes last wins.
func (s *Store[T]) Fetch(ctx context.Context) {
	scope := s.currentScope()
	s.mu.Lock()
	s.ensureLoadedLocked(ctx)
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	if !s.deps.Mode.IsLiveMode() {
		if d := s.opts.demoDelay; d > 0 {
			select {
			case <-time.After(d):
			case <-ctx.Done():
			}
		}
		// без сида (журнал аудита) демо-загрузка ничего не трогает
		if s.def.Seed != nil {
			s.replace(ctx, scope, s.seed())
		}
		return
	}

	raws, err := s.deps.Gateway.List(ctx, s.def.Path)
	if err != nil {
		s.fail(err)
		return
	}

	items := make([]T, 0, len(raws))
	for i, raw := range raws {
		item, err := s.def.Normalize(raw)
		if err != nil {
			s.fail(errors.Wrapf(err, "decode item %d", i))
			return
		}
		items = append(items, item)
	}
	s.replace(ctx, scope, items)
}

func (s *Store[T]) replace(ctx context.Context, scope string, items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scope = scope
	s.items = s.capped(items)
	s.persistLocked(ctx)
}

func (s *Store[T]) fail(err error) {
	s.logger().Warn("fetch failed", slog.String("action", "fetch"), slog.String("error", err.Error()))
	s.mu.Lock()
	s.err = err.Error()
	s.mu.Unlock()
}

// Add creates a record. In live mode nothing is inserted until the API
// returns the record with its id; a failed create reports false.
func (s *Store[T]) Add(ctx context.Context, patch Patch) (T, bool) {
	var zero T
	now := s.opts.now()

	data := patch.clone()
	delete(data, "id")
	if s.def.Derive != nil {
		s.def.Derive(nil, data, now)
	}

	if !s.deps.Mode.IsLiveMode() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.ensureLoadedLocked(ctx)
		item, err := s.buildLocal(data, now)
		if err != nil {
			s.logger().Warn("create rejected", slog.String("action", "create"), slog.String("error", err.Error()))
			return zero, false
		}
		s.prependLocked(item)
		s.persistLocked(ctx)
		return item, true
	}

	item, err := s.createRemote(ctx, data)
	if err != nil {
		s.logger().Warn("create failed", slog.String("action", "create"), slog.String("error", err.Error()))
		s.notify(Result{Mutation: Mutation{Kind: KindCreate, Resource: s.def.Path, Payload: data}, Err: err})
		return zero, false
	}

	s.mu.Lock()
	s.ensureLoadedLocked(ctx)
	s.prependLocked(item)
	s.persistLocked(ctx)
	s.mu.Unlock()
	return item, true
}

func (s *Store[T]) createRemote(ctx context.Context, data Patch) (T, error) {
	var zero T
	raw, err := s.deps.Gateway.Create(ctx, s.def.Path, data)
	if err != nil {
		return zero, err
	}
	return s.def.Normalize(raw)
}

// buildLocal assigns the next numeric id the way the API would.
func (s *Store[T]) buildLocal(data Patch, now time.Time) (T, error) {
	var zero T
	data["id"] = s.nextIDLocked()
	if f := s.def.CreatedField; f != "" {
		if v, ok := data[f].(string); !ok || v == "" {
			data[f] = models.FormatTime(now)
		}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return zero, err
	}
	return s.def.Normalize(raw)
}

// Update merges patch into the item right away and sends the PUT in the
// background. The remote outcome is only logged.
func (s *Store[T]) Update(ctx context.Context, id models.ID, patch Patch) (T, bool) {
	var zero T
	now := s.opts.now()

	s.mu.Lock()
	s.ensureLoadedLocked(ctx)
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return zero, false
	}

	data := patch.clone()
	delete(data, "id")
	prev := s.items[idx]
	if s.def.Derive != nil {
		s.def.Derive(&prev, data, now)
	}
	if f := s.def.UpdatedField; f != "" {
		data[f] = models.FormatTime(now)
	}

	next, err := merge(prev, data, s.def.Normalize)
	if err != nil {
		s.mu.Unlock()
		s.logger().Warn("update rejected", slog.String("action", "update"), slog.String("id", id.String()), slog.String("error", err.Error()))
		return zero, false
	}
	s.items[idx] = next
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.dispatch(ctx, Mutation{Kind: KindUpdate, Resource: s.def.Path, ID: id, Payload: data})
	return next, true
}

// Delete removes the item right away and sends the DELETE in the background.
func (s *Store[T]) Delete(ctx context.Context, id models.ID) (T, bool) {
	var zero T

	s.mu.Lock()
	s.ensureLoadedLocked(ctx)
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return zero, false
	}
	removed := s.items[idx]
	s.items = slices.Delete(s.items, idx, idx+1)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.dispatch(ctx, Mutation{Kind: KindDelete, Resource: s.def.Path, ID: id})
	return removed, true
}

// Toggle flips a named boolean flag (and whatever depends on it, e.g.
// published_at) and PATCHes the new value.
func (s *Store[T]) Toggle(ctx context.Context, id models.ID, name string) (T, bool) {
	var zero T
	tg, ok := s.def.Toggles[name]
	if !ok {
		return zero, false
	}
	now := s.opts.now()

	s.mu.Lock()
	s.ensureLoadedLocked(ctx)
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return zero, false
	}
	item := s.items[idx]
	value := !tg.Get(item)
	tg.Set(&item, value, now)
	s.items[idx] = item
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.dispatch(ctx, Mutation{
		Kind:     KindToggle,
		Resource: s.def.Path,
		ID:       id,
		Action:   tg.Action,
		Payload:  map[string]bool{tg.Field: value},
	})
	return item, true
}

// Append puts a fully built record in front of the list (subject to
// Capacity) and mirrors it with a POST in the background.
func (s *Store[T]) Append(ctx context.Context, item T) {
	s.mu.Lock()
	s.ensureLoadedLocked(ctx)
	s.prependLocked(item)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.dispatch(ctx, Mutation{Kind: KindCreate, Resource: s.def.Path, ID: item.RecordID(), Payload: item})
}

// Clear drops every item. Local only.
func (s *Store[T]) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.loaded = true
		s.scope = s.currentScope()
	}
	s.items = []T{}
	s.persistLocked(ctx)
}

func (s *Store[T]) State() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(context.Background())
	return State[T]{Items: slices.Clone(s.items), IsLoading: s.loading, Error: s.err}
}

func (s *Store[T]) Items() []T {
	return s.State().Items
}

func (s *Store[T]) Get(id models.ID) (T, bool) {
	var zero T
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(context.Background())
	if idx := s.indexLocked(id); idx >= 0 {
		return s.items[idx], true
	}
	return zero, false
}

// LastError is the error of the latest fetch, empty after a success.
func (s *Store[T]) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(context.Background())
	return len(s.items)
}

// Toggles lists the flag names Toggle accepts.
func (s *Store[T]) Toggles() []string {
	var names []string
	for name := range s.def.Toggles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (s *Store[T]) HasToggle(name string) bool {
	_, ok := s.def.Toggles[name]
	return ok
}

// Flag reads a toggle flag of item.
func (s *Store[T]) Flag(item T, name string) bool {
	tg, ok := s.def.Toggles[name]
	return ok && tg.Get(item)
}

// OnConfirm registers an observer of remote confirmations.
func (s *Store[T]) OnConfirm(fn func(Result)) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// Wait blocks until background confirmations have finished.
func (s *Store[T]) Wait() {
	s.inflight.Wait()
}

// ensureLoadedLocked fills the list on first access from the state persisted
// for the current mode. With nothing persisted a demo store takes its seed and
// a live store starts empty until Fetch.
func (s *Store[T]) ensureLoadedLocked(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true
	s.scope = s.currentScope()

	if s.deps.KV != nil {
		var items []T
		found, err := storage.GetJSON(ctx, s.deps.KV, s.key(), &items)
		if err != nil {
			s.logger().Warn("restore failed", slog.String("action", "restore"), slog.String("error", err.Error()))
		}
		if found {
			s.items = s.capped(items)
			return
		}
	}
	if s.scope == scopeLive {
		s.items = []T{}
		return
	}
	s.items = s.seed()
}

func (s *Store[T]) persistLocked(ctx context.Context) {
	if s.deps.KV == nil {
		return
	}
	if err := storage.SetJSON(ctx, s.deps.KV, s.key(), s.items); err != nil {
		s.logger().Warn("persist failed", slog.String("action", "persist"), slog.String("error", err.Error()))
	}
}

func (s *Store[T]) seed() []T {
	if s.def.Seed == nil {
		return []T{}
	}
	return slices.Clone(s.def.Seed())
}

func (s *Store[T]) prependLocked(item T) {
	s.items = s.capped(append([]T{item}, s.items...))
}

// capped отрезает хвост сверх Capacity.
func (s *Store[T]) capped(items []T) []T {
	if c := s.def.Capacity; c > 0 && len(items) > c {
		return items[:c:c]
	}
	return items
}

func (s *Store[T]) indexLocked(id models.ID) int {
	return slices.IndexFunc(s.items, func(it T) bool { return it.RecordID() == id })
}

func (s *Store[T]) nextIDLocked() int64 {
	var max int64
	for _, it := range s.items {
		if n, ok := it.RecordID().Int(); ok && n > max {
			max = n
		}
	}
	return max + 1
}

// merge overlays patch on the JSON form of prev and normalizes the result.
func merge[T Record](prev T, patch Patch, normalize func(json.RawMessage) (T, error)) (T, error) {
	var zero T
	raw, err := json.Marshal(prev)
	if err != nil {
		return zero, err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return zero, err
	}
	for k, v := range patch {
		fields[k] = v
	}
	if raw, err = json.Marshal(fields); err != nil {
		return zero, err
	}
	return normalize(raw)
}
