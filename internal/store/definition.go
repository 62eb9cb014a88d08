package store

import (
	"encoding/json"
	"time"
)

// Toggle describes a boolean flag flipped by a dedicated API action.
type Toggle[T Record] struct {
	Field  string // имя поля в JSON
	Action string // сегмент пути: /{resource}/{id}/{action}
	Get    func(T) bool
	Set    func(item *T, value bool, now time.Time)
}

type Definition[T Record] struct {
	// Name identifies the store in persisted state, logs and metrics.
	Name string
	// Path is the API resource segment.
	Path string

	// Normalize turns any accepted wire shape into the canonical record.
	// It must be idempotent: normalizing a canonical record changes nothing.
	Normalize func(raw json.RawMessage) (T, error)
	Seed      func() []T

	// Derive fills computed fields into a create (prev == nil) or update patch.
	Derive func(prev *T, patch Patch, now time.Time)

	Toggles      map[string]Toggle[T]
	CreatedField string
	UpdatedField string

	// Capacity bounds the list; older items fall off the end.
	Capacity int
}
