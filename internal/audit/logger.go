// Package audit records privileged operator actions into the audit log store.
package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"maps"
	"reflect"
	"slices"
	"time"

	"backoffice/internal/models"

	"github.com/google/uuid"
)

// Sink is where entries go; *store.Store[models.AuditLog] in production.
type Sink interface {
	Append(ctx context.Context, entry models.AuditLog)
	Clear(ctx context.Context)
	Items() []models.AuditLog
}

type Logger struct {
	sink  Sink
	log   *slog.Logger
	now   func() time.Time
	newID func() string
}

type Option func(*Logger)

func WithClock(now func() time.Time) Option {
	return func(l *Logger) { l.now = now }
}

func WithIDs(gen func() string) Option {
	return func(l *Logger) { l.newID = gen }
}

func WithLogger(log *slog.Logger) Option {
	return func(l *Logger) { l.log = log }
}

func New(sink Sink, opts ...Option) *Logger {
	l := &Logger{
		sink:  sink,
		log:   slog.Default(),
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LogAction appends an entry to the front of the log. In live mode the sink
// mirrors it to the API in the background.
func (l *Logger) LogAction(
	ctx context.Context,
	action models.AuditAction,
	module models.AuditModule,
	resourceID models.ID,
	resourceName string,
	actor models.Actor,
	changes []models.FieldChange,
	metadata map[string]any,
) models.AuditLog {
	entry := models.AuditLog{
		ID:           models.ID(l.newID()),
		Timestamp:    models.FormatTime(l.now()),
		Actor:        actor,
		Action:       action,
		Module:       module,
		ResourceID:   resourceID,
		ResourceName: resourceName,
		Changes:      slices.Clone(changes),
		Metadata:     maps.Clone(metadata),
	}
	l.sink.Append(ctx, entry)

	l.log.Info("audit",
		slog.String("module", string(module)),
		slog.String("action", string(action)),
		slog.String("resource_id", resourceID.String()),
		slog.String("actor", actor.Email),
	)
	return entry
}

// Clear removes every entry. It is the only way entries leave the log
// besides falling off the capacity limit.
func (l *Logger) Clear(ctx context.Context, actor models.Actor) {
	l.sink.Clear(ctx)
	l.log.Warn("audit log cleared", slog.String("actor", actor.Email))
}

func (l *Logger) Entries() []models.AuditLog {
	return l.sink.Items()
}

var ignoredFields = map[string]bool{"id": true, "created_at": true, "updated_at": true}

// Diff lists the JSON fields that differ between two versions of a record,
// ordered by field name. Timestamps and the id are skipped. With fields set,
// only those are compared.
func Diff(before, after any, fields ...string) []models.FieldChange {
	a, b := toFields(before), toFields(after)

	keys := fields
	if len(keys) == 0 {
		set := make(map[string]struct{}, len(a)+len(b))
		for k := range a {
			set[k] = struct{}{}
		}
		for k := range b {
			set[k] = struct{}{}
		}
		for k := range set {
			keys = append(keys, k)
		}
		slices.Sort(keys)
	}

	var changes []models.FieldChange
	for _, k := range keys {
		if ignoredFields[k] && len(fields) == 0 {
			continue
		}
		if !reflect.DeepEqual(a[k], b[k]) {
			changes = append(changes, models.FieldChange{Field: k, From: a[k], To: b[k]})
		}
	}
	return changes
}

func toFields(v any) map[string]any {
	out := map[string]any{}
	if v == nil {
		return out
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return out
	}
	_ = json.Unmarshal(raw, &out)
	return out
}
