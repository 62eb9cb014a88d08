package audit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"backoffice/internal/models"
	"backoffice/internal/storage"
	"backoffice/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type demoMode struct{}

func (demoMode) IsLiveMode() bool { return false }

func newAuditStore() *store.Store[models.AuditLog] {
	return store.New(store.AuditLogs(), store.Deps{Mode: demoMode{}, KV: storage.NewMemory()})
}

var operator = models.Actor{ID: "u1", Name: "Admin", Email: "admin@backoffice.local", Role: models.RoleAdmin}

func TestLogAction_PrependsEntry(t *testing.T) {
	at := time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC)
	logger := New(newAuditStore(),
		WithClock(func() time.Time { return at }),
		WithIDs(func() string { return "e-1" }),
	)
	ctx := context.Background()

	changes := []models.FieldChange{{Field: "status", From: "new", To: "hired"}}
	meta := map[string]any{"ip": "10.0.0.1"}
	entry := logger.LogAction(ctx, models.ActionUpdate, models.ModuleCandidates, "4", "Ahmed Karim", operator, changes, meta)

	assert.Equal(t, models.ID("e-1"), entry.ID)
	assert.Equal(t, "2024-05-02T08:30:00Z", entry.Timestamp)

	// вызывающий код не может изменить запись задним числом
	changes[0].To = "rejected"
	meta["ip"] = "changed"

	entries := logger.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "hired", entries[0].Changes[0].To)
	assert.Equal(t, "10.0.0.1", entries[0].Metadata["ip"])

	logger.LogAction(ctx, models.ActionDelete, models.ModuleJobs, "7", "Clerk", operator, nil, nil)
	entries = logger.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, models.ActionDelete, entries[0].Action)
}

func TestLogAction_UniqueIDsAndCap(t *testing.T) {
	logger := New(newAuditStore())
	ctx := context.Background()

	for i := 0; i < store.AuditCapacity+10; i++ {
		logger.LogAction(ctx, models.ActionCreate, models.ModuleBlog, models.ID(fmt.Sprint(i)), "post", operator, nil, nil)
	}
	entries := logger.Entries()
	require.Len(t, entries, store.AuditCapacity)
	assert.Equal(t, models.ID(fmt.Sprint(store.AuditCapacity+9)), entries[0].ResourceID)

	seen := make(map[models.ID]bool, len(entries))
	for _, e := range entries {
		assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
	}
}

func TestClear(t *testing.T) {
	logger := New(newAuditStore())
	ctx := context.Background()
	logger.LogAction(ctx, models.ActionPublish, models.ModuleBlog, "1", "post", operator, nil, nil)

	logger.Clear(ctx, operator)
	assert.Empty(t, logger.Entries())
}

func TestDiff(t *testing.T) {
	before := models.JobPosting{ID: "1", Title: "Clerk", Location: "Dubai", SalaryMin: 100, UpdatedAt: "a"}
	after := models.JobPosting{ID: "1", Title: "Senior Clerk", Location: "Dubai", SalaryMin: 150, UpdatedAt: "b"}

	changes := Diff(before, after)
	require.Len(t, changes, 2)
	assert.Equal(t, "salary_min", changes[0].Field)
	assert.EqualValues(t, 100, changes[0].From)
	assert.EqualValues(t, 150, changes[0].To)
	assert.Equal(t, models.FieldChange{Field: "title", From: "Clerk", To: "Senior Clerk"}, changes[1])

	assert.Empty(t, Diff(before, before))

	only := Diff(before, after, "title", "location")
	require.Len(t, only, 1)
	assert.Equal(t, "title", only[0].Field)
}
