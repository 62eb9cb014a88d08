package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"backoffice/internal/app"
	"backoffice/internal/config"
	"backoffice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newOpener shares one in-memory app across commands so state carries over.
func newOpener(t *testing.T) (Opener, *app.App) {
	t.Helper()
	cfg := &config.Config{SessionSecret: "test", StateBackend: config.BackendMemory, DataMode: "demo"}
	a, err := app.Build(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return func(context.Context) (*app.App, error) { return a, nil }, a
}

func run(open Opener, args ...string) (string, error) {
	cmd := BuildCLI(open)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestModeCommands(t *testing.T) {
	open, a := newOpener(t)

	out, err := run(open, "mode", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "mode: demo")
	assert.Contains(t, out, "live: false")

	_, err = run(open, "mode", "set", "live", "--api-url", "https://api.example.com")
	require.NoError(t, err)
	assert.True(t, a.Mode.IsLiveMode())

	_, err = run(open, "mode", "set", "sandbox")
	assert.Error(t, err)
	assert.Equal(t, "live", a.Mode.Current().DataMode)

	_, err = run(open, "mode", "set", "demo")
	require.NoError(t, err)
	assert.False(t, a.Mode.IsLiveMode())
	assert.Equal(t, "https://api.example.com", a.Mode.Current().APIBaseURL)
}

func TestTokenCommands(t *testing.T) {
	open, a := newOpener(t)
	ctx := context.Background()

	_, err := run(open, "token", "set", "abc123")
	require.NoError(t, err)
	token, err := a.Tokens.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = run(open, "token", "clear")
	require.NoError(t, err)
	token, err = a.Tokens.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestAuditCommands(t *testing.T) {
	open, a := newOpener(t)
	ctx := context.Background()
	actor := models.Actor{Name: "Ops", Email: "ops@backoffice.local"}

	a.Audit.LogAction(ctx, models.ActionCreate, models.ModuleJobs, "1", "First Job", actor, nil, nil)
	a.Audit.LogAction(ctx, models.ActionPublish, models.ModuleBlog, "2", "Second Post", actor, nil, nil)

	out, err := run(open, "audit", "list", "-n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Second Post")
	assert.NotContains(t, out, "First Job")

	out, err = run(open, "audit", "list", "--module", "jobs")
	require.NoError(t, err)
	assert.Contains(t, out, "First Job")
	assert.NotContains(t, out, "Second Post")

	_, err = run(open, "audit", "clear")
	require.NoError(t, err)
	assert.Empty(t, a.Audit.Entries())
}

func TestFetchAndStores(t *testing.T) {
	open, _ := newOpener(t)

	out, err := run(open, "fetch", "jobs")
	require.NoError(t, err)
	assert.Contains(t, out, "jobs: 7 items")

	_, err = run(open, "fetch", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store")

	out, err = run(open, "stores")
	require.NoError(t, err)
	assert.Contains(t, out, "candidates")
	assert.Contains(t, out, "STORE")
}

func TestOperatorCommands(t *testing.T) {
	open, _ := newOpener(t)

	out, err := run(open, "operator", "add", "Bob@Example.com", "--password", "secret1", "--role", "editor", "--name", "Bob")
	require.NoError(t, err)
	assert.Contains(t, out, "created bob@example.com (editor)")

	_, err = run(open, "operator", "add", "eve@example.com", "--password", "secret1", "--role", "owner")
	assert.Error(t, err)

	out, err = run(open, "operator", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "bob@example.com")
	assert.NotContains(t, out, "eve@example.com")
}

func TestFetchAllKeepsAuditLog(t *testing.T) {
	open, a := newOpener(t)
	ctx := context.Background()
	actor := models.Actor{Name: "Ops", Email: "ops@backoffice.local"}
	a.Audit.LogAction(ctx, models.ActionDelete, models.ModuleCandidates, "4", "Ahmed Karim", actor, nil, nil)

	out, err := run(open, "fetch")
	require.NoError(t, err)
	assert.Contains(t, out, "audit-logs: 1 items")

	entries := a.Audit.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Ahmed Karim", entries[0].ResourceName)
}
