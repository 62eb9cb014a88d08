package mode

import (
	"context"
	"testing"

	"backoffice/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_LiveNeedsBaseURL(t *testing.T) {
	ctx := context.Background()
	r, err := NewResolver(ctx, storage.NewMemory(), Config{DataMode: Live})
	require.NoError(t, err)

	assert.False(t, r.IsLiveMode(), "live without base url behaves as demo")

	require.NoError(t, r.Set(ctx, Config{DataMode: Live, APIBaseURL: "https://api.example.com/"}))
	assert.True(t, r.IsLiveMode())
	assert.Equal(t, "https://api.example.com/api/admin/jobs", r.APIURL("/api/admin/jobs"))
	assert.Equal(t, "https://api.example.com/api/admin/jobs", r.APIURL("api/admin/jobs"))

	require.NoError(t, r.Set(ctx, Config{DataMode: Demo, APIBaseURL: "https://api.example.com"}))
	assert.False(t, r.IsLiveMode())
}

func TestResolver_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()

	r1, err := NewResolver(ctx, kv, Config{})
	require.NoError(t, err)
	assert.Equal(t, Demo, r1.Current().DataMode)
	require.NoError(t, r1.Set(ctx, Config{DataMode: "LIVE", APIBaseURL: " https://api.example.com "}))

	r2, err := NewResolver(ctx, kv, Config{DataMode: Demo})
	require.NoError(t, err)
	assert.Equal(t, Config{DataMode: Live, APIBaseURL: "https://api.example.com"}, r2.Current())
	assert.True(t, r2.IsLiveMode())
}

func TestResolver_RejectsUnknownMode(t *testing.T) {
	ctx := context.Background()
	r, err := NewResolver(ctx, storage.NewMemory(), Config{})
	require.NoError(t, err)

	assert.Error(t, r.Set(ctx, Config{DataMode: "staging"}))
	assert.Equal(t, Demo, r.Current().DataMode)
}
