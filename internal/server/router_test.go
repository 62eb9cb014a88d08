package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"backoffice/internal/accounts"
	"backoffice/internal/audit"
	"backoffice/internal/config"
	"backoffice/internal/handlers"
	"backoffice/internal/listview"
	"backoffice/internal/mode"
	"backoffice/internal/models"
	"backoffice/internal/storage"
	"backoffice/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	router *gin.Engine
	api    *handlers.API
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	kv := storage.NewMemory()

	resolver, err := mode.NewResolver(ctx, kv, mode.Config{DataMode: mode.Demo})
	require.NoError(t, err)

	stores := store.NewStores(store.Deps{Mode: resolver, KV: kv})
	logger := audit.New(stores.AuditLogs)

	dir := accounts.NewDirectory(kv).WithCost(bcrypt.MinCost)
	require.NoError(t, dir.EnsureAdmin(ctx, "admin@backoffice.local", "Admin123!"))
	_, err = dir.Register(ctx, "recruiter@backoffice.local", "Rita", "Recruit123!", models.RoleRecruiter)
	require.NoError(t, err)
	_, err = dir.Register(ctx, "viewer@backoffice.local", "Vic", "Viewer123!", models.RoleViewer)
	require.NoError(t, err)

	api := handlers.NewAPI(stores, logger, resolver, dir, listview.NewPageSizePrefs(kv))
	cfg := &config.Config{SessionSecret: "test-secret", CORSAllowedOrigins: []string{"http://localhost:3000"}}
	silent := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &testEnv{router: NewRouter(cfg, api, nil, silent), api: api}
}

func (e *testEnv) do(t *testing.T, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T, username, password string) []*http.Cookie {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/auth/login", `{"username":"`+username+`","password":"`+password+`"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealthAndAuthGuards(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/jobs", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, rec.Header().Get("X-Request-ID"), decode(t, rec)["request_id"])

	rec = env.do(t, http.MethodPost, "/api/auth/login", `{"username":"admin@backoffice.local","password":"nope"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	cookies := env.login(t, "admin@backoffice.local", "Admin123!")
	rec = env.do(t, http.MethodGet, "/api/auth/me", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, "admin", me["role"])
	assert.NotContains(t, me, "password_hash")
}

func TestJobsListAndToggle(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t, "recruiter@backoffice.local", "Recruit123!")

	rec := env.do(t, http.MethodGet, "/api/jobs?status=active&page_size=5&sort=title", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	meta := body["meta"].(map[string]any)
	assert.EqualValues(t, 3, meta["filteredCount"])
	assert.EqualValues(t, 7, meta["total"])
	assert.EqualValues(t, 5, meta["pageSize"])
	first := body["data"].([]any)[0].(map[string]any)
	assert.Equal(t, "Payroll Specialist", first["title"])

	// размер страницы запоминается
	rec = env.do(t, http.MethodGet, "/api/jobs", "", cookies)
	assert.EqualValues(t, 5, decode(t, rec)["meta"].(map[string]any)["pageSize"])

	rec = env.do(t, http.MethodPatch, "/api/jobs/1/active", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, false, decode(t, rec)["data"].(map[string]any)["active"])

	rec = env.do(t, http.MethodGet, "/api/jobs/ids?status=active", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"2", "5"}, decode(t, rec)["ids"])

	entries := env.api.Audit.Entries()
	require.NotEmpty(t, entries)
	assert.Equal(t, models.ActionDeactivate, entries[0].Action)
	assert.Equal(t, models.ModuleJobs, entries[0].Module)
	assert.Equal(t, "recruiter@backoffice.local", entries[0].Actor.Email)
}

func TestBlogCreatePublishAndPublicView(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t, "admin@backoffice.local", "Admin123!")

	rec := env.do(t, http.MethodPost, "/api/blog-posts", `{"title":"Hello World","content":"# Hi"}`, cookies)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	post := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, "hello-world", post["slug"])
	assert.EqualValues(t, 6, post["id"])

	rec = env.do(t, http.MethodGet, "/public/blog/hello-world", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPatch, "/api/blog-posts/6/publish", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode(t, rec)["data"].(map[string]any)["published_at"])

	rec = env.do(t, http.MethodGet, "/public/blog/hello-world", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode(t, rec)["html"], "<h1>Hi</h1>")

	rec = env.do(t, http.MethodGet, "/public/blog", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 4, body["meta"].(map[string]any)["filteredCount"])
	newest := body["data"].([]any)[0].(map[string]any)
	assert.Equal(t, "hello-world", newest["slug"])

	rec = env.do(t, http.MethodPost, "/api/blog-posts", `{"excerpt":"no title"}`, cookies)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	actions := []models.AuditAction{}
	for _, e := range env.api.Audit.Entries() {
		actions = append(actions, e.Action)
	}
	assert.Equal(t, []models.AuditAction{models.ActionPublish, models.ActionCreate}, actions)
}

func TestViewerIsReadOnlyAndRedacted(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t, "viewer@backoffice.local", "Viewer123!")

	rec := env.do(t, http.MethodGet, "/api/candidates/1", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	c := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, "ma***@example.com", c["email"])
	assert.Empty(t, c["passport_url"])

	rec = env.do(t, http.MethodPost, "/api/candidates", `{"name":"X","email":"x@example.com"}`, cookies)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/audit-logs", "", cookies)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPatch, "/api/notifications/1/read", "", cookies)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/notifications/1", "", cookies)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = env.do(t, http.MethodPost, "/api/notifications/bulk-delete", `{"ids":["2"]}`, cookies)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = env.do(t, http.MethodPost, "/api/notifications", `{"title":"x"}`, cookies)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 3, env.api.Stores.Notifications.Len())

	rec = env.do(t, http.MethodPatch, "/api/jobs/1/active", "", cookies)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBulkDeleteAndExport(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t, "admin@backoffice.local", "Admin123!")

	rec := env.do(t, http.MethodPost, "/api/employer-requests/bulk-delete", `{"ids":["1","2","99"]}`, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 2, body["deleted"])
	assert.Equal(t, []any{"99"}, body["missing"])
	assert.Equal(t, 2, env.api.Stores.EmployerRequests.Len())

	rec = env.do(t, http.MethodPost, "/api/candidates/export?status=new", `{"ids":["1","6"]}`, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))
}

func TestCandidateStatusDocumentsAndHistory(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t, "recruiter@backoffice.local", "Recruit123!")

	rec := env.do(t, http.MethodPatch, "/api/candidates/1/status", `{"status":"hired"}`, cookies)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPatch, "/api/candidates/1/status", `{"status":"reviewing"}`, cookies)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "reviewing", decode(t, rec)["data"].(map[string]any)["status"])

	rec = env.do(t, http.MethodGet, "/api/candidates/1/documents/cv", "", cookies)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://files.example.com/cv/maria-santos.pdf", rec.Header().Get("Location"))

	rec = env.do(t, http.MethodGet, "/api/candidates/1/documents/certificate", "", cookies)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/candidates/1/history", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	logs := decode(t, rec)["data"].([]any)
	require.Len(t, logs, 2)
	assert.Equal(t, "update", logs[0].(map[string]any)["action"])
	assert.Equal(t, "download", logs[1].(map[string]any)["action"])
}

func TestModeAndStores(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t, "admin@backoffice.local", "Admin123!")

	rec := env.do(t, http.MethodGet, "/api/mode", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "demo", decode(t, rec)["dataMode"])

	rec = env.do(t, http.MethodPut, "/api/mode", `{"dataMode":"sandbox"}`, cookies)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/stores/jobs/refresh", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 7, decode(t, rec)["count"])

	rec = env.do(t, http.MethodPost, "/api/stores/unknown/refresh", "", cookies)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPatch, "/api/jobs/2/active", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, env.api.Audit.Entries(), 1)
	rec = env.do(t, http.MethodPost, "/api/stores/audit-logs/refresh", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["count"])
	assert.Len(t, env.api.Audit.Entries(), 1)

	rec = env.do(t, http.MethodGet, "/api/dashboard", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	dash := decode(t, rec)
	assert.EqualValues(t, 2, dash["activeJobs"])
	assert.EqualValues(t, 2, dash["newCandidates"])
	assert.EqualValues(t, 2, dash["unreadNotifications"])
}
