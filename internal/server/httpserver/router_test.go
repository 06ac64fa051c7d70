package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-backoffice/config"
	"github.com/fekuna/omnipos-backoffice/internal/auth"
	"github.com/fekuna/omnipos-backoffice/internal/container"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
)

const secret = "router-secret"

// fakeBackend serves a two-row color collection and records the bearer
// tokens it receives.
type fakeBackend struct {
	mu      sync.Mutex
	deleted []string
	tokens  []string
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.tokens = append(b.tokens, r.Header.Get("Authorization"))
	b.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/colors":
		b.mu.Lock()
		gone := len(b.deleted) > 0
		b.mu.Unlock()
		rows := `[{"id":"c1","name":"Black","hexCode":"#000000"},{"id":"c2","name":"Tortoise","hexCode":"#8B4513"}]`
		if gone {
			rows = `[{"id":"c2","name":"Tortoise","hexCode":"#8B4513"}]`
		}
		_, _ = w.Write([]byte(`{"data":` + rows + `,"meta":{"totalPages":1,"currentPage":1}}`))
	case r.Method == http.MethodDelete && r.URL.Path == "/colors/c1":
		b.mu.Lock()
		b.deleted = append(b.deleted, "c1")
		b.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"not found"}`))
	}
}

type testEnv struct {
	router  *gin.Engine
	backend *fakeBackend
	token   string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fb := &fakeBackend{}
	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)

	cfg := config.LoadEnv()
	cfg.Server.AppEnv = "dev"
	cfg.Backend.BaseURL = srv.URL
	cfg.Backend.Timeout = 5 * time.Second
	cfg.JWT.SecretKey = secret
	cfg.Redis.Enabled = false
	cfg.Audit.DSN = ":memory:"

	c, err := container.New(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	token, err := auth.IssueToken(auth.Session{ID: "admin-1", Email: "ann@example.com", Role: "admin"}, secret, time.Hour)
	require.NoError(t, err)
	return testEnv{router: NewRouter(c), backend: fb, token: token}
}

func (e testEnv) do(method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", "Bearer "+e.token)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestRouter_HealthzIsPublic(t *testing.T) {
	e := newTestEnv(t)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_APIRequiresToken(t *testing.T) {
	e := newTestEnv(t)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/colors", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_ConfirmedDeleteFlow(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(http.MethodGet, "/api/v1/colors")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tortoise")

	w = e.do(http.MethodPost, "/api/v1/colors/c1/delete")
	require.Equal(t, http.StatusAccepted, w.Code)
	var pending struct {
		ConfirmURL string `json:"confirmUrl"`
		Prompt     string `json:"prompt"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pending))
	assert.Equal(t, "Move this Color to trash?", pending.Prompt)
	assert.Empty(t, e.backend.deleted)

	w = e.do(http.MethodPost, pending.ConfirmURL)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Color moved to trash")
	assert.Equal(t, []string{"c1"}, e.backend.deleted)

	w = e.do(http.MethodGet, "/api/v1/trash-counts")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"colors":1`)

	w = e.do(http.MethodGet, "/api/v1/audit?mine=true")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"targetId":"c1"`)

	for _, tok := range e.backend.tokens {
		assert.True(t, strings.HasPrefix(tok, "Bearer "))
	}
}

func TestRouter_LocalizedPrompt(t *testing.T) {
	e := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/colors/c1/delete", nil)
	req.Header.Set("Authorization", "Bearer "+e.token)
	req.Header.Set("Accept-Language", "id")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), "tempat sampah")
}

func TestRouter_DevLoginAndSignOut(t *testing.T) {
	e := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dev/login", strings.NewReader(`{"email":"bo@example.com","role":"staff"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token   string       `json:"token"`
		Session auth.Session `json:"session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)
	assert.Equal(t, "staff", login.Session.Role)

	e.token = login.Token
	w = e.do(http.MethodGet, "/api/v1/session")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bo@example.com")

	w = e.do(http.MethodDelete, "/api/v1/session")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = e.do(http.MethodGet, "/api/v1/session")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_DevLoginRejectsBadInput(t *testing.T) {
	e := newTestEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/dev/login", strings.NewReader(`{"email":"nope","role":"customer"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
