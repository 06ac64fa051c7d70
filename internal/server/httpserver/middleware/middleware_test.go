package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-backoffice/internal/auth"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/clock"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/i18n"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
	"github.com/fekuna/omnipos-backoffice/internal/store"
)

const secret = "test-secret"

func newAuthRouter(st *store.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(logger.NewNop()), Auth(secret, st, clock.RealClock{}, logger.NewNop()))
	r.GET("/me", func(c *gin.Context) {
		s, _ := auth.SessionFrom(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"id": s.ID, "token": auth.BackendToken(c.Request.Context())})
	})
	return r
}

func TestAuth(t *testing.T) {
	st := store.New()
	r := newAuthRouter(st)

	admin, err := auth.IssueToken(auth.Session{ID: "u1", Email: "ann@example.com", Role: "admin"}, secret, time.Hour)
	require.NoError(t, err)
	customer, err := auth.IssueToken(auth.Session{ID: "u2", Role: "customer"}, secret, time.Hour)
	require.NoError(t, err)
	forged, err := auth.IssueToken(auth.Session{ID: "u3", Role: "admin"}, "other-secret", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + forged, http.StatusUnauthorized},
		{"not an admin", "Bearer " + customer, http.StatusForbidden},
		{"admin", "bearer " + admin, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
		})
	}

	sess, ok := st.Session("u1")
	require.True(t, ok)
	assert.Equal(t, "ann@example.com", sess.Email)
}

func TestRequestLoggerKeepsIncomingID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(logger.NewNop()))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
}

func TestLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tr, err := i18n.NewTranslator()
	require.NoError(t, err)

	r := gin.New()
	r.Use(Locale(tr, "en"))
	r.GET("/msg", func(c *gin.Context) {
		c.String(http.StatusOK, i18n.FromContext(c.Request.Context()).T("trash.empty", nil))
	})

	get := func(target, accept string) string {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		if accept != "" {
			req.Header.Set("Accept-Language", accept)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Body.String()
	}

	assert.Equal(t, "Trash is empty", get("/msg", ""))
	assert.NotEqual(t, "Trash is empty", get("/msg", "id-ID,id;q=0.9"))
	assert.Equal(t, "Trash is empty", get("/msg?lang=en", "id"))
}

func TestAuth_RevokedTokenIsRefused(t *testing.T) {
	st := store.New()
	r := newAuthRouter(st)

	token, err := auth.IssueToken(auth.Session{ID: "u1", Role: "admin"}, secret, time.Hour)
	require.NoError(t, err)
	fresh, err := auth.IssueToken(auth.Session{ID: "u1", Role: "staff"}, secret, 2*time.Hour)
	require.NoError(t, err)

	get := func(tok string) int {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusOK, get(token))
	assert.Len(t, st.Snapshot().LastSeen, 1)

	st.Dispatch(store.EndSession{ID: "u1"}, store.RevokeToken{Digest: auth.TokenDigest(token), Until: auth.TokenExpiry(token)})
	assert.Equal(t, http.StatusUnauthorized, get(token))
	_, ok := st.Session("u1")
	assert.False(t, ok, "a refused token does not bring the session back")

	assert.Equal(t, http.StatusOK, get(fresh))
}
