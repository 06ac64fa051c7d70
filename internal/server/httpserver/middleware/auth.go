package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fekuna/omnipos-backoffice/internal/auth"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/clock"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/response"
	"github.com/fekuna/omnipos-backoffice/internal/store"
)

// Auth admits requests carrying a valid admin bearer token that was not
// signed out. The session goes into the request context and the store, and
// the raw token is forwarded to the backend on every call made for this
// request.
func Auth(secret string, st *store.Store, clk clock.Clock, log logger.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		session, err := auth.ParseToken(token, secret)
		if err == nil && st.Revoked(auth.TokenDigest(token)) {
			err = auth.ErrRevokedToken
		}
		if err != nil {
			response.Error(c, log, err)
			return
		}
		st.Dispatch(store.SetSession{Session: session, SeenAt: clk.Now()})

		ctx := auth.WithSession(c.Request.Context(), session)
		ctx = auth.WithBackendToken(ctx, token)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
