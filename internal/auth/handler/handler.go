package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-backoffice/internal/auth"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/response"
	"github.com/fekuna/omnipos-backoffice/internal/store"
)

// Forgetter drops whatever view state it keeps for a session.
type Forgetter interface {
	Forget(sessionID string)
}

type SessionResponse struct {
	Session     auth.Session   `json:"session"`
	TrashCounts map[string]int `json:"trashCounts"`
}

type SessionHandler struct {
	store      *store.Store
	forgetters []Forgetter
	logger     logger.ZapLogger
}

func NewSessionHandler(st *store.Store, log logger.ZapLogger, forgetters ...Forgetter) *SessionHandler {
	return &SessionHandler{store: st, forgetters: forgetters, logger: log}
}

func (h *SessionHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/session", h.Current)
	rg.DELETE("/session", h.End)
}

// Current returns the signed-in admin and the shared trash badges.
func (h *SessionHandler) Current(c *gin.Context) {
	s, ok := auth.SessionFrom(c.Request.Context())
	if !ok {
		response.Error(c, h.logger, auth.ErrMissingToken)
		return
	}
	c.JSON(http.StatusOK, SessionResponse{
		Session:     s,
		TrashCounts: h.store.Snapshot().TrashCounts,
	})
}

// End signs the admin out of the BFF: every list and tree view kept for the
// session is dropped and the bearer token is refused until it expires.
func (h *SessionHandler) End(c *gin.Context) {
	id := response.SessionID(c)
	if id == "" {
		response.Error(c, h.logger, auth.ErrMissingToken)
		return
	}
	for _, f := range h.forgetters {
		f.Forget(id)
	}
	actions := []store.Action{store.EndSession{ID: id}}
	if token := auth.BackendToken(c.Request.Context()); token != "" {
		actions = append(actions, store.RevokeToken{Digest: auth.TokenDigest(token), Until: auth.TokenExpiry(token)})
	}
	h.store.Dispatch(actions...)
	h.logger.Info("session ended", zap.String("session_id", id))
	c.Status(http.StatusNoContent)
}
