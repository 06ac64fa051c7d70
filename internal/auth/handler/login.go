package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-backoffice/internal/auth"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/clock"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/response"
)

type DevLoginRequest struct {
	ID    string `json:"id"`
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"max=100"`
	Role  string `json:"role" binding:"omitempty,oneof=admin staff superadmin"`
}

type DevLoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	Session   auth.Session `json:"session"`
}

// DevLoginHandler signs admin tokens without a backend round trip. It is
// only mounted in development.
type DevLoginHandler struct {
	secret string
	ttl    time.Duration
	clock  clock.Clock
	logger logger.ZapLogger
}

func NewDevLoginHandler(secret string, ttl time.Duration, clk clock.Clock, log logger.ZapLogger) *DevLoginHandler {
	return &DevLoginHandler{secret: secret, ttl: ttl, clock: clk, logger: log}
}

func (h *DevLoginHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/dev/login", h.Login)
}

func (h *DevLoginHandler) Login(c *gin.Context) {
	var req DevLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorBody{Error: err.Error()})
		return
	}
	s := auth.Session{ID: req.ID, Email: req.Email, Name: req.Name, Role: req.Role}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Role == "" {
		s.Role = "admin"
	}

	token, err := auth.IssueToken(s, h.secret, h.ttl)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	h.logger.Info("dev login", zap.String("session_id", s.ID), zap.String("role", s.Role))
	c.JSON(http.StatusOK, DevLoginResponse{
		Token:     token,
		ExpiresAt: h.clock.Now().Add(h.ttl),
		Session:   s,
	})
}
