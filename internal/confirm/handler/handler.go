package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fekuna/omnipos-backoffice/internal/confirm"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/response"
)

type ConfirmResponse struct {
	Kind     string          `json:"kind"`
	Op       confirm.Op      `json:"op"`
	TargetID string          `json:"targetId"`
	Outcome  confirm.Outcome `json:"outcome"`
}

type ConfirmHandler struct {
	svc    *confirm.Service
	logger logger.ZapLogger
}

func NewConfirmHandler(svc *confirm.Service, log logger.ZapLogger) *ConfirmHandler {
	return &ConfirmHandler{svc: svc, logger: log}
}

func (h *ConfirmHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/confirmations")
	g.POST("/:token", h.Confirm)
	g.DELETE("/:token", h.Dismiss)
}

// Confirm runs the pending action. A failed action still answers with its
// toast, using the status of the failure.
func (h *ConfirmHandler) Confirm(c *gin.Context) {
	p, out, err := h.svc.Confirm(c.Request.Context(), response.SessionID(c), c.Param("token"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	status := http.StatusOK
	if !out.OK {
		status = response.Status(out.Err)
		if status == http.StatusOK {
			status = http.StatusInternalServerError
		}
	}
	c.JSON(status, ConfirmResponse{Kind: p.Kind, Op: p.Op, TargetID: p.TargetID, Outcome: *out})
}

func (h *ConfirmHandler) Dismiss(c *gin.Context) {
	if err := h.svc.Dismiss(c.Request.Context(), response.SessionID(c), c.Param("token")); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
