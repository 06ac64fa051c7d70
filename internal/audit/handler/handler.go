package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fekuna/omnipos-backoffice/internal/audit"
	"github.com/fekuna/omnipos-backoffice/internal/audit/dto"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/response"
)

type AuditHandler struct {
	uc     audit.UseCase
	logger logger.ZapLogger
}

func NewAuditHandler(uc audit.UseCase, log logger.ZapLogger) *AuditHandler {
	return &AuditHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *AuditHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/audit", h.ListActions)
}

// ListActions pages through confirmed actions. ?mine=true limits the list to
// the caller's session.
func (h *AuditHandler) ListActions(c *gin.Context) {
	var filters dto.ActionFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorBody{Error: err.Error()})
		return
	}
	if mine, _ := strconv.ParseBool(c.Query("mine")); mine {
		filters.SessionID = response.SessionID(c)
	}

	res, err := h.uc.List(c.Request.Context(), &filters)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
