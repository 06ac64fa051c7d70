package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
	"github.com/fekuna/omnipos-backoffice/internal/resource/usecase"
	"github.com/fekuna/omnipos-backoffice/internal/store"
)

type TrashCountsResponse struct {
	Counts map[string]int `json:"counts"`
	// Partial is set when some kinds could not be refreshed and kept their
	// previous counter.
	Partial bool `json:"partial,omitempty"`
}

// TrashHandler exposes the shared trash badges.
type TrashHandler struct {
	store    *store.Store
	counters []usecase.TrashCounter
	logger   logger.ZapLogger
}

func NewTrashHandler(st *store.Store, log logger.ZapLogger, counters ...usecase.TrashCounter) *TrashHandler {
	return &TrashHandler{store: st, counters: counters, logger: log}
}

func (h *TrashHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/trash-counts", h.Counts)
	rg.POST("/trash-counts/refresh", h.Refresh)
}

func (h *TrashHandler) Counts(c *gin.Context) {
	c.JSON(http.StatusOK, TrashCountsResponse{Counts: h.counts()})
}

// Refresh reloads every counter from the backend.
func (h *TrashHandler) Refresh(c *gin.Context) {
	err := usecase.RefreshTrashCounts(c.Request.Context(), h.store, h.logger, h.counters...)
	if err != nil {
		h.logger.Warn("trash counts partially refreshed", zap.Error(err))
	}
	c.JSON(http.StatusOK, TrashCountsResponse{Counts: h.counts(), Partial: err != nil})
}

func (h *TrashHandler) counts() map[string]int {
	counts := h.store.Snapshot().TrashCounts
	for _, ctr := range h.counters {
		if k := ctr.Kind(); k.Trash {
			if _, ok := counts[k.Name]; !ok {
				counts[k.Name] = 0
			}
		}
	}
	return counts
}
