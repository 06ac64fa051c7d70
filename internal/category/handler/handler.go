package handler

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-backoffice/internal/category"
	"github.com/fekuna/omnipos-backoffice/internal/category/dto"
	"github.com/fekuna/omnipos-backoffice/internal/category/tree"
	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/response"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CategoryHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/categories")
	g.GET("/tree", h.Tree)
	g.GET("/tree.html", h.TreeHTML)
}

// Tree applies the query controls to the caller's review page and returns it.
func (h *CategoryHandler) Tree(c *gin.Context) {
	view, ok := h.review(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, view)
}

// TreeHTML renders the same review page as nested lists.
func (h *CategoryHandler) TreeHTML(c *gin.Context) {
	view, ok := h.review(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if view.Error != "" {
		buf.WriteString(`<p class="category-error">` + template.HTMLEscapeString(view.Error) + `</p>`)
	}
	if err := tree.RenderHTML(&buf, view.Nodes, view.Depth); err != nil {
		h.logger.Error("failed to render category tree", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *CategoryHandler) review(c *gin.Context) (*dto.ReviewView, bool) {
	var req dto.ReviewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorBody{Error: err.Error()})
		return nil, false
	}
	view, err := h.uc.Review(c.Request.Context(), response.SessionID(c), req)
	if err != nil && !errors.Is(err, model.ErrStaleResponse) {
		response.Error(c, h.logger, err)
		return nil, false
	}
	return view, true
}
