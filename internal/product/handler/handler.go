package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/response"
	"github.com/fekuna/omnipos-backoffice/internal/product"
	"github.com/fekuna/omnipos-backoffice/internal/resource"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/"+resource.Products.Name+"/:id/detail", h.GetDetail)
}

// GetDetail serves the product page. ?fresh=true skips the cache.
func (h *ProductHandler) GetDetail(c *gin.Context) {
	fresh, _ := strconv.ParseBool(c.Query("fresh"))
	detail, err := h.uc.GetDetail(c.Request.Context(), c.Param("id"), fresh)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
