package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fekuna/omnipos-backoffice/internal/confirm"
	"github.com/fekuna/omnipos-backoffice/internal/notify"
	"github.com/fekuna/omnipos-backoffice/internal/order"
	"github.com/fekuna/omnipos-backoffice/internal/order/dto"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/i18n"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/response"
	"github.com/fekuna/omnipos-backoffice/internal/resource"
	resourcedto "github.com/fekuna/omnipos-backoffice/internal/resource/dto"
)

type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
}

// NewOrderHandler also makes order cancellation confirmable through svc.
// The cancel request itself goes through POST /orders/:id/cancel.
func NewOrderHandler(uc order.UseCase, svc *confirm.Service, log logger.ZapLogger) *OrderHandler {
	h := &OrderHandler{uc: uc, logger: log}
	if svc != nil {
		svc.Register(resource.Orders.Name, confirm.OpCancel, resource.Orders.Label, h.cancel)
	}
	return h
}

func (h *OrderHandler) Register(rg *gin.RouterGroup) {
	rg.PATCH("/"+resource.Discounts.Name+"/:id/schedule", h.ScheduleDiscount)
}

func (h *OrderHandler) cancel(ctx context.Context, p confirm.Pending) confirm.Outcome {
	loc := i18n.FromContext(ctx)
	o, err := h.uc.CancelOrder(ctx, &dto.CancelInput{OrderID: p.TargetID, Reason: p.Note})
	if err != nil {
		return confirm.Outcome{
			Err:   err,
			Toast: notify.Failure(err, loc.Label("toast.cancel.failure", resource.Orders.Label)),
		}
	}
	return confirm.Outcome{
		OK:     true,
		Toast:  notify.Success(loc.Label("toast.cancel.success", resource.Orders.Label)),
		Result: o,
	}
}

func (h *OrderHandler) ScheduleDiscount(c *gin.Context) {
	var input dto.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorBody{Error: err.Error()})
		return
	}
	input.DiscountID = c.Param("id")

	loc := i18n.FromContext(c.Request.Context())
	d, err := h.uc.ScheduleDiscount(c.Request.Context(), &input)
	if err != nil {
		toast := notify.Failure(err, loc.Label("toast.schedule.failure", resource.Discounts.Label))
		body := gin.H{"error": toast.Message, "toast": toast}
		if fields := validationFields(err); fields != nil {
			body["fields"] = fields
		}
		c.AbortWithStatusJSON(response.Status(err), body)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  d,
		"toast": notify.Success(loc.Label("toast.schedule.success", resource.Discounts.Label)),
	})
}

func validationFields(err error) map[string]string {
	var v *resourcedto.ValidationError
	if errors.As(err, &v) {
		return v.Fields
	}
	return nil
}
