package order

import (
	"context"

	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/order/dto"
)

// Repository covers the detail-page actions that are not plain CRUD.
type Repository interface {
	Cancel(ctx context.Context, input *dto.CancelInput) (*model.Order, error)
	ScheduleDiscount(ctx context.Context, input *dto.ScheduleInput) (*model.Discount, error)
}
