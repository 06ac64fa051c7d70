package order

import (
	"context"

	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/order/dto"
)

type UseCase interface {
	CancelOrder(ctx context.Context, input *dto.CancelInput) (*model.Order, error)
	ScheduleDiscount(ctx context.Context, input *dto.ScheduleInput) (*model.Discount, error)
}
