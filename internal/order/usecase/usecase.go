package usecase

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/order"
	"github.com/fekuna/omnipos-backoffice/internal/order/dto"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
	resourcedto "github.com/fekuna/omnipos-backoffice/internal/resource/dto"
)

type orderUseCase struct {
	repo     order.Repository
	validate *validator.Validate
	logger   logger.ZapLogger
}

func NewOrderUseCase(repo order.Repository, log logger.ZapLogger) order.UseCase {
	return &orderUseCase{
		repo:     repo,
		validate: validator.New(),
		logger:   log,
	}
}

func (uc *orderUseCase) CancelOrder(ctx context.Context, input *dto.CancelInput) (*model.Order, error) {
	if err := uc.check(input); err != nil {
		return nil, err
	}
	o, err := uc.repo.Cancel(ctx, input)
	if err != nil {
		uc.logger.Error("failed to cancel order", zap.String("order_id", input.OrderID), zap.Error(err))
		return nil, err
	}
	return o, nil
}

func (uc *orderUseCase) ScheduleDiscount(ctx context.Context, input *dto.ScheduleInput) (*model.Discount, error) {
	if err := uc.check(input); err != nil {
		return nil, err
	}
	d, err := uc.repo.ScheduleDiscount(ctx, input)
	if err != nil {
		uc.logger.Error("failed to schedule discount", zap.String("discount_id", input.DiscountID), zap.Error(err))
		return nil, err
	}
	return d, nil
}

// check runs struct validation and reports failures the same way as the
// generic create and update payloads.
func (uc *orderUseCase) check(input any) error {
	err := uc.validate.Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &resourcedto.ValidationError{Fields: map[string]string{}}
	for _, fe := range fieldErrs {
		msg := "failed " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		out.Fields[jsonName(fe.Field())] = msg
	}
	return out
}

var jsonNames = map[string]string{
	"OrderID":    "orderId",
	"Reason":     "reason",
	"DiscountID": "discountId",
	"StartAt":    "startAt",
	"EndAt":      "endAt",
	"Percentage": "percentage",
}

func jsonName(field string) string {
	if name, ok := jsonNames[field]; ok {
		return name
	}
	return field
}
