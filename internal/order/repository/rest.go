package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/fekuna/omnipos-backoffice/internal/backend"
	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/order/dto"
	"github.com/fekuna/omnipos-backoffice/internal/resource"
)

type RESTRepository struct {
	client *backend.Client
}

func NewRESTRepository(client *backend.Client) *RESTRepository {
	return &RESTRepository{client: client}
}

func (r *RESTRepository) Cancel(ctx context.Context, input *dto.CancelInput) (*model.Order, error) {
	body := map[string]any{}
	if input.Reason != "" {
		body["cancelReason"] = input.Reason
	}
	path := resource.Orders.BackendPath() + "/" + url.PathEscape(input.OrderID) + "/cancel"

	var raw json.RawMessage
	if err := r.client.Patch(ctx, path, body, &raw); err != nil {
		return nil, err
	}
	var out model.Order
	if len(raw) > 0 {
		if err := backend.DecodeRecord(raw, &out); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
	}
	return &out, nil
}

func (r *RESTRepository) ScheduleDiscount(ctx context.Context, input *dto.ScheduleInput) (*model.Discount, error) {
	body := map[string]any{
		"startAt": input.StartAt.UTC().Format(time.RFC3339),
		"endAt":   input.EndAt.UTC().Format(time.RFC3339),
	}
	if input.Percentage != nil {
		body["percentage"] = *input.Percentage
	}
	path := resource.Discounts.BackendPath() + "/" + url.PathEscape(input.DiscountID) + "/schedule"

	var raw json.RawMessage
	if err := r.client.Patch(ctx, path, body, &raw); err != nil {
		return nil, err
	}
	var out model.Discount
	if len(raw) > 0 {
		if err := backend.DecodeRecord(raw, &out); err != nil {
			return nil, fmt.Errorf("decode discount: %w", err)
		}
	}
	return &out, nil
}
