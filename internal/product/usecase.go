package product

import (
	"context"

	"github.com/fekuna/omnipos-backoffice/internal/product/dto"
)

type UseCase interface {
	// GetDetail assembles the product detail page. fresh bypasses the cache.
	GetDetail(ctx context.Context, id string, fresh bool) (*dto.ProductDetail, error)
	// Invalidate drops the cached detail after the product or its images changed.
	Invalidate(ctx context.Context, id string)
}
