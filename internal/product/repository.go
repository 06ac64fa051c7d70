package product

import (
	"context"

	"github.com/fekuna/omnipos-backoffice/internal/model"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*model.Product, error)
	// ListImages returns the live images owned by the product.
	ListImages(ctx context.Context, productID string) ([]model.Image, error)
}
