package category

import (
	"context"

	"github.com/fekuna/omnipos-backoffice/internal/category/dto"
	"github.com/fekuna/omnipos-backoffice/internal/model"
)

type Repository interface {
	// Tree fetches the category forest down to params.Depth levels below the roots.
	Tree(ctx context.Context, params dto.TreeParams) ([]model.CategoryNode, error)
}
