package repository

import (
	"context"

	"github.com/fekuna/omnipos-backoffice/internal/backend"
	"github.com/fekuna/omnipos-backoffice/internal/listquery"
	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/resource"
	resourcerepo "github.com/fekuna/omnipos-backoffice/internal/resource/repository"
)

const (
	imageOwnerProduct = "product"
	// maxImagePages bounds the gallery walk if the backend keeps reporting more pages.
	maxImagePages = 20
)

type RESTRepository struct {
	products *resourcerepo.RESTRepository[model.Product]
	images   *resourcerepo.RESTRepository[model.Image]
}

func NewRESTRepository(client *backend.Client) *RESTRepository {
	return &RESTRepository{
		products: resourcerepo.NewRESTRepository[model.Product](client, resource.Products),
		images:   resourcerepo.NewRESTRepository[model.Image](client, resource.Images),
	}
}

func (r *RESTRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	return r.products.FindByID(ctx, id)
}

func (r *RESTRepository) ListImages(ctx context.Context, productID string) ([]model.Image, error) {
	q := resource.Images.NewQuery(false).SetQ(listquery.Patch{
		Limit: listquery.Int(listquery.MaxLimit),
		Filters: map[string][]string{
			"ownerType": {imageOwnerProduct},
			"ownerId":   {productID},
		},
	})
	var all []model.Image
	for {
		page, err := r.images.List(ctx, q.APIParams())
		if err != nil {
			return nil, err
		}
		all = append(all, page.Data...)
		if !hasMore(q.Page, len(page.Data), q.Limit, page) || q.Page >= maxImagePages {
			break
		}
		q = q.WithPage(q.Page + 1)
	}
	if all == nil {
		all = []model.Image{}
	}
	return all, nil
}

func hasMore(current, got, limit int, page *model.Page[model.Image]) bool {
	if page.HasNext != nil {
		return *page.HasNext
	}
	if page.Meta.TotalPages > 0 {
		return current < page.Meta.TotalPages
	}
	return got == limit && got > 0
}
