package resource

import (
	"context"
	"net/url"

	"github.com/fekuna/omnipos-backoffice/internal/model"
)

// Repository is the per-entity backend client.
type Repository[T model.Entity] interface {
	List(ctx context.Context, params url.Values) (*model.Page[T], error)
	FindByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, payload map[string]any) (*T, error)
	Update(ctx context.Context, id string, payload map[string]any) (*T, error)
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	ForceDelete(ctx context.Context, id string) error
}
