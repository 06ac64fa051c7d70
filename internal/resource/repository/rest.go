package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/fekuna/omnipos-backoffice/internal/backend"
	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/resource"
)

// RESTRepository talks to one backend collection.
type RESTRepository[T model.Entity] struct {
	client *backend.Client
	path   string
}

func NewRESTRepository[T model.Entity](client *backend.Client, kind resource.Kind) *RESTRepository[T] {
	return &RESTRepository[T]{client: client, path: kind.BackendPath()}
}

func (r *RESTRepository[T]) List(ctx context.Context, params url.Values) (*model.Page[T], error) {
	var page model.Page[T]
	if err := r.client.Get(ctx, r.path, params, &page); err != nil {
		return nil, err
	}
	if page.Data == nil {
		page.Data = []T{}
	}
	return &page, nil
}

func (r *RESTRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var raw json.RawMessage
	if err := r.client.Get(ctx, r.item(id), nil, &raw); err != nil {
		return nil, err
	}
	return decode[T](raw)
}

func (r *RESTRepository[T]) Create(ctx context.Context, payload map[string]any) (*T, error) {
	var raw json.RawMessage
	if err := r.client.Post(ctx, r.path, payload, &raw); err != nil {
		return nil, err
	}
	return decode[T](raw)
}

func (r *RESTRepository[T]) Update(ctx context.Context, id string, payload map[string]any) (*T, error) {
	var raw json.RawMessage
	if err := r.client.Patch(ctx, r.item(id), payload, &raw); err != nil {
		return nil, err
	}
	return decode[T](raw)
}

// SoftDelete moves the record to the trash.
func (r *RESTRepository[T]) SoftDelete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, r.item(id), nil)
}

func (r *RESTRepository[T]) Restore(ctx context.Context, id string) error {
	return r.client.Patch(ctx, r.item(id)+"/restore", nil, nil)
}

// ForceDelete removes a trashed record permanently.
func (r *RESTRepository[T]) ForceDelete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, r.item(id)+"/force", nil)
}

func (r *RESTRepository[T]) item(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

func decode[T any](raw json.RawMessage) (*T, error) {
	var out T
	if len(raw) == 0 {
		return &out, nil
	}
	if err := backend.DecodeRecord(raw, &out); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &out, nil
}
