package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fekuna/omnipos-backoffice/internal/backend"
	"github.com/fekuna/omnipos-backoffice/internal/category/dto"
	"github.com/fekuna/omnipos-backoffice/internal/model"
)

const treePath = "categories/tree"

type RESTRepository struct {
	client *backend.Client
}

func NewRESTRepository(client *backend.Client) *RESTRepository {
	return &RESTRepository{client: client}
}

func (r *RESTRepository) Tree(ctx context.Context, params dto.TreeParams) ([]model.CategoryNode, error) {
	var raw json.RawMessage
	if err := r.client.Get(ctx, treePath, params.Values(), &raw); err != nil {
		return nil, err
	}
	nodes := []model.CategoryNode{}
	if len(raw) == 0 {
		return nodes, nil
	}
	if err := backend.DecodeRecord(raw, &nodes); err != nil {
		return nil, fmt.Errorf("decode category tree: %w", err)
	}
	return nodes, nil
}
