package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-backoffice/internal/backend"
	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
)

type fakeRepo struct {
	product   *model.Product
	findErr   error
	images    []model.Image
	imagesErr error
	finds     atomic.Int32
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*model.Product, error) {
	f.finds.Add(1)
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.product, nil
}

func (f *fakeRepo) ListImages(ctx context.Context, productID string) ([]model.Image, error) {
	return f.images, f.imagesErr
}

func TestGetDetail(t *testing.T) {
	repo := &fakeRepo{
		product: &model.Product{BaseModel: model.BaseModel{ID: "p1"}, Name: "Aviator"},
		images:  []model.Image{{BaseModel: model.BaseModel{ID: "i1"}, URL: "https://cdn.example.com/a.jpg"}},
	}
	uc := NewProductUseCase(repo, nil, logger.NewNop())

	detail, err := uc.GetDetail(context.Background(), "p1", false)
	require.NoError(t, err)
	assert.Equal(t, "Aviator", detail.Product.Name)
	assert.Len(t, detail.Images, 1)
	assert.Empty(t, detail.ImagesError)
	assert.False(t, detail.Cached)
}

func TestGetDetail_ImageFailureKeepsProduct(t *testing.T) {
	repo := &fakeRepo{
		product:   &model.Product{BaseModel: model.BaseModel{ID: "p1"}},
		imagesErr: &backend.APIError{StatusCode: 500, Detail: "storage offline"},
	}
	uc := NewProductUseCase(repo, nil, logger.NewNop())

	detail, err := uc.GetDetail(context.Background(), "p1", false)
	require.NoError(t, err)
	assert.NotNil(t, detail.Images)
	assert.Empty(t, detail.Images)
	assert.Equal(t, "storage offline", detail.ImagesError)

	repo.imagesErr = errors.New("dial tcp: refused")
	detail, err = uc.GetDetail(context.Background(), "p1", false)
	require.NoError(t, err)
	assert.Equal(t, "Could not load product images", detail.ImagesError)
}

func TestGetDetail_ProductErrorFails(t *testing.T) {
	repo := &fakeRepo{findErr: model.ErrNotFound}
	uc := NewProductUseCase(repo, nil, logger.NewNop())

	_, err := uc.GetDetail(context.Background(), "missing", false)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestInvalidateWithoutCacheIsNoop(t *testing.T) {
	uc := NewProductUseCase(&fakeRepo{}, nil, logger.NewNop())
	assert.NotPanics(t, func() { uc.Invalidate(context.Background(), "p1") })
}
