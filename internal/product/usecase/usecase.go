package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/notify"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/i18n"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
	"github.com/fekuna/omnipos-backoffice/internal/product"
	"github.com/fekuna/omnipos-backoffice/internal/product/dto"
)

const (
	cacheTTL    = 5 * time.Minute
	cachePrefix = "backoffice:product:detail:"
)

type productUseCase struct {
	repo   product.Repository
	cache  redis.UniversalClient
	logger logger.ZapLogger
}

// NewProductUseCase builds the detail use case. cache may be nil, in which
// case every call reaches the backend.
func NewProductUseCase(repo product.Repository, cache redis.UniversalClient, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

func (uc *productUseCase) GetDetail(ctx context.Context, id string, fresh bool) (*dto.ProductDetail, error) {
	key := cacheKey(id)
	if uc.cache != nil && !fresh {
		val, err := uc.cache.Get(ctx, key).Bytes()
		if err == nil {
			var detail dto.ProductDetail
			if err := json.Unmarshal(val, &detail); err == nil {
				detail.Cached = true
				return &detail, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			uc.logger.Warn("product cache read failed", zap.String("product_id", id), zap.Error(err))
		}
	}

	var (
		p       *model.Product
		images  []model.Image
		imgErr  error
		g, gctx = errgroup.WithContext(ctx)
	)
	g.Go(func() error {
		var err error
		p, err = uc.repo.FindByID(gctx, id)
		return err
	})
	g.Go(func() error {
		// A broken gallery must not take the page down with it.
		images, imgErr = uc.repo.ListImages(gctx, id)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load product %s: %w", id, err)
	}

	detail := &dto.ProductDetail{Product: p, Images: images}
	if imgErr != nil {
		uc.logger.Warn("product images failed to load", zap.String("product_id", id), zap.Error(imgErr))
		detail.Images = []model.Image{}
		detail.ImagesError = notify.ErrorMessage(imgErr, i18n.FromContext(ctx).T("product.imagesFailed", nil))
		return detail, nil
	}
	if detail.Images == nil {
		detail.Images = []model.Image{}
	}

	if uc.cache != nil {
		if data, err := json.Marshal(detail); err == nil {
			if err := uc.cache.Set(ctx, key, data, cacheTTL).Err(); err != nil {
				uc.logger.Warn("product cache write failed", zap.String("product_id", id), zap.Error(err))
			}
		}
	}
	return detail, nil
}

func (uc *productUseCase) Invalidate(ctx context.Context, id string) {
	if uc.cache == nil || id == "" {
		return
	}
	if err := uc.cache.Del(ctx, cacheKey(id)).Err(); err != nil {
		uc.logger.Warn("product cache invalidation failed", zap.String("product_id", id), zap.Error(err))
	}
}

func cacheKey(id string) string {
	return cachePrefix + id
}
