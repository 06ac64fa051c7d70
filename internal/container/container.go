// Package container wires the back office's singletons together.
package container

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-backoffice/config"
	"github.com/fekuna/omnipos-backoffice/internal/audit"
	audithandler "github.com/fekuna/omnipos-backoffice/internal/audit/handler"
	auditrepo "github.com/fekuna/omnipos-backoffice/internal/audit/repository"
	auditusecase "github.com/fekuna/omnipos-backoffice/internal/audit/usecase"
	authhandler "github.com/fekuna/omnipos-backoffice/internal/auth/handler"
	"github.com/fekuna/omnipos-backoffice/internal/backend"
	"github.com/fekuna/omnipos-backoffice/internal/category"
	categoryhandler "github.com/fekuna/omnipos-backoffice/internal/category/handler"
	categoryrepo "github.com/fekuna/omnipos-backoffice/internal/category/repository"
	categoryusecase "github.com/fekuna/omnipos-backoffice/internal/category/usecase"
	"github.com/fekuna/omnipos-backoffice/internal/confirm"
	confirmhandler "github.com/fekuna/omnipos-backoffice/internal/confirm/handler"
	"github.com/fekuna/omnipos-backoffice/internal/model"
	orderhandler "github.com/fekuna/omnipos-backoffice/internal/order/handler"
	orderrepo "github.com/fekuna/omnipos-backoffice/internal/order/repository"
	orderusecase "github.com/fekuna/omnipos-backoffice/internal/order/usecase"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/clock"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/i18n"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
	"github.com/fekuna/omnipos-backoffice/internal/product"
	producthandler "github.com/fekuna/omnipos-backoffice/internal/product/handler"
	productrepo "github.com/fekuna/omnipos-backoffice/internal/product/repository"
	productusecase "github.com/fekuna/omnipos-backoffice/internal/product/usecase"
	"github.com/fekuna/omnipos-backoffice/internal/resource"
	resourcehandler "github.com/fekuna/omnipos-backoffice/internal/resource/handler"
	resourcerepo "github.com/fekuna/omnipos-backoffice/internal/resource/repository"
	resourceusecase "github.com/fekuna/omnipos-backoffice/internal/resource/usecase"
	"github.com/fekuna/omnipos-backoffice/internal/store"
)

// Registrar mounts a handler's routes.
type Registrar interface {
	Register(rg *gin.RouterGroup)
}

// SessionViews keeps per-session view state that goes idle.
type SessionViews interface {
	EvictIdle(before time.Time) int
	Forget(sessionID string)
}

type Container struct {
	Config     *config.Config
	Logger     logger.ZapLogger
	Clock      clock.Clock
	Store      *store.Store
	Translator *i18n.Translator
	Backend    *backend.Client
	// Redis is nil when disabled or unreachable.
	Redis redis.UniversalClient

	Audit      audit.UseCase
	Confirm    *confirm.Service
	Categories category.UseCase
	Products   product.UseCase

	Handlers []Registrar
	// Public handlers are mounted without admin auth.
	Public []Registrar

	counters []resourceusecase.TrashCounter
	views    []SessionViews
	closers  []func() error
}

// New builds every dependency from cfg. On error, whatever was opened so far
// is closed again.
func New(ctx context.Context, cfg *config.Config, log logger.ZapLogger) (_ *Container, err error) {
	c := &Container{
		Config: cfg,
		Logger: log,
		Clock:  clock.RealClock{},
		Store:  store.New(),
	}
	defer func() {
		if err != nil {
			_ = c.Close()
		}
	}()

	if c.Translator, err = i18n.NewTranslator(); err != nil {
		return nil, err
	}
	if c.Backend, err = backend.NewClient(backend.Config{BaseURL: cfg.Backend.BaseURL, Timeout: cfg.Backend.Timeout}, log); err != nil {
		return nil, err
	}
	c.Redis = c.connectRedis(ctx)

	auditRepo, err := auditrepo.Open(ctx, cfg.Audit.DSN)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, auditRepo.Close)
	c.Audit = auditusecase.NewAuditUseCase(auditRepo, c.Clock, log)

	var pending confirm.Store = confirm.NewMemoryStore(c.Clock)
	if c.Redis != nil {
		pending = confirm.NewRedisStore(c.Redis)
	}
	c.Confirm = confirm.NewService(pending, c.Audit, c.Clock, cfg.Confirm.TTL, log)

	c.Products = productusecase.NewProductUseCase(productrepo.NewRESTRepository(c.Backend), c.Redis, log)
	c.Categories = categoryusecase.NewCategoryUseCase(categoryrepo.NewRESTRepository(c.Backend), c.Clock, log)
	c.views = append(c.views, c.Categories)

	invalidateProduct := func(ctx context.Context, id string) { c.Products.Invalidate(ctx, id) }
	registerKind[model.Product](c, resource.Products, invalidateProduct)
	registerKind[model.Color](c, resource.Colors)
	registerKind[model.Tag](c, resource.Tags)
	registerKind[model.FrameShape](c, resource.FrameShapes)
	registerKind[model.FrameMaterial](c, resource.FrameMaterials)
	registerKind[model.Banner](c, resource.Banners)
	registerKind[model.Discount](c, resource.Discounts)
	registerKind[model.Voucher](c, resource.Vouchers)
	registerKind[model.Order](c, resource.Orders)
	registerKind[model.Refund](c, resource.Refunds)
	registerKind[model.Return](c, resource.Returns)
	registerKind[model.Review](c, resource.Reviews)
	registerKind[model.User](c, resource.Users)
	registerKind[model.Image](c, resource.Images)

	forgetters := make([]authhandler.Forgetter, 0, len(c.views))
	for _, v := range c.views {
		forgetters = append(forgetters, v)
	}
	c.Handlers = append(c.Handlers,
		producthandler.NewProductHandler(c.Products, log),
		categoryhandler.NewCategoryHandler(c.Categories, log),
		orderhandler.NewOrderHandler(orderusecase.NewOrderUseCase(orderrepo.NewRESTRepository(c.Backend), log), c.Confirm, log),
		confirmhandler.NewConfirmHandler(c.Confirm, log),
		resourcehandler.NewTrashHandler(c.Store, log, c.counters...),
		audithandler.NewAuditHandler(c.Audit, log),
		authhandler.NewSessionHandler(c.Store, log, forgetters...),
	)
	if cfg.IsDevelopment() {
		c.Public = append(c.Public, authhandler.NewDevLoginHandler(cfg.JWT.SecretKey, cfg.JWT.TokenTTL, c.Clock, log))
	}
	return c, nil
}

func registerKind[T model.Entity](c *Container, kind resource.Kind, hooks ...resourceusecase.ChangeHook) {
	repo := resourcerepo.NewRESTRepository[T](c.Backend, kind)
	uc := resourceusecase.NewResourceUseCase[T](kind, repo, c.Store, c.Clock, c.Logger, hooks...)
	c.counters = append(c.counters, uc)
	c.views = append(c.views, uc)
	c.Handlers = append(c.Handlers, resourcehandler.NewResourceHandler[T](uc, c.Confirm, c.Logger))
}

// connectRedis returns nil when Redis is disabled or does not answer, in
// which case confirmations stay in memory and product details are not cached.
func (c *Container) connectRedis(ctx context.Context) redis.UniversalClient {
	cfg := c.Config.Redis
	if !cfg.Enabled {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		c.Logger.Warn("Could not connect to Redis, falling back to in-memory state", zap.String("addr", cfg.Addr), zap.Error(err))
		_ = client.Close()
		return nil
	}
	c.Logger.Info("Connected to Redis", zap.String("addr", cfg.Addr))
	c.closers = append(c.closers, client.Close)
	return client
}

// RefreshTrashCounts seeds the trash badges from the backend.
func (c *Container) RefreshTrashCounts(ctx context.Context) error {
	return resourceusecase.RefreshTrashCounts(ctx, c.Store, c.Logger, c.counters...)
}

// EvictIdle drops view state of sessions unused since before.
func (c *Container) EvictIdle(before time.Time) int {
	n := 0
	for _, v := range c.views {
		n += v.EvictIdle(before)
	}
	return n
}

// EndIdleSessions signs out sessions unseen since before and drops their
// views. Their tokens stay valid, so the next request starts a new session.
func (c *Container) EndIdleSessions(before time.Time) int {
	ids := c.Store.IdleSessions(before)
	actions := make([]store.Action, 0, len(ids))
	for _, id := range ids {
		for _, v := range c.views {
			v.Forget(id)
		}
		actions = append(actions, store.EndSession{ID: id})
	}
	c.Store.Dispatch(actions...)
	return len(ids)
}

// Sweep runs one pass of idle view eviction, idle session expiry and
// revocation pruning.
func (c *Container) Sweep(now time.Time) {
	before := now.Add(-c.Config.Session.IdleTTL)
	if n := c.EvictIdle(before); n > 0 {
		c.Logger.Debug("evicted idle views", zap.Int("count", n))
	}
	if n := c.EndIdleSessions(before); n > 0 {
		c.Logger.Info("ended idle sessions", zap.Int("count", n))
	}
	c.Store.Dispatch(store.PruneRevoked{Now: now})
}

// RunSweeper calls Sweep every interval until ctx is done.
func (c *Container) RunSweeper(ctx context.Context) {
	interval, ttl := c.Config.Session.SweepInterval, c.Config.Session.IdleTTL
	if interval <= 0 || ttl <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Sweep(c.Clock.Now())
		}
	}
}

func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errs...)
}
