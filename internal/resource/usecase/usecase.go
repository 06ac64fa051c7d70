package usecase

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fekuna/omnipos-backoffice/internal/listquery"
	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/notify"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/clock"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/i18n"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
	"github.com/fekuna/omnipos-backoffice/internal/resource"
	"github.com/fekuna/omnipos-backoffice/internal/resource/dto"
	"github.com/fekuna/omnipos-backoffice/internal/store"
)

type viewKey struct {
	session string
	trash   bool
}

// ChangeHook runs after a record was updated, trashed, restored or removed.
type ChangeHook func(ctx context.Context, id string)

type resourceUseCase[T model.Entity] struct {
	kind   resource.Kind
	repo   resource.Repository[T]
	store  *store.Store
	clock  clock.Clock
	logger logger.ZapLogger
	hooks  []ChangeHook

	mu    sync.Mutex
	views map[viewKey]*Listing[T]
}

func NewResourceUseCase[T model.Entity](kind resource.Kind, repo resource.Repository[T], st *store.Store, clk clock.Clock, log logger.ZapLogger, hooks ...ChangeHook) resource.UseCase[T] {
	return &resourceUseCase[T]{
		kind:   kind,
		repo:   repo,
		store:  st,
		clock:  clk,
		logger: log,
		hooks:  hooks,
		views:  map[viewKey]*Listing[T]{},
	}
}

func (uc *resourceUseCase[T]) changed(ctx context.Context, id string) {
	for _, h := range uc.hooks {
		h(ctx, id)
	}
}

func (uc *resourceUseCase[T]) afterMutation(ctx context.Context, l *Listing[T], res *dto.MutationResult[T]) *dto.MutationResult[T] {
	if res.OK {
		uc.invalidate(l)
		uc.changed(ctx, res.ID)
	}
	return res
}

// invalidate makes every cached listing of the kind refetch on its next
// load, across all sessions. skip has already reloaded itself.
func (uc *resourceUseCase[T]) invalidate(skip *Listing[T]) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for _, l := range uc.views {
		if l != skip {
			l.markStale()
		}
	}
}

func (uc *resourceUseCase[T]) Kind() resource.Kind {
	return uc.kind
}

func (uc *resourceUseCase[T]) listing(sessionID string, trash bool) *Listing[T] {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	key := viewKey{session: sessionID, trash: trash}
	l, ok := uc.views[key]
	if !ok {
		l = NewListing(uc.kind, trash, uc.repo, uc.store, uc.clock, uc.logger)
		uc.views[key] = l
	}
	return l
}

func (uc *resourceUseCase[T]) ListView(ctx context.Context, sessionID string, trash bool, values url.Values) (*dto.ListView[T], error) {
	if trash && !uc.kind.Trash {
		return nil, model.ErrTrashUnsupported
	}
	l := uc.listing(sessionID, trash)
	return l.Load(ctx, l.Next(values), false)
}

func (uc *resourceUseCase[T]) CurrentView(ctx context.Context, sessionID string, trash bool) *dto.ListView[T] {
	return uc.listing(sessionID, trash).View(ctx)
}

func (uc *resourceUseCase[T]) Get(ctx context.Context, id string) (*T, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *resourceUseCase[T]) Create(ctx context.Context, payload map[string]any) (*T, error) {
	if err := dto.ValidatePayload(payload, uc.kind.CreateRules); err != nil {
		return nil, err
	}
	rec, err := uc.repo.Create(ctx, payload)
	if err != nil {
		return nil, err
	}
	uc.invalidate(nil)
	return rec, nil
}

func (uc *resourceUseCase[T]) Update(ctx context.Context, id string, payload map[string]any) (*T, error) {
	if err := dto.ValidatePayload(payload, uc.kind.UpdateRules); err != nil {
		return nil, err
	}
	rec, err := uc.repo.Update(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	uc.invalidate(nil)
	uc.changed(ctx, id)
	return rec, nil
}

func (uc *resourceUseCase[T]) SoftDelete(ctx context.Context, sessionID, id string) *dto.MutationResult[T] {
	if res := uc.requireTrash(ctx, id, "softDelete"); res != nil {
		return res
	}
	l := uc.listing(sessionID, false)
	return uc.afterMutation(ctx, l, l.SoftDelete(ctx, id))
}

func (uc *resourceUseCase[T]) Restore(ctx context.Context, sessionID, id string) *dto.MutationResult[T] {
	if res := uc.requireTrash(ctx, id, "restore"); res != nil {
		return res
	}
	l := uc.listing(sessionID, true)
	return uc.afterMutation(ctx, l, l.Restore(ctx, id))
}

func (uc *resourceUseCase[T]) ForceDelete(ctx context.Context, sessionID, id string) *dto.MutationResult[T] {
	if res := uc.requireTrash(ctx, id, "forceDelete"); res != nil {
		return res
	}
	l := uc.listing(sessionID, true)
	return uc.afterMutation(ctx, l, l.ForceDelete(ctx, id))
}

func (uc *resourceUseCase[T]) requireTrash(ctx context.Context, id, key string) *dto.MutationResult[T] {
	if uc.kind.Trash {
		return nil
	}
	loc := i18n.FromContext(ctx)
	return &dto.MutationResult[T]{
		ID:    id,
		Err:   model.ErrTrashUnsupported,
		Toast: notify.Failure(model.ErrTrashUnsupported, loc.Label("toast."+key+".failure", uc.kind.Label)),
	}
}

// CountTrash reads the trash total from a one-row trash page.
func (uc *resourceUseCase[T]) CountTrash(ctx context.Context) (int, error) {
	if !uc.kind.Trash {
		return 0, model.ErrTrashUnsupported
	}
	q := uc.kind.NewQuery(true).SetQ(listquery.Patch{Limit: listquery.Int(1)})
	page, err := uc.repo.List(ctx, q.APIParams())
	if err != nil {
		return 0, err
	}
	if page.Meta.TotalItems == 0 && page.Meta.TotalPages > 0 {
		// limit=1, so one page per record
		return page.Meta.TotalPages, nil
	}
	return page.Meta.TotalItems, nil
}

func (uc *resourceUseCase[T]) EvictIdle(before time.Time) int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	n := 0
	for key, l := range uc.views {
		if l.idleSince(before) {
			delete(uc.views, key)
			n++
		}
	}
	return n
}

func (uc *resourceUseCase[T]) Forget(sessionID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	delete(uc.views, viewKey{session: sessionID, trash: false})
	delete(uc.views, viewKey{session: sessionID, trash: true})
}

// TrashCounter is implemented by every resource use case.
type TrashCounter interface {
	Kind() resource.Kind
	CountTrash(ctx context.Context) (int, error)
}

// RefreshTrashCounts replaces the store's trash counters with backend totals.
// Kinds without trash are skipped. A failing kind keeps its old counter.
func RefreshTrashCounts(ctx context.Context, st *store.Store, log logger.ZapLogger, counters ...TrashCounter) error {
	var errs []error
	for _, c := range counters {
		kind := c.Kind()
		if !kind.Trash {
			continue
		}
		n, err := c.CountTrash(ctx)
		if err != nil {
			log.Warn("failed to count trash", zap.String("kind", kind.Name), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		st.Dispatch(store.SetTrashCount{Kind: kind.Name, Count: n})
	}
	return errors.Join(errs...)
}
