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
	"github.com/fekuna/omnipos-backoffice/internal/pkg/generation"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/i18n"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
	"github.com/fekuna/omnipos-backoffice/internal/resource"
	"github.com/fekuna/omnipos-backoffice/internal/resource/dto"
	"github.com/fekuna/omnipos-backoffice/internal/store"
)

// ErrBusy is returned when a mutation on the same record is still running.
var ErrBusy = errors.New("record is busy")

type mutation int

const (
	opSoftDelete mutation = iota
	opRestore
	opForceDelete
)

func (m mutation) messageKey() string {
	switch m {
	case opRestore:
		return "restore"
	case opForceDelete:
		return "forceDelete"
	}
	return "softDelete"
}

// Listing is one list or trash page of one admin session.
//
// l.mu is never held across a backend call or while calling into the gate.
// The gate's Commit callback takes l.mu, so the lock order is gate then l.mu.
type Listing[T model.Entity] struct {
	kind  resource.Kind
	repo  resource.Repository[T]
	store *store.Store
	clock clock.Clock
	log   logger.ZapLogger
	gate  generation.Gate

	mu        sync.Mutex
	query     listquery.Query
	rows      []T
	meta      model.Meta
	hasNext   *bool
	hasPrev   *bool
	loadedKey string
	loadErr   error
	// version counts committed loads. A rollback is skipped when a newer
	// load replaced the rows it would restore into.
	version  uint64
	busy     map[string]bool
	lastUsed time.Time
}

func NewListing[T model.Entity](kind resource.Kind, trash bool, repo resource.Repository[T], st *store.Store, clk clock.Clock, log logger.ZapLogger) *Listing[T] {
	return &Listing[T]{
		kind:     kind,
		repo:     repo,
		store:    st,
		clock:    clk,
		log:      log.With(zap.String("kind", kind.Name), zap.Bool("trash", trash)),
		query:    kind.NewQuery(trash),
		rows:     []T{},
		busy:     map[string]bool{},
		lastUsed: clk.Now(),
	}
}

func (l *Listing[T]) Query() listquery.Query {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query
}

// Next applies toolbar values on top of the current query. Any change other
// than the page itself sends the list back to page 1 unless values names a
// page explicitly.
func (l *Listing[T]) Next(values url.Values) listquery.Query {
	cur := l.Query()
	next := listquery.FromValues(values, cur, l.kind.Filters)
	if !values.Has("page") && next.WithPage(cur.Page).APIKey() != cur.APIKey() {
		next = next.WithPage(1)
	}
	return next
}

// Load makes q the list's query and fetches it unless the rows already
// belong to the same backend parameters. Only the most recently started
// fetch may commit. A superseded call gets the current view marked Stale
// together with model.ErrStaleResponse.
func (l *Listing[T]) Load(ctx context.Context, q listquery.Query, force bool) (*dto.ListView[T], error) {
	key := q.APIKey()

	l.mu.Lock()
	l.lastUsed = l.clock.Now()
	if !force && key == l.loadedKey && l.loadErr == nil {
		l.query = q
		l.mu.Unlock()
		return l.View(ctx), nil
	}
	l.mu.Unlock()

	ticket := l.gate.Begin()
	page, err := l.repo.List(ctx, q.APIParams())

	committed := l.gate.Commit(ticket, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.query = q
		l.version++
		if err != nil {
			l.rows = []T{}
			l.meta = model.Meta{}
			l.hasNext, l.hasPrev = nil, nil
			l.loadedKey = ""
			l.loadErr = err
			return
		}
		l.rows = page.Data
		l.meta = page.Meta
		l.hasNext, l.hasPrev = page.HasNext, page.HasPrev
		l.loadedKey = key
		l.loadErr = nil
	})
	if !committed {
		l.log.Debug("discarding superseded list response", zap.Uint64("ticket", uint64(ticket)))
		view := l.View(ctx)
		view.Stale = true
		return view, model.ErrStaleResponse
	}
	if err != nil {
		l.log.Error("failed to load list", zap.String("params", key), zap.Error(err))
	}
	return l.View(ctx), nil
}

// markStale makes the next Load fetch even when the query is unchanged.
func (l *Listing[T]) markStale() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loadedKey = ""
}

// Reload refetches the current query.
func (l *Listing[T]) Reload(ctx context.Context) (*dto.ListView[T], error) {
	return l.Load(ctx, l.Query(), true)
}

func (l *Listing[T]) View(ctx context.Context) *dto.ListView[T] {
	loc := i18n.FromContext(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	pagination := dto.NewPagination(l.query, l.meta, l.hasNext, l.hasPrev)
	view := &dto.ListView[T]{
		Kind:       l.kind.Name,
		Trash:      l.query.Trash,
		Rows:       append([]T{}, l.rows...),
		Query:      dto.NewQueryView(l.query),
		Pagination: pagination,
		Links:      dto.NewPageLinks(l.query, pagination, l.kind.Filters),
		TrashCount: l.store.TrashCount(l.kind.Name),
	}
	switch {
	case l.loadErr != nil:
		view.Error = notify.ErrorMessage(l.loadErr, loc.Label("list.loadFailed", l.kind.Label))
	case len(view.Rows) == 0 && l.query.Trash:
		view.EmptyMessage = loc.T("trash.empty", nil)
	case len(view.Rows) == 0:
		view.EmptyMessage = loc.T("list.empty", nil)
	}
	return view
}

func (l *Listing[T]) SoftDelete(ctx context.Context, id string) *dto.MutationResult[T] {
	return l.mutate(ctx, id, opSoftDelete)
}

func (l *Listing[T]) Restore(ctx context.Context, id string) *dto.MutationResult[T] {
	return l.mutate(ctx, id, opRestore)
}

func (l *Listing[T]) ForceDelete(ctx context.Context, id string) *dto.MutationResult[T] {
	return l.mutate(ctx, id, opForceDelete)
}

func (l *Listing[T]) mutate(ctx context.Context, id string, op mutation) *dto.MutationResult[T] {
	loc := i18n.FromContext(ctx)
	key := op.messageKey()
	res := &dto.MutationResult[T]{ID: id}

	l.mu.Lock()
	l.lastUsed = l.clock.Now()
	if l.busy[id] {
		l.mu.Unlock()
		res.Err = ErrBusy
		res.Toast = notify.Info(loc.Label("toast.busy", l.kind.Label))
		res.View = l.View(ctx)
		return res
	}
	l.busy[id] = true
	original := l.rows
	version := l.version
	l.rows = ApplyOptimistic(l.rows, id)
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		delete(l.busy, id)
		l.mu.Unlock()
	}()

	err := l.call(ctx, id, op)
	if err != nil {
		l.mu.Lock()
		if l.version == version {
			l.rows = RollbackOnFailure(l.rows, original, id)
		}
		l.mu.Unlock()

		l.log.Error("mutation failed", zap.String("op", key), zap.String("id", id), zap.Error(err))
		res.Err = err
		res.Toast = notify.Failure(err, loc.Label("toast."+key+".failure", l.kind.Label))
		res.View = l.View(ctx)
		return res
	}

	switch op {
	case opSoftDelete:
		l.store.Dispatch(store.IncrementTrash{Kind: l.kind.Name})
	case opRestore, opForceDelete:
		l.store.Dispatch(store.DecrementTrash{Kind: l.kind.Name})
	}
	res.OK = true
	res.Toast = notify.Success(loc.Label("toast."+key+".success", l.kind.Label))

	// The last row of a page is gone: step back one page if there is one.
	l.mu.Lock()
	q := l.query
	if len(l.rows) == 0 && q.Page > 1 && dto.NewPagination(q, l.meta, l.hasNext, l.hasPrev).HasPrev {
		q = q.SetQFunc(func(q listquery.Query) listquery.Query {
			q.Page--
			return q
		})
	}
	l.mu.Unlock()

	view, err := l.Load(ctx, q, true)
	if err != nil && !errors.Is(err, model.ErrStaleResponse) {
		l.log.Warn("reload after mutation failed", zap.Error(err))
	}
	res.View = view
	return res
}

func (l *Listing[T]) call(ctx context.Context, id string, op mutation) error {
	switch op {
	case opRestore:
		return l.repo.Restore(ctx, id)
	case opForceDelete:
		return l.repo.ForceDelete(ctx, id)
	}
	return l.repo.SoftDelete(ctx, id)
}

func (l *Listing[T]) idleSince(before time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastUsed.Before(before) && len(l.busy) == 0
}
