package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fekuna/omnipos-backoffice/internal/category"
	"github.com/fekuna/omnipos-backoffice/internal/category/dto"
	"github.com/fekuna/omnipos-backoffice/internal/category/tree"
	"github.com/fekuna/omnipos-backoffice/internal/listquery"
	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/notify"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/clock"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/generation"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/i18n"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
)

// InvalidRequestError rejects review controls the page does not offer.
type InvalidRequestError struct {
	Field string
	Value string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

type pruneMemo struct {
	valid   bool
	version uint64
	status  string
	nodes   []model.CategoryNode
}

// Reviewer is the category review page of one admin session.
//
// Lock order is gate then r.mu, as for list pages.
type Reviewer struct {
	repo  category.Repository
	clock clock.Clock
	log   logger.ZapLogger
	gate  generation.Gate

	mu           sync.Mutex
	opened       bool
	nodes        []model.CategoryNode
	version      uint64
	fetchedDepth int
	maxDepth     int
	depth        int
	status       string
	sortField    string
	sortOrder    string
	loadErr      error
	memo         pruneMemo
	lastUsed     time.Time
}

func NewReviewer(repo category.Repository, clk clock.Clock, log logger.ZapLogger) *Reviewer {
	return &Reviewer{
		repo:      repo,
		clock:     clk,
		log:       log,
		nodes:     []model.CategoryNode{},
		status:    tree.StatusAll,
		sortField: tree.SortPriority,
		sortOrder: listquery.OrderAsc,
		lastUsed:  clk.Now(),
	}
}

// Open fetches the tree at the server cap and sizes the depth selector from
// what came back. The display depth starts at the deepest level.
func (r *Reviewer) Open(ctx context.Context) (*dto.ReviewView, error) {
	return r.fetch(ctx, model.MaxCategoryDepth, true)
}

// SetDepth refetches at the requested depth, clamped to [0, 5]. When the
// new tree is shallower than requested the display depth follows it down.
func (r *Reviewer) SetDepth(ctx context.Context, depth int) (*dto.ReviewView, error) {
	return r.fetch(ctx, tree.ClampDepth(depth), false)
}

// SetSort changes the sibling order and refetches at the selected depth.
func (r *Reviewer) SetSort(ctx context.Context, field, order string) (*dto.ReviewView, error) {
	order, err := validateSort(field, order)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.sortField, r.sortOrder = field, order
	depth := r.depth
	r.mu.Unlock()
	return r.fetch(ctx, depth, false)
}

// SetStatus changes the status filter. No fetch is needed.
func (r *Reviewer) SetStatus(ctx context.Context, status string) *dto.ReviewView {
	r.mu.Lock()
	r.status = normalizeStatus(status)
	r.lastUsed = r.clock.Now()
	r.mu.Unlock()
	return r.View(ctx)
}

// Apply runs every change in req with at most two fetches: the first visit
// opens the page, then depth and sort changes share one refetch. A request
// with an invalid sort changes nothing.
func (r *Reviewer) Apply(ctx context.Context, req dto.ReviewRequest) (*dto.ReviewView, error) {
	r.mu.Lock()
	field, order := r.sortField, r.sortOrder
	opened, depth := r.opened, r.depth
	r.mu.Unlock()

	if req.SortField != nil {
		field = *req.SortField
		if req.SortOrder == nil {
			order = listquery.DefaultOrder(field)
		}
	}
	if req.SortOrder != nil {
		order = *req.SortOrder
	}
	order, err := validateSort(field, order)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		r.SetStatus(ctx, *req.Status)
	}
	r.mu.Lock()
	sortChanged := field != r.sortField || order != r.sortOrder
	r.sortField, r.sortOrder = field, order
	r.mu.Unlock()

	if !opened {
		view, err := r.Open(ctx)
		if err != nil || req.Depth == nil {
			return view, err
		}
		return r.SetDepth(ctx, *req.Depth)
	}

	switch {
	case req.Depth != nil && (tree.ClampDepth(*req.Depth) != depth || sortChanged || req.Refresh):
		return r.SetDepth(ctx, *req.Depth)
	case sortChanged || req.Refresh:
		return r.fetch(ctx, depth, false)
	}
	r.touch()
	return r.View(ctx), nil
}

// validateSort returns order normalized to ASC or DESC.
func validateSort(field, order string) (string, error) {
	if !tree.IsSortField(field) {
		return "", &InvalidRequestError{Field: "sortField", Value: field}
	}
	normalized := strings.ToUpper(strings.TrimSpace(order))
	if normalized != listquery.OrderAsc && normalized != listquery.OrderDesc {
		return "", &InvalidRequestError{Field: "sortOrder", Value: order}
	}
	return normalized, nil
}

func (r *Reviewer) touch() {
	r.mu.Lock()
	r.lastUsed = r.clock.Now()
	r.mu.Unlock()
}

func (r *Reviewer) fetch(ctx context.Context, depth int, open bool) (*dto.ReviewView, error) {
	r.mu.Lock()
	params := dto.TreeParams{Depth: depth, SortField: r.sortField, SortOrder: r.sortOrder}
	r.lastUsed = r.clock.Now()
	r.mu.Unlock()

	ticket := r.gate.Begin()
	nodes, err := r.repo.Tree(ctx, params)

	committed := r.gate.Commit(ticket, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.version++
		r.fetchedDepth = depth
		if err != nil {
			r.nodes = []model.CategoryNode{}
			r.loadErr = err
			return
		}
		r.nodes = nodes
		r.loadErr = nil

		observed := tree.CappedMax(nodes)
		if open || !r.opened {
			r.opened = true
			r.maxDepth = observed
			r.depth = observed
			return
		}
		if observed > r.maxDepth {
			r.maxDepth = observed
		}
		r.depth = min(depth, observed)
	})
	if !committed {
		r.log.Debug("discarding superseded category tree", zap.Int("depth", depth))
		view := r.View(ctx)
		view.Stale = true
		return view, model.ErrStaleResponse
	}
	if err != nil {
		r.log.Error("failed to load category tree", zap.Int("depth", depth), zap.Error(err))
	}
	return r.View(ctx), nil
}

// pruned memoizes status pruning per tree version and status. Callers hold r.mu.
func (r *Reviewer) pruned() []model.CategoryNode {
	if r.memo.valid && r.memo.version == r.version && r.memo.status == r.status {
		return r.memo.nodes
	}
	r.memo = pruneMemo{
		valid:   true,
		version: r.version,
		status:  r.status,
		nodes:   tree.Prune(r.nodes, r.status),
	}
	return r.memo.nodes
}

func (r *Reviewer) View(ctx context.Context) *dto.ReviewView {
	loc := i18n.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	pruned := r.pruned()
	view := &dto.ReviewView{
		Nodes:        tree.Truncate(tree.Sort(pruned, r.sortField, r.sortOrder), r.depth),
		Status:       r.status,
		SortField:    r.sortField,
		SortOrder:    r.sortOrder,
		Depth:        r.depth,
		MaxDepth:     r.maxDepth,
		FetchedDepth: r.fetchedDepth,
		Total:        tree.Count(r.nodes),
		Visible:      tree.Count(pruned),
	}
	switch {
	case r.loadErr != nil:
		view.Error = notify.ErrorMessage(r.loadErr, loc.T("tree.loadFailed", nil))
	case len(view.Nodes) == 0:
		view.EmptyMessage = loc.T("list.empty", nil)
	}
	return view
}

func (r *Reviewer) idleSince(before time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastUsed.Before(before)
}

func normalizeStatus(status string) string {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return tree.StatusAll
	}
	return status
}
