package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-backoffice/internal/category/dto"
	"github.com/fekuna/omnipos-backoffice/internal/category/tree"
	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/clock"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
)

func node(id, status string, level int, children ...model.CategoryNode) model.CategoryNode {
	if children == nil {
		children = []model.CategoryNode{}
	}
	return model.CategoryNode{ID: id, Name: id, Level: level, CategoryStatus: status, Children: children}
}

// Frames(draft) > Optical(published) > Round(draft) > Kids(published)
// Lenses(Published)
func fullTree() []model.CategoryNode {
	return []model.CategoryNode{
		node("frames", "draft", 0,
			node("optical", "published", 1,
				node("round", "draft", 2,
					node("kids", "published", 3),
				),
			),
			node("sun", "unpublished", 1),
		),
		node("Lenses", "Published", 0),
	}
}

type treeRepo struct {
	mu     sync.Mutex
	calls  []dto.TreeParams
	err    error
	hold   map[int]chan struct{}
	onCall func(dto.TreeParams)
}

func (f *treeRepo) Tree(ctx context.Context, p dto.TreeParams) ([]model.CategoryNode, error) {
	f.mu.Lock()
	f.calls = append(f.calls, p)
	hold := f.hold[p.Depth]
	onCall, err := f.onCall, f.err
	f.mu.Unlock()
	if onCall != nil {
		onCall(p)
	}
	if hold != nil {
		<-hold
	}
	if err != nil {
		return nil, err
	}
	return tree.Truncate(fullTree(), p.Depth), nil
}

func newReviewer(repo *treeRepo) *Reviewer {
	return NewReviewer(repo, clock.NewFake(time.Unix(0, 0)), logger.NewNop())
}

func TestReviewer_OpenSizesDepthSelector(t *testing.T) {
	repo := &treeRepo{}
	r := newReviewer(repo)

	view, err := r.Open(context.Background())
	require.NoError(t, err)
	require.Len(t, repo.calls, 1)
	assert.Equal(t, model.MaxCategoryDepth, repo.calls[0].Depth)
	assert.Equal(t, 3, view.MaxDepth)
	assert.Equal(t, 3, view.Depth)
	assert.Equal(t, 6, view.Total)
}

func TestReviewer_SetDepthRefetchesAndClamps(t *testing.T) {
	repo := &treeRepo{}
	r := newReviewer(repo)
	ctx := context.Background()
	_, err := r.Open(ctx)
	require.NoError(t, err)

	view, err := r.SetDepth(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls[1].Depth)
	assert.Equal(t, 1, view.Depth)
	assert.Equal(t, 3, view.MaxDepth, "selector keeps the bound from opening")
	assert.Equal(t, 4, view.Total)

	// deeper than the tree: fetched at the cap, shown at the observed max
	view, err = r.SetDepth(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, model.MaxCategoryDepth, repo.calls[2].Depth)
	assert.Equal(t, 3, view.Depth)

	view, err = r.SetDepth(ctx, -4)
	require.NoError(t, err)
	assert.Equal(t, 0, repo.calls[3].Depth)
	assert.Equal(t, 0, view.Depth)
	assert.LessOrEqual(t, view.Depth, min(model.MaxCategoryDepth, tree.ObservedMaxLevel(view.Nodes)))
}

func TestReviewer_DisplayDepthNeverExceedsObservedMax(t *testing.T) {
	for requested := -2; requested <= 8; requested++ {
		r := newReviewer(&treeRepo{})
		ctx := context.Background()
		_, err := r.Open(ctx)
		require.NoError(t, err)

		view, err := r.SetDepth(ctx, requested)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, view.Depth, 0)
		assert.LessOrEqual(t, view.Depth, min(model.MaxCategoryDepth, 3), "requested %d", requested)
	}
}

func TestReviewer_StatusFilterPrunesWithoutFetching(t *testing.T) {
	repo := &treeRepo{}
	r := newReviewer(repo)
	ctx := context.Background()
	_, err := r.Open(ctx)
	require.NoError(t, err)

	view := r.SetStatus(ctx, "PUBLISHED")
	assert.Len(t, repo.calls, 1)
	assert.Equal(t, "published", view.Status)
	// frames kept for optical, round kept for kids, sun dropped
	assert.Equal(t, 5, view.Visible)
	require.Len(t, view.Nodes, 2)
	require.Len(t, view.Nodes[0].Children, 1)
	assert.Equal(t, "optical", view.Nodes[0].Children[0].ID)

	first := r.memo.nodes
	r.View(ctx)
	assert.Same(t, &first[0], &r.memo.nodes[0], "prune result is memoized")

	view = r.SetStatus(ctx, "all")
	assert.Equal(t, 6, view.Visible)
}

func TestReviewer_SortAppliesToEveryLevel(t *testing.T) {
	repo := &treeRepo{}
	r := newReviewer(repo)
	ctx := context.Background()
	_, err := r.Open(ctx)
	require.NoError(t, err)

	view, err := r.SetSort(ctx, tree.SortName, "desc")
	require.NoError(t, err)
	assert.Equal(t, "name", repo.calls[1].SortField)
	assert.Equal(t, "DESC", repo.calls[1].SortOrder)
	assert.Equal(t, 3, repo.calls[1].Depth)

	require.Len(t, view.Nodes, 2)
	assert.Equal(t, "Lenses", view.Nodes[0].ID)
	assert.Equal(t, []string{"sun", "optical"}, []string{view.Nodes[1].Children[0].ID, view.Nodes[1].Children[1].ID})
}

func TestReviewer_ApplyRejectsUnknownSort(t *testing.T) {
	r := newReviewer(&treeRepo{})
	field := "popularity"
	_, err := r.Apply(context.Background(), dto.ReviewRequest{SortField: &field})

	var invalid *InvalidRequestError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "sortField", invalid.Field)
}

func TestReviewer_RejectedApplyLeavesStateAlone(t *testing.T) {
	repo := &treeRepo{}
	r := newReviewer(repo)
	ctx := context.Background()
	_, err := r.Open(ctx)
	require.NoError(t, err)

	status, field, order := "published", tree.SortName, "sideways"
	_, err = r.Apply(ctx, dto.ReviewRequest{Status: &status, SortField: &field, SortOrder: &order})
	var invalid *InvalidRequestError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "sortOrder", invalid.Field)

	view := r.View(ctx)
	assert.Equal(t, "all", view.Status)
	assert.NotEqual(t, tree.SortName, view.SortField)
	assert.Len(t, repo.calls, 1)
}

func TestReviewer_ApplyOpensThenHonoursDepth(t *testing.T) {
	repo := &treeRepo{}
	r := newReviewer(repo)
	depth := 2

	view, err := r.Apply(context.Background(), dto.ReviewRequest{Depth: &depth})
	require.NoError(t, err)
	require.Len(t, repo.calls, 2)
	assert.Equal(t, 5, repo.calls[0].Depth)
	assert.Equal(t, 2, repo.calls[1].Depth)
	assert.Equal(t, 2, view.Depth)
	assert.Equal(t, 3, view.MaxDepth)

	// unchanged controls do not refetch
	_, err = r.Apply(context.Background(), dto.ReviewRequest{Depth: &depth})
	require.NoError(t, err)
	assert.Len(t, repo.calls, 2)
}

func TestReviewer_StaleFetchIsDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	repo := &treeRepo{hold: map[int]chan struct{}{}}
	r := newReviewer(repo)
	ctx := context.Background()
	_, err := r.Open(ctx)
	require.NoError(t, err)

	repo.mu.Lock()
	repo.hold[1] = release
	repo.onCall = func(p dto.TreeParams) {
		if p.Depth == 1 {
			close(started)
		}
	}
	repo.mu.Unlock()

	slow := make(chan error, 1)
	go func() {
		_, err := r.SetDepth(ctx, 1)
		slow <- err
	}()
	<-started

	view, err := r.SetDepth(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Depth)

	close(release)
	assert.ErrorIs(t, <-slow, model.ErrStaleResponse)
	assert.Equal(t, 2, r.View(ctx).Depth)
	assert.Equal(t, 2, r.View(ctx).FetchedDepth)
}

func TestReviewer_FetchErrorIsDistinct(t *testing.T) {
	repo := &treeRepo{err: errors.New("boom")}
	r := newReviewer(repo)

	view, err := r.Open(context.Background())
	require.NoError(t, err)
	assert.Empty(t, view.Nodes)
	assert.Equal(t, "Could not load the category tree", view.Error)
	assert.Empty(t, view.EmptyMessage)
}

func TestCategoryUseCase_SessionsAreIndependent(t *testing.T) {
	clk := clock.NewFake(time.Unix(0, 0))
	uc := NewCategoryUseCase(&treeRepo{}, clk, logger.NewNop())
	ctx := context.Background()
	status := "draft"

	a, err := uc.Review(ctx, "a", dto.ReviewRequest{Status: &status})
	require.NoError(t, err)
	b, err := uc.Review(ctx, "b", dto.ReviewRequest{})
	require.NoError(t, err)
	assert.Equal(t, "draft", a.Status)
	assert.Equal(t, tree.StatusAll, b.Status)

	clk.Advance(time.Hour)
	assert.Equal(t, 2, uc.EvictIdle(clk.Now()))
}
