package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/fekuna/omnipos-backoffice/internal/category"
	"github.com/fekuna/omnipos-backoffice/internal/category/dto"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/clock"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
)

type categoryUseCase struct {
	repo   category.Repository
	clock  clock.Clock
	logger logger.ZapLogger

	mu        sync.Mutex
	reviewers map[string]*Reviewer
}

func NewCategoryUseCase(repo category.Repository, clk clock.Clock, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:      repo,
		clock:     clk,
		logger:    log,
		reviewers: map[string]*Reviewer{},
	}
}

func (uc *categoryUseCase) reviewer(sessionID string) *Reviewer {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	r, ok := uc.reviewers[sessionID]
	if !ok {
		r = NewReviewer(uc.repo, uc.clock, uc.logger)
		uc.reviewers[sessionID] = r
	}
	return r
}

func (uc *categoryUseCase) Review(ctx context.Context, sessionID string, req dto.ReviewRequest) (*dto.ReviewView, error) {
	return uc.reviewer(sessionID).Apply(ctx, req)
}

func (uc *categoryUseCase) EvictIdle(before time.Time) int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	n := 0
	for id, r := range uc.reviewers {
		if r.idleSince(before) {
			delete(uc.reviewers, id)
			n++
		}
	}
	return n
}

func (uc *categoryUseCase) Forget(sessionID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	delete(uc.reviewers, sessionID)
}
