package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-backoffice/internal/audit"
	"github.com/fekuna/omnipos-backoffice/internal/audit/dto"
	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/clock"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type auditUseCase struct {
	repo   audit.Repository
	clock  clock.Clock
	logger logger.ZapLogger
}

func NewAuditUseCase(repo audit.Repository, clk clock.Clock, log logger.ZapLogger) audit.UseCase {
	return &auditUseCase{repo: repo, clock: clk, logger: log}
}

func (uc *auditUseCase) Record(ctx context.Context, entry model.ActionLog) error {
	entry.ID = uuid.New().String()
	entry.CreatedAt = uc.clock.Now()
	if err := uc.repo.LogAction(ctx, &entry); err != nil {
		uc.logger.Error("failed to record action",
			zap.String("kind", entry.Kind),
			zap.String("action", entry.Action),
			zap.String("target_id", entry.TargetID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (uc *auditUseCase) List(ctx context.Context, filters *dto.ActionFilters) (*dto.ActionListResponse, error) {
	f := *filters
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = defaultPageSize
	}
	if f.PageSize > maxPageSize {
		f.PageSize = maxPageSize
	}

	items, total, err := uc.repo.ListActions(ctx, &f)
	if err != nil {
		return nil, err
	}
	return &dto.ActionListResponse{
		Data: items,
		Meta: model.Meta{
			TotalItems:  total,
			TotalPages:  (total + f.PageSize - 1) / f.PageSize,
			CurrentPage: f.Page,
		},
	}, nil
}
