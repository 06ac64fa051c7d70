package audit

import (
	"context"

	"github.com/fekuna/omnipos-backoffice/internal/audit/dto"
	"github.com/fekuna/omnipos-backoffice/internal/model"
)

type Repository interface {
	LogAction(ctx context.Context, entry *model.ActionLog) error
	ListActions(ctx context.Context, filters *dto.ActionFilters) ([]model.ActionLog, int, error)
}
