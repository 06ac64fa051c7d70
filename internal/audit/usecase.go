package audit

import (
	"context"

	"github.com/fekuna/omnipos-backoffice/internal/audit/dto"
	"github.com/fekuna/omnipos-backoffice/internal/model"
)

type UseCase interface {
	// Record stores entry, filling in its id and timestamp.
	Record(ctx context.Context, entry model.ActionLog) error
	List(ctx context.Context, filters *dto.ActionFilters) (*dto.ActionListResponse, error)
}
