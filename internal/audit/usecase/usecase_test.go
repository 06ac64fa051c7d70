package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-backoffice/internal/audit/dto"
	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/clock"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
)

type memRepo struct {
	logged  []model.ActionLog
	lastF   dto.ActionFilters
	total   int
	failLog error
}

func (m *memRepo) LogAction(ctx context.Context, e *model.ActionLog) error {
	if m.failLog != nil {
		return m.failLog
	}
	m.logged = append(m.logged, *e)
	return nil
}

func (m *memRepo) ListActions(ctx context.Context, f *dto.ActionFilters) ([]model.ActionLog, int, error) {
	m.lastF = *f
	return m.logged, m.total, nil
}

func TestAuditUseCase_RecordStampsEntry(t *testing.T) {
	now := time.Date(2026, 5, 5, 12, 0, 0, 0, time.UTC)
	repo := &memRepo{}
	uc := NewAuditUseCase(repo, clock.NewFake(now), logger.NewNop())

	require.NoError(t, uc.Record(context.Background(), model.ActionLog{Kind: "tags", Action: "force-delete", TargetID: "t1"}))
	require.Len(t, repo.logged, 1)
	assert.NotEmpty(t, repo.logged[0].ID)
	assert.Equal(t, now, repo.logged[0].CreatedAt)

	repo.failLog = errors.New("disk full")
	assert.Error(t, uc.Record(context.Background(), model.ActionLog{}))
}

func TestAuditUseCase_ListClampsPaging(t *testing.T) {
	repo := &memRepo{total: 45}
	uc := NewAuditUseCase(repo, clock.RealClock{}, logger.NewNop())

	res, err := uc.List(context.Background(), &dto.ActionFilters{PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lastF.Page)
	assert.Equal(t, 100, repo.lastF.PageSize)
	assert.Equal(t, 1, res.Meta.TotalPages)

	res, err = uc.List(context.Background(), &dto.ActionFilters{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 20, repo.lastF.PageSize)
	assert.Equal(t, 3, res.Meta.TotalPages)
	assert.Equal(t, 2, res.Meta.CurrentPage)
}
