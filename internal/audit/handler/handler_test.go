package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-backoffice/internal/audit/dto"
	"github.com/fekuna/omnipos-backoffice/internal/audit/repository"
	"github.com/fekuna/omnipos-backoffice/internal/audit/usecase"
	"github.com/fekuna/omnipos-backoffice/internal/auth"
	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/clock"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
)

func TestAuditHandler_ListActions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	repo, err := repository.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	uc := usecase.NewAuditUseCase(repo, clock.NewFake(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)), logger.NewNop())
	require.NoError(t, uc.Record(ctx, model.ActionLog{SessionID: "s1", Kind: "tags", Action: "soft-delete", TargetID: "t1", Succeeded: true}))
	require.NoError(t, uc.Record(ctx, model.ActionLog{SessionID: "s2", Kind: "tags", Action: "restore", TargetID: "t1", Succeeded: true}))
	require.NoError(t, uc.Record(ctx, model.ActionLog{SessionID: "s2", Kind: "orders", Action: "cancel", TargetID: "o1"}))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(auth.WithSession(c.Request.Context(), auth.Session{ID: "s2"}))
	})
	NewAuditHandler(uc, logger.NewNop()).Register(r.Group("/api/v1"))

	list := func(target string) dto.ActionListResponse {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		require.Equal(t, http.StatusOK, w.Code)
		var res dto.ActionListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		return res
	}

	res := list("/api/v1/audit?kind=tags")
	assert.Len(t, res.Data, 2)
	assert.Equal(t, 2, res.Meta.TotalItems)

	res = list("/api/v1/audit?mine=true")
	assert.Len(t, res.Data, 2)
	for _, e := range res.Data {
		assert.Equal(t, "s2", e.SessionID)
	}

	res = list("/api/v1/audit?pageSize=1&page=3")
	assert.Len(t, res.Data, 1)
	assert.Equal(t, 3, res.Meta.TotalPages)
	assert.Equal(t, 3, res.Meta.CurrentPage)
}
