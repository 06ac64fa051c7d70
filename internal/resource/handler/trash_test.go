package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/clock"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
	"github.com/fekuna/omnipos-backoffice/internal/resource"
	"github.com/fekuna/omnipos-backoffice/internal/resource/usecase"
	"github.com/fekuna/omnipos-backoffice/internal/store"
)

type countingRepo struct {
	tagRepo
	total int
	err   error
}

func (r *countingRepo) List(ctx context.Context, params url.Values) (*model.Page[model.Tag], error) {
	if r.err != nil {
		return nil, r.err
	}
	return &model.Page[model.Tag]{Meta: model.Meta{TotalItems: r.total}}, nil
}

func TestTrashHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()
	st := store.New()
	st.Dispatch(store.SetTrashCount{Kind: "colors", Count: 4})

	tags := usecase.NewResourceUseCase[model.Tag](resource.Tags, &countingRepo{total: 3}, st, clock.RealClock{}, log)
	colors := usecase.NewResourceUseCase[model.Tag](resource.Colors, &countingRepo{err: errors.New("down")}, st, clock.RealClock{}, log)
	orders := usecase.NewResourceUseCase[model.Tag](resource.Orders, &countingRepo{}, st, clock.RealClock{}, log)

	r := gin.New()
	NewTrashHandler(st, log, tags, colors, orders).Register(r.Group("/api/v1"))

	decode := func(w *httptest.ResponseRecorder) TrashCountsResponse {
		require.Equal(t, http.StatusOK, w.Code)
		var res TrashCountsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		return res
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/trash-counts", nil))
	res := decode(w)
	assert.Equal(t, map[string]int{"tags": 0, "colors": 4}, res.Counts)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/trash-counts/refresh", nil))
	res = decode(w)
	assert.True(t, res.Partial)
	assert.Equal(t, map[string]int{"tags": 3, "colors": 4}, res.Counts)
}
