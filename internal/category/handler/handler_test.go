package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-backoffice/internal/auth"
	"github.com/fekuna/omnipos-backoffice/internal/category/dto"
	"github.com/fekuna/omnipos-backoffice/internal/category/tree"
	"github.com/fekuna/omnipos-backoffice/internal/category/usecase"
	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/clock"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
)

type treeRepo struct {
	err error
}

func (r *treeRepo) Tree(ctx context.Context, p dto.TreeParams) ([]model.CategoryNode, error) {
	if r.err != nil {
		return nil, r.err
	}
	nodes := []model.CategoryNode{
		{ID: "frames", Name: "Frames", CategoryStatus: "published", Children: []model.CategoryNode{
			{ID: "optical", Name: "Optical", Level: 1, CategoryStatus: "draft", Children: []model.CategoryNode{}},
		}},
		{ID: "lenses", Name: "Lenses <HD>", CategoryStatus: "published", Children: []model.CategoryNode{}},
	}
	return tree.Truncate(nodes, p.Depth), nil
}

func newRouter(repo *treeRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		ctx := auth.WithSession(c.Request.Context(), auth.Session{ID: "s1"})
		c.Request = c.Request.WithContext(ctx)
	})
	uc := usecase.NewCategoryUseCase(repo, clock.NewFake(time.Unix(0, 0)), logger.NewNop())
	NewCategoryHandler(uc, logger.NewNop()).Register(r.Group("/api/v1"))
	return r
}

func get(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestCategoryHandler_Tree(t *testing.T) {
	r := newRouter(&treeRepo{})

	w := get(r, "/api/v1/categories/tree?status=published")
	require.Equal(t, http.StatusOK, w.Code)

	var view dto.ReviewView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, 1, view.MaxDepth)
	assert.Equal(t, "published", view.Status)
	assert.Equal(t, 3, view.Total)
	assert.Equal(t, 2, view.Visible)
}

func TestCategoryHandler_TreeRejectsUnknownSort(t *testing.T) {
	r := newRouter(&treeRepo{})

	w := get(r, "/api/v1/categories/tree?sortField=color")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryHandler_TreeHTMLEscapesNames(t *testing.T) {
	r := newRouter(&treeRepo{})

	w := get(r, "/api/v1/categories/tree.html")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, `data-id="optical"`)
	assert.Contains(t, body, "Lenses &lt;HD&gt;")
}

func TestCategoryHandler_LoadFailureIsReported(t *testing.T) {
	r := newRouter(&treeRepo{err: errors.New("backend down")})

	w := get(r, "/api/v1/categories/tree")
	require.Equal(t, http.StatusOK, w.Code)

	var view dto.ReviewView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "Could not load the category tree", view.Error)
	assert.Empty(t, view.Nodes)
}
