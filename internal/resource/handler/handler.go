package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-backoffice/internal/confirm"
	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/notify"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/i18n"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/response"
	"github.com/fekuna/omnipos-backoffice/internal/resource"
	"github.com/fekuna/omnipos-backoffice/internal/resource/dto"
)

// PendingResponse is returned for the first step of a confirmed action.
type PendingResponse struct {
	Token      string `json:"token"`
	Prompt     string `json:"prompt"`
	Kind       string `json:"kind"`
	Op         string `json:"op"`
	TargetID   string `json:"targetId"`
	ExpiresAt  string `json:"expiresAt"`
	ConfirmURL string `json:"confirmUrl"`
}

type RecordResponse[T any] struct {
	Data  *T            `json:"data"`
	Toast *notify.Toast `json:"toast,omitempty"`
}

type ResourceHandler[T model.Entity] struct {
	uc      resource.UseCase[T]
	confirm *confirm.Service
	logger  logger.ZapLogger
}

func NewResourceHandler[T model.Entity](uc resource.UseCase[T], confirmSvc *confirm.Service, log logger.ZapLogger) *ResourceHandler[T] {
	h := &ResourceHandler[T]{
		uc:      uc,
		confirm: confirmSvc,
		logger:  log.With(zap.String("kind", uc.Kind().Name)),
	}
	h.registerActions()
	return h
}

// Register mounts the kind's routes under rg, e.g. /colors, /colors/trash.
func (h *ResourceHandler[T]) Register(rg *gin.RouterGroup) {
	kind := h.uc.Kind()
	g := rg.Group("/" + kind.Name)
	g.GET("", h.List)
	if kind.Trash {
		g.GET("/trash", h.Trash)
	}
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PATCH("/:id", h.Update)
	g.POST("/:id/:op", h.RequestAction)
}

// registerActions makes the trash operations confirmable.
func (h *ResourceHandler[T]) registerActions() {
	kind := h.uc.Kind()
	if !kind.Trash || h.confirm == nil {
		return
	}
	h.confirm.Register(kind.Name, confirm.OpSoftDelete, kind.Label, h.execute(h.uc.SoftDelete))
	h.confirm.Register(kind.Name, confirm.OpRestore, kind.Label, h.execute(h.uc.Restore))
	h.confirm.Register(kind.Name, confirm.OpForceDelete, kind.Label, h.execute(h.uc.ForceDelete))
}

func (h *ResourceHandler[T]) execute(run func(ctx context.Context, sessionID, id string) *dto.MutationResult[T]) confirm.Executor {
	return func(ctx context.Context, p confirm.Pending) confirm.Outcome {
		res := run(ctx, p.SessionID, p.TargetID)
		return confirm.Outcome{OK: res.OK, Toast: res.Toast, Result: res.View, Err: res.Err}
	}
}

func (h *ResourceHandler[T]) List(c *gin.Context) {
	h.list(c, false)
}

func (h *ResourceHandler[T]) Trash(c *gin.Context) {
	h.list(c, true)
}

func (h *ResourceHandler[T]) list(c *gin.Context, trash bool) {
	view, err := h.uc.ListView(c.Request.Context(), response.SessionID(c), trash, c.Request.URL.Query())
	if err != nil && !errors.Is(err, model.ErrStaleResponse) {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ResourceHandler[T]) Get(c *gin.Context) {
	record, err := h.uc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, RecordResponse[T]{Data: record})
}

func (h *ResourceHandler[T]) Create(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorBody{Error: err.Error()})
		return
	}
	record, err := h.uc.Create(c.Request.Context(), payload)
	h.writeRecord(c, http.StatusCreated, record, err, "create")
}

func (h *ResourceHandler[T]) Update(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorBody{Error: err.Error()})
		return
	}
	record, err := h.uc.Update(c.Request.Context(), c.Param("id"), payload)
	h.writeRecord(c, http.StatusOK, record, err, "update")
}

func (h *ResourceHandler[T]) writeRecord(c *gin.Context, status int, record *T, err error, key string) {
	loc := i18n.FromContext(c.Request.Context())
	label := h.uc.Kind().Label
	if err != nil {
		toast := notify.Failure(err, loc.Label("toast."+key+".failure", label))
		body := gin.H{"error": toast.Message, "toast": toast}
		var validation *dto.ValidationError
		if errors.As(err, &validation) {
			body["fields"] = validation.Fields
		}
		if response.Status(err) >= http.StatusInternalServerError {
			h.logger.Error("failed to "+key+" record", zap.Error(err))
		}
		c.AbortWithStatusJSON(response.Status(err), body)
		return
	}
	toast := notify.Success(loc.Label("toast."+key+".success", label))
	c.JSON(status, RecordResponse[T]{Data: record, Toast: &toast})
}

type actionRequest struct {
	Note string `json:"note"`
}

// RequestAction is the first step of delete, restore and force delete. It
// answers 202 with a token to post to /confirmations/:token.
func (h *ResourceHandler[T]) RequestAction(c *gin.Context) {
	op, ok := confirm.ParseOp(c.Param("op"))
	if !ok || h.confirm == nil {
		response.Error(c, h.logger, confirm.ErrUnknownAction)
		return
	}
	var req actionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorBody{Error: err.Error()})
			return
		}
	}

	p, err := h.confirm.Request(c.Request.Context(), response.SessionID(c), h.uc.Kind().Name, op, c.Param("id"), req.Note)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusAccepted, NewPendingResponse(p))
}

func NewPendingResponse(p *confirm.Pending) PendingResponse {
	return PendingResponse{
		Token:      p.Token,
		Prompt:     p.Prompt,
		Kind:       p.Kind,
		Op:         string(p.Op),
		TargetID:   p.TargetID,
		ExpiresAt:  p.ExpiresAt.Format(time.RFC3339),
		ConfirmURL: "/api/v1/confirmations/" + p.Token,
	}
}
