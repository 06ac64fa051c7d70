// Package response writes the back-office API's JSON answers and maps
// errors to HTTP statuses in one place.
package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-backoffice/internal/auth"
	"github.com/fekuna/omnipos-backoffice/internal/backend"
	"github.com/fekuna/omnipos-backoffice/internal/category/usecase"
	"github.com/fekuna/omnipos-backoffice/internal/confirm"
	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
	resourcedto "github.com/fekuna/omnipos-backoffice/internal/resource/dto"
	resourceuc "github.com/fekuna/omnipos-backoffice/internal/resource/usecase"
)

type ErrorBody struct {
	Error  string            `json:"error"`
	Detail string            `json:"detail,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Status maps err to the HTTP status returned to the admin UI. Backend
// client errors keep their status, backend failures become 502.
func Status(err error) int {
	var validation *resourcedto.ValidationError
	var invalid *usecase.InvalidRequestError
	var apiErr *backend.APIError

	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, context.Canceled):
		return 499
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNotFound),
		errors.Is(err, model.ErrUnknownKind),
		errors.Is(err, confirm.ErrConfirmationNotFound),
		errors.Is(err, confirm.ErrUnknownAction):
		return http.StatusNotFound
	case errors.Is(err, confirm.ErrConfirmationForeign),
		errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrRevokedToken):
		return http.StatusUnauthorized
	case errors.Is(err, confirm.ErrConfirmationExpired):
		return http.StatusGone
	case errors.Is(err, model.ErrTrashUnsupported):
		return http.StatusMethodNotAllowed
	case errors.Is(err, resourceuc.ErrBusy):
		return http.StatusConflict
	case errors.As(err, &apiErr):
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return apiErr.StatusCode
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// Error aborts the request with err's status. Server-side failures are logged.
func Error(c *gin.Context, log logger.ZapLogger, err error) {
	status := Status(err)
	body := ErrorBody{Error: err.Error(), Detail: backend.Detail(err)}

	var validation *resourcedto.ValidationError
	if errors.As(err, &validation) {
		body.Fields = validation.Fields
	}
	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		if status == http.StatusInternalServerError {
			body.Error = http.StatusText(status)
		}
	}
	c.AbortWithStatusJSON(status, body)
}

// SessionID is the signed-in admin's session id set by the auth middleware.
func SessionID(c *gin.Context) string {
	if s, ok := auth.SessionFrom(c.Request.Context()); ok {
		return s.ID
	}
	return ""
}
