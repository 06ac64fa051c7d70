package resource

import (
	"context"
	"net/url"
	"time"

	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/resource/dto"
)

type UseCase[T model.Entity] interface {
	Kind() Kind

	// ListView applies toolbar state from the admin UI query string to the
	// session's list (or trash) view and loads it when its parameters changed.
	ListView(ctx context.Context, sessionID string, trash bool, values url.Values) (*dto.ListView[T], error)
	// CurrentView returns the session's view without fetching.
	CurrentView(ctx context.Context, sessionID string, trash bool) *dto.ListView[T]

	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, payload map[string]any) (*T, error)
	Update(ctx context.Context, id string, payload map[string]any) (*T, error)

	SoftDelete(ctx context.Context, sessionID, id string) *dto.MutationResult[T]
	Restore(ctx context.Context, sessionID, id string) *dto.MutationResult[T]
	ForceDelete(ctx context.Context, sessionID, id string) *dto.MutationResult[T]

	// CountTrash asks the backend how many records sit in the trash.
	CountTrash(ctx context.Context) (int, error)
	// EvictIdle drops session views unused since before.
	EvictIdle(before time.Time) int
	// Forget drops every view of a session.
	Forget(sessionID string)
}
