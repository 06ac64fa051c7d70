package category

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-backoffice/internal/category/dto"
)

type UseCase interface {
	// Review applies the request to the session's review page, fetching the
	// tree when depth or sort changed, and returns what the page shows.
	Review(ctx context.Context, sessionID string, req dto.ReviewRequest) (*dto.ReviewView, error)
	EvictIdle(before time.Time) int
	Forget(sessionID string)
}
