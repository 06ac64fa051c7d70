// Package confirm implements the two-step flow every destructive or state
// changing action goes through. Request stores a pending action and returns
// its token. Nothing reaches the backend until Confirm is called with that
// token by the same session, and a token runs at most once.
package confirm

import (
	"context"
	"errors"
	"time"

	"github.com/fekuna/omnipos-backoffice/internal/notify"
)

var (
	ErrConfirmationNotFound = errors.New("confirmation not found")
	ErrConfirmationExpired  = errors.New("confirmation expired")
	// ErrConfirmationForeign is returned when a session uses another session's token.
	ErrConfirmationForeign = errors.New("confirmation belongs to another session")
	ErrUnknownAction       = errors.New("no such action for this resource")
)

type Op string

const (
	OpSoftDelete  Op = "soft-delete"
	OpRestore     Op = "restore"
	OpForceDelete Op = "force-delete"
	OpCancel      Op = "cancel"
)

// ParseOp accepts the route spelling of an operation.
func ParseOp(s string) (Op, bool) {
	switch Op(s) {
	case OpSoftDelete, OpRestore, OpForceDelete, OpCancel:
		return Op(s), true
	case "delete":
		return OpSoftDelete, true
	}
	return "", false
}

func (o Op) messageKey() string {
	switch o {
	case OpRestore:
		return "restore"
	case OpForceDelete:
		return "forceDelete"
	case OpCancel:
		return "cancel"
	}
	return "softDelete"
}

// Pending is an action waiting for its second step.
type Pending struct {
	Token     string    `json:"token"`
	SessionID string    `json:"sessionId"`
	Actor     string    `json:"actor,omitempty"`
	Kind      string    `json:"kind"`
	Op        Op        `json:"op"`
	TargetID  string    `json:"targetId"`
	// Note is optional operator input, e.g. a cancellation reason.
	Note      string    `json:"note,omitempty"`
	Prompt    string    `json:"prompt"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Outcome is what running a confirmed action produced.
type Outcome struct {
	OK    bool         `json:"ok"`
	Toast notify.Toast `json:"toast"`
	// Result is the refreshed view or record the caller should render.
	Result any   `json:"result,omitempty"`
	Err    error `json:"-"`
}

// Executor runs a confirmed action against the backend.
type Executor func(ctx context.Context, p Pending) Outcome

// Store keeps pending actions between the two steps.
type Store interface {
	Save(ctx context.Context, p Pending, ttl time.Duration) error
	Get(ctx context.Context, token string) (Pending, error)
	// Take removes and returns the pending action. Of several concurrent
	// callers exactly one succeeds; the others get ErrConfirmationNotFound.
	Take(ctx context.Context, token string) (Pending, error)
	Delete(ctx context.Context, token string) error
}
