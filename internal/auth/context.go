package auth

import "context"

type ctxKey int

const (
	sessionKey ctxKey = iota
	backendTokenKey
)

// Session is the signed-in admin. ID doubles as the key for all per-admin
// view state held by the service.
type Session struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func SessionFrom(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey).(Session)
	return s, ok
}

// WithBackendToken attaches the bearer token forwarded to the REST backend.
func WithBackendToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, backendTokenKey, token)
}

func BackendToken(ctx context.Context) string {
	if val, ok := ctx.Value(backendTokenKey).(string); ok {
		return val
	}
	return ""
}
