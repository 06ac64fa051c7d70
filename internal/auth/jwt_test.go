package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestParseToken_RoundTrip(t *testing.T) {
	in := Session{ID: "u-1", Email: "ops@example.com", Name: "Ops", Role: "admin"}
	token, err := IssueToken(in, secret, time.Hour)
	require.NoError(t, err)

	out, err := ParseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestParseToken_Rejects(t *testing.T) {
	_, err := ParseToken("", secret)
	assert.ErrorIs(t, err, ErrMissingToken)

	token, err := IssueToken(Session{ID: "u-1", Role: "admin"}, "other", time.Hour)
	require.NoError(t, err)
	_, err = ParseToken(token, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := IssueToken(Session{ID: "u-1", Role: "admin"}, secret, -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)

	customer, err := IssueToken(Session{ID: "u-2", Role: "customer"}, secret, time.Hour)
	require.NoError(t, err)
	_, err = ParseToken(customer, secret)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	_, ok := SessionFrom(ctx)
	assert.False(t, ok)
	assert.Empty(t, BackendToken(ctx))

	ctx = WithSession(ctx, Session{ID: "u-1"})
	ctx = WithBackendToken(ctx, "tok")
	s, ok := SessionFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, "u-1", s.ID)
	assert.Equal(t, "tok", BackendToken(ctx))
}
