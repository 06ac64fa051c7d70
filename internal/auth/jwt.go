package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
	ErrForbidden    = errors.New("admin role required")
	ErrRevokedToken = errors.New("token was signed out")
)

// AdminRoles are the roles allowed into the back office.
var AdminRoles = map[string]bool{"admin": true, "staff": true, "superadmin": true}

type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// ParseToken validates an HS256 admin token and returns its session.
func ParseToken(tokenString, secret string) (Session, error) {
	if tokenString == "" {
		return Session{}, ErrMissingToken
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return Session{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	if !AdminRoles[claims.Role] {
		return Session{}, ErrForbidden
	}
	return Session{ID: claims.Subject, Email: claims.Email, Name: claims.Name, Role: claims.Role}, nil
}

// TokenDigest identifies a token without keeping the token itself.
func TokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// TokenExpiry reads the exp claim of a token that was already verified. It
// is zero when the token has none.
func TokenExpiry(token string) time.Time {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil || claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// IssueToken signs a token for s. Used by dev login and tests.
func IssueToken(s Session, secret string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Email: s.Email,
		Name:  s.Name,
		Role:  s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
