package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/raqa-app/auth-service/internal/domain"
)

const tokenTTL = 30 * time.Minute

// TokenIssuer signs and verifies HS256 bearer tokens. The clock is injected
// so expiry can be exercised in tests without sleeping.
type TokenIssuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewTokenIssuer(key []byte, now func() time.Time) *TokenIssuer {
	return &TokenIssuer{key: key, ttl: tokenTTL, now: now}
}

// Issue returns a signed JWT asserting subject until the TTL elapses.
func (i *TokenIssuer) Issue(subject string) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": i.now().Add(i.ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded subject.
// Expired, malformed and mis-signed tokens all collapse to ErrTokenInvalid
// so callers cannot tell them apart.
func (i *TokenIssuer) Verify(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.key, nil
	}, jwt.WithTimeFunc(i.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrTokenInvalid
	}
	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", domain.ErrTokenInvalid
	}
	return subject, nil
}
