// Package auth implements stateless bearer-token authentication: HS256-signed
// JWTs carrying the username as subject, verified against a process-wide
// secret. Tokens are never stored server-side; validity is determined entirely
// by signature and expiry.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every token failure mode: malformed payload, bad
// signature, past expiry, or missing subject. Callers get a single uniform
// error so clients cannot distinguish tampering from expiry.
var ErrInvalidToken = errors.New("invalid token")

// DefaultTokenTTL matches the original service's 7-day access tokens.
const DefaultTokenTTL = 7 * 24 * time.Hour

// TokenService issues and validates signed bearer tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService. The secret must be non-empty; that
// is checked at config validation so a missing secret is fatal at startup,
// not per-request.
func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: secret, ttl: ttl}
}

// Issue mints a signed token with subject=username expiring after the
// configured TTL.
func (s *TokenService) Issue(username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies signature and expiry and returns the subject username.
// User existence is not checked here; that happens one layer up.
func (s *TokenService) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
