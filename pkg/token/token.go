// Package token issues and verifies the bearer tokens that bind a request
// to a user identity.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformedToken is returned when the input cannot be parsed as a
	// token at all.
	ErrMalformedToken = errors.New("malformed token")
	// ErrExpiredToken is returned when the token's validity window has
	// passed.
	ErrExpiredToken = errors.New("expired token")
	// ErrInvalidToken is returned when the signature does not verify.
	ErrInvalidToken = errors.New("invalid token")
)

// Service signs and verifies JWTs with a shared HMAC secret. The secret
// and TTL are fixed at construction and safe to share across goroutines.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured validity window for issued tokens.
func (s *Service) TTL() time.Duration { return s.ttl }

// Issue produces a signed token whose subject is subjectEmail, valid from
// now until now+TTL. An empty subject still yields a structurally valid
// token with an empty subject claim.
func (s *Service) Issue(subjectEmail string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subjectEmail,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// VerifyAndExtractSubject validates the token and returns its subject
// claim. Failures are reported as ErrMalformedToken, ErrExpiredToken or
// ErrInvalidToken.
func (s *Service) VerifyAndExtractSubject(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", ErrMalformedToken
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrExpiredToken
		default:
			return "", ErrInvalidToken
		}
	}
	if !tkn.Valid {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
