// Package token issues and verifies the signed, time-limited bearer tokens
// handed out at login. Tokens are HS256 JWTs; the server keeps no session state.
package token

import (
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"strings"
	"time"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrExpired      = errors.New("token expired")
	ErrInvalid      = errors.New("invalid token")
)

type Service struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now for both issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(secret string, ttl time.Duration, issuer string, opts ...Option) (*Service, error) {
	if secret == "" {
		return nil, errors.New("token: empty signing secret")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token: ttl must be positive, got %s", ttl)
	}

	s := &Service{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue returns a token for subject valid for the configured TTL.
func (s *Service) Issue(subject string) (string, error) {
	const op = "lib.token.Issue"

	if strings.TrimSpace(subject) == "" {
		return "", fmt.Errorf("%s: empty subject", op)
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// Verify returns the subject embedded in tokenString.
// The signature is checked before expiry: a tampered token is always
// ErrInvalid, a well-signed token past its expiry is ErrExpired.
func (s *Service) Verify(tokenString string) (string, error) {
	if strings.TrimSpace(tokenString) == "" {
		return "", ErrMissingToken
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(s.issuer))
	}

	var claims jwt.RegisteredClaims

	parsed, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, parserOpts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpired
		}

		return "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalid
	}

	return claims.Subject, nil
}

// FromHeader extracts the token from an "Authorization: Bearer <token>" value.
func FromHeader(authHeader string) (string, error) {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrMissingToken
	}

	return parts[1], nil
}
