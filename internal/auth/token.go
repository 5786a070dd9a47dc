// Package auth issues and verifies the signed session tokens that identify users.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is the lifetime of a session token.
const DefaultTTL = 15 * time.Minute

var (
	// ErrInvalidToken is returned for any token that cannot be trusted.
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingSecret is returned when a service is built without a signing key.
	ErrMissingSecret = errors.New("token secret is required")
)

// Identity is the authenticated subject carried by a verified token.
type Identity struct {
	UserID uint
}

// Claims is the token payload. ID mirrors the subject so clients can read it directly.
type Claims struct {
	ID uint `json:"id"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies session tokens with a single shared secret.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// Option customizes a TokenService.
type Option func(*TokenService)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(s *TokenService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithIssuer sets the iss claim written and required on verify.
func WithIssuer(issuer string) Option {
	return func(s *TokenService) {
		s.issuer = issuer
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *TokenService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewTokenService returns a TokenService signing with secret.
func NewTokenService(secret string, opts ...Option) (*TokenService, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	s := &TokenService{
		secret: []byte(secret),
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue creates a signed token for userID that expires after the configured TTL.
func (s *TokenService) Issue(userID uint) (string, error) {
	if userID == 0 {
		return "", errors.New("user id is required")
	}
	now := s.now()
	claims := Claims{
		ID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry and returns the embedded identity.
// Every failure wraps ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	if claims.ID == 0 {
		return Identity{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	if claims.Subject != "" && claims.Subject != strconv.FormatUint(uint64(claims.ID), 10) {
		return Identity{}, fmt.Errorf("%w: subject mismatch", ErrInvalidToken)
	}

	return Identity{UserID: claims.ID}, nil
}
