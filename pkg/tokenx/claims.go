// Package tokenx reads and mints the bearer tokens exchanged with the
// Dental Recruit API.
//
// The client never trusts a token's claims for authorization decisions;
// Inspect exists for display (who, which role, when it expires). Sign and
// Verify are used by the in-memory test backend.
package tokenx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the lifetime of tokens minted by Sign callers that do not
// choose their own.
const DefaultTTL = 24 * time.Hour

var (
	ErrMalformed  = errors.New("tokenx: malformed token")
	ErrInvalidSig = errors.New("tokenx: invalid signature")
	ErrExpired    = errors.New("tokenx: token expired")
)

// Claims are the fields the API puts in its bearer tokens.
type Claims struct {
	jwt.RegisteredClaims

	Role  string `json:"role,omitempty"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// NewClaims builds claims for subject valid for ttl from now.
func NewClaims(subject, role, email, name string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role:  role,
		Email: email,
		Name:  name,
	}
}

// ExpiresIn returns the time left before expiry. ok is false when the token
// carries no exp claim.
func (c Claims) ExpiresIn(now time.Time) (left time.Duration, ok bool) {
	if c.ExpiresAt == nil {
		return 0, false
	}
	return c.ExpiresAt.Sub(now), true
}

// Expired reports whether exp is in the past.
func (c Claims) Expired(now time.Time) bool {
	left, ok := c.ExpiresIn(now)
	return ok && left <= 0
}

// Sign mints an HS256 token.
func Sign(secret []byte, c Claims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	s, err := tok.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("tokenx: sign: %w", err)
	}
	return s, nil
}

// Verify checks an HS256 signature and expiry and returns the claims.
func Verify(secret []byte, raw string) (Claims, error) {
	var c Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return secret, nil
	})
	switch {
	case err == nil:
		return c, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return Claims{}, ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return Claims{}, ErrInvalidSig
	default:
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}

// Inspect decodes claims without verifying the signature.
func Inspect(raw string) (Claims, error) {
	var c Claims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &c); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return c, nil
}
