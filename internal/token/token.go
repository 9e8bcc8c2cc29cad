// Package token issues and verifies the stateless bearer tokens that prove a
// prior successful login. A token is a compact HS256 JWT carrying the account
// email as subject plus issued-at and expiry claims; validity is decided by
// signature and expiry alone, there is no server-side token state.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformed is returned when the input does not parse as a token at
	// all, including empty input.
	ErrMalformed = errors.New("malformed token")
	// ErrBadSignature is returned when the token parses but its signature
	// does not verify against the server secret.
	ErrBadSignature = errors.New("invalid token signature")
	// ErrExpired is returned for a correctly signed token whose expiry has
	// passed. A token checked exactly at its expiry instant is expired.
	ErrExpired = errors.New("token expired")
)

// Config holds the process-wide signing secret and token lifetime. Both are
// fixed at construction and read on every call.
type Config struct {
	Secret []byte
	TTL    time.Duration
}

// Codec signs and verifies tokens. It is stateless and safe for concurrent
// use.
type Codec struct {
	config Config
	now    func() time.Time
}

// NewCodec validates the configuration and returns a Codec.
func NewCodec(cfg Config) (*Codec, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token secret is required")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("invalid token TTL")
	}
	return &Codec{config: cfg, now: time.Now}, nil
}

// Issue creates a signed token for subject with issued-at now and expiry
// now plus the configured lifetime.
func (c *Codec) Issue(subject string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.config.TTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.config.Secret)
}

// Verify checks tokenStr and returns its subject. Failures are reported as
// ErrMalformed, ErrBadSignature, or ErrExpired; the signature gate runs
// before the expiry gate, so an expired-but-authentic token is distinguished
// from a forged one.
func (c *Codec) Verify(tokenStr string) (string, error) {
	if tokenStr == "" {
		return "", ErrMalformed
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)

	claims := &jwt.RegisteredClaims{}
	_, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return c.config.Secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrBadSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrExpired
		default:
			return "", ErrMalformed
		}
	}

	if claims.Subject == "" {
		return "", ErrMalformed
	}
	return claims.Subject, nil
}
