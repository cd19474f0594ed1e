package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mochi-hq/mochi-api/internal/domain"
)

// Claims is the decoded identity payload carried by a validated token.
// Timestamps are UTC seconds since epoch. Claims are immutable once
// decoded, owned by the request scope, and never persisted.
type Claims struct {
	// Issuer identifies the token issuer ("iss").
	Issuer string `json:"iss"`

	// Subject is the unique identifier of the authenticated user ("sub").
	Subject uuid.UUID `json:"sub"`

	// ExpiresAt is the expiry instant as UTC epoch seconds ("exp").
	ExpiresAt int64 `json:"exp"`

	// IssuedAt is the issue instant as UTC epoch seconds ("iat").
	IssuedAt int64 `json:"iat"`

	// SessionID identifies the session the token belongs to ("sid").
	SessionID uuid.UUID `json:"sid"`

	// PreferredUsername is the display name of the user.
	PreferredUsername string `json:"preferred_username"`

	// Email is the user's email address.
	Email string `json:"email"`
}

// Ensure Claims satisfies the jwt.Claims interface so the parser can
// populate and time-validate it.
var _ jwt.Claims = (*Claims)(nil)

// GetExpirationTime implements jwt.Claims.
func (c *Claims) GetExpirationTime() (*jwt.NumericDate, error) {
	if c.ExpiresAt == 0 {
		return nil, nil
	}
	return jwt.NewNumericDate(time.Unix(c.ExpiresAt, 0).UTC()), nil
}

// GetIssuedAt implements jwt.Claims.
func (c *Claims) GetIssuedAt() (*jwt.NumericDate, error) {
	if c.IssuedAt == 0 {
		return nil, nil
	}
	return jwt.NewNumericDate(time.Unix(c.IssuedAt, 0).UTC()), nil
}

// GetNotBefore implements jwt.Claims. The token format carries no "nbf".
func (c *Claims) GetNotBefore() (*jwt.NumericDate, error) {
	return nil, nil
}

// GetIssuer implements jwt.Claims.
func (c *Claims) GetIssuer() (string, error) {
	return c.Issuer, nil
}

// GetSubject implements jwt.Claims.
func (c *Claims) GetSubject() (string, error) {
	return c.Subject.String(), nil
}

// GetAudience implements jwt.Claims. The token format carries no "aud".
func (c *Claims) GetAudience() (jwt.ClaimStrings, error) {
	return nil, nil
}

// User converts the claims into the in-process identity handed to
// downstream handlers.
func (c *Claims) User() domain.User {
	return domain.User{
		ID:    c.Subject,
		Name:  c.PreferredUsername,
		Email: c.Email,
	}
}
