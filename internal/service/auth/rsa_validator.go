package auth

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mochi-hq/mochi-api/internal/platform/logger"
)

// bearerPrefix is the required, case-sensitive authorization scheme.
const bearerPrefix = "Bearer "

// rsaValidator verifies RS256-signed tokens against an RSA public key.
// The key is parsed once at construction and shared read-only by every
// concurrent validation; the validator holds no per-request state and
// performs no I/O.
type rsaValidator struct {
	publicKey *rsa.PublicKey
	parser    *jwt.Parser
	timeFunc  func() time.Time // Injectable for testing
}

// Ensure rsaValidator implements the Validator interface.
var _ Validator = (*rsaValidator)(nil)

// NewRSAValidator creates a Validator from a PKCS#1 or PKCS#8 PEM-encoded
// RSA public key. The signing algorithm is pinned to RS256; the token's
// own algorithm header is never trusted.
func NewRSAValidator(publicKeyPEM string) (Validator, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSA public key from PEM: %w", err)
	}

	v := &rsaValidator{
		publicKey: key,
		timeFunc:  time.Now,
	}
	v.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time {
			return v.timeFunc().UTC()
		}),
	)
	return v, nil
}

// Validate implements Validator. Every failure path returns the same
// ErrInvalidAuthentication; the distinguishing cause is logged at debug
// level only.
func (v *rsaValidator) Validate(ctx context.Context, rawHeaderValue string) (*Claims, error) {
	log := logger.FromContext(ctx)

	if !strings.HasPrefix(rawHeaderValue, bearerPrefix) {
		log.Debug("token validation failed: missing or malformed bearer scheme")
		return nil, ErrInvalidAuthentication
	}
	tokenString := strings.TrimPrefix(rawHeaderValue, bearerPrefix)

	claims := &Claims{}
	token, err := v.parser.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return v.publicKey, nil
		},
	)
	if err != nil {
		// All parse outcomes map to the same external error; only the
		// log line tells expiry apart from a bad signature.
		log.Debug("token validation failed", "cause", validationCause(err))
		return nil, ErrInvalidAuthentication
	}
	if !token.Valid {
		log.Debug("token validation failed", "cause", "token not valid")
		return nil, ErrInvalidAuthentication
	}

	// Expiry is a second explicit gate, anchored to UTC epoch seconds.
	// The parser already enforces "exp", but a valid signature must
	// never outweigh freshness.
	if now := v.timeFunc().UTC(); now.Unix() > claims.ExpiresAt {
		log.Debug("token validation failed", "cause", "token expired")
		return nil, ErrInvalidAuthentication
	}

	return claims, nil
}

// validationCause names the internal failure for diagnostics. The name
// never reaches the response body.
func validationCause(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "token expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "invalid signature"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed token"
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return "unverifiable token"
	default:
		return "validation error"
	}
}
