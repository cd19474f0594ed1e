package auth

import "context"

// Validator verifies bearer tokens presented on protected requests.
type Validator interface {
	// Validate checks the raw Authorization header value. The value must
	// carry a case-sensitive "Bearer " prefix followed by a token signed
	// by the configured key and not yet expired. Returns the decoded
	// claims on success, or ErrInvalidAuthentication on any failure.
	Validate(ctx context.Context, rawHeaderValue string) (*Claims, error)
}
