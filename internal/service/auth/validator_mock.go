package auth

import "context"

// MockValidator is a configurable Validator implementation for tests.
type MockValidator struct {
	// Claims is returned by Validate when Err is nil.
	Claims *Claims

	// Err is returned by Validate when set.
	Err error

	// LastHeaderValue records the raw header value of the last call.
	LastHeaderValue string
}

// Ensure MockValidator implements the Validator interface.
var _ Validator = (*MockValidator)(nil)

// Validate implements Validator.
func (m *MockValidator) Validate(ctx context.Context, rawHeaderValue string) (*Claims, error) {
	m.LastHeaderValue = rawHeaderValue
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Claims, nil
}
