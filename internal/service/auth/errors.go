package auth

import "errors"

// ErrInvalidAuthentication is the single externally visible
// authentication failure. A missing header, a malformed header, a bad
// signature, a wrong algorithm and an expired token all collapse into
// this one error so callers cannot distinguish root causes. The
// distinguishing cause is logged internally, never returned.
var ErrInvalidAuthentication = errors.New("invalid authentication")
