package errors

import "errors"

var (
	// ErrMissingCredential means no Authorization header was presented on a
	// protected route. Mapped to the same 401 body as ErrAuthenticationFailed
	// so callers cannot tell the cases apart.
	ErrMissingCredential = errors.New("missing credential")
	// ErrAuthenticationFailed covers bad signature, issuer mismatch, expiry
	// and unknown subject. The cause is never exposed.
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbidden            = errors.New("forbidden")
	ErrNotFound             = errors.New("resource not found")
)
