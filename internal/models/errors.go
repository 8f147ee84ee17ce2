package models

import "errors"

// Error taxonomy for report requests. The first three are validated
// before any fetch; ErrUpstreamUnavailable wraps a failed store fetch
// and is propagated without retry.
var (
	ErrNotFound            = errors.New("scope not found")
	ErrInvalidWindow       = errors.New("invalid window")
	ErrInvalidParameter    = errors.New("invalid parameter")
	ErrUpstreamUnavailable = errors.New("session store unavailable")
)
