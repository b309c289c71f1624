package common

import "errors"

// Auth errors (missing, invalid or malformed token). Callers should use
// errors.Is to match them.
var (
	ErrNoToken      = errors.New("no access token")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
