// Package common defines shared constants and sentinel errors used across
// the gallery server, its transports and the CLI client. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors. These are the only outcomes a transport maps to
	// a response; anything else is treated as ErrorInternal.
	ErrorInternal        = errors.New("internal error")
	ErrorUnauthorized    = errors.New("unauthorized")
	ErrorForbidden       = errors.New("forbidden")
	ErrorInvalidArgument = errors.New("invalid argument")

	// Login errors. Unknown account and wrong password share
	// ErrorInvalidCredentials.
	ErrorMissingCredentials = errors.New("missing credentials")
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// Token parsing errors. They never leave the auth package boundary
	// except collapsed into ErrorUnauthorized.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
