// Package common defines shared constants and sentinel errors used across
// client and server layers of Passport. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors.
	ErrorRegistrationFields = errors.New("username, email and password are required")
	ErrorLoginFields        = errors.New("email and password are required")
	ErrorInvalidEmail       = errors.New("invalid email format")
	ErrorPasswordTooShort   = errors.New("password must be at least 6 characters")

	// Credential errors. Deliberately a single value for both "no such
	// user" and "wrong password" so callers cannot enumerate accounts.
	ErrorInvalidCredentials = errors.New("invalid email or password")

	// Token lifecycle errors. Distinguished for logs and tests; the HTTP
	// layer collapses them into a single 401.
	ErrNoToken      = errors.New("no token provided")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
