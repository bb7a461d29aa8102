// Package common contains shared constants and sentinel errors used across
// TaskVault components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors.
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("user with this email already exists")

	// Federation errors (OAuth callback handling).
	ErrFederationFailed = errors.New("federation failed")
	ErrStateExpired     = errors.New("state expired")

	// Tag/task-specific errors.
	ErrTagNameExists = errors.New("tag with this name already exists")
	ErrTagNotOwned   = errors.New("one or more tags do not exist")
)
