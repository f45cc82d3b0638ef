// Package common defines shared constants and sentinel errors used across
// the service layers of Inkwell. Callers should use errors.Is to match these
// values; services may wrap them with additional detail via fmt.Errorf.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Input errors (malformed or out-of-range request data).
	ErrValidation = errors.New("validation error")

	// Auth errors.
	ErrUnauthorized = errors.New("unauthorized")

	// State errors.
	ErrConflict      = errors.New("conflict")
	ErrNotConfigured = errors.New("not configured")

	// Generic/internal flow control.
	ErrInternal = errors.New("internal error")

	// Token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
