// Package common defines shared constants and sentinel errors used across
// the Malsami server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound         = errors.New("not found")
	ErrDuplicateStudentID = errors.New("duplicate student id")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Sign-in flow errors.
	ErrVerificationFailed = errors.New("portal verification failed")
	ErrAccountResolution  = errors.New("member resolution failed")
	ErrSessionPersist     = errors.New("session persist failed")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
