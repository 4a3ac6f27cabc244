// Package common defines shared constants and sentinel errors used across
// the store, services, CLI and feed server. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors. Only point reads return ErrorNotFound; range
	// reads return empty slices.
	ErrorNotFound = errors.New("not found")

	// Input validation.
	ErrRequiredFieldsMissing = errors.New("required fields missing")

	// Registration / login.
	ErrUsernameTaken      = errors.New("username taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoActiveUser       = errors.New("no active user")

	// Ownership rules.
	ErrSeedReadOnly     = errors.New("seed content is read-only")
	ErrNotCommentAuthor = errors.New("comment belongs to another author")

	// Feed server tokens.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
