// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Source file errors.
	ErrSourceUnreadable = errors.New("source file unreadable")
	ErrEmptySource      = errors.New("source file contains no rows")

	// Processing errors.
	ErrProcessingFailed = errors.New("processing failed")
	ErrRowNotFound      = errors.New("row not found")

	// Deny-list errors.
	ErrDuplicateEntries = errors.New("list contains duplicate entries")
	ErrImportFailed     = errors.New("import failed")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
