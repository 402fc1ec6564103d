package pager

import (
	"errors"
	"fmt"
)

// Common pager errors.
var (
	// ErrSourceUnavailable indicates the entity source failed or timed out.
	// Retryable: the session offset is left unchanged so a retry resumes
	// exactly where it left off.
	ErrSourceUnavailable = errors.New("entity source unavailable")

	// ErrInvalidCap indicates the configured byte cap cannot hold even the
	// reserved envelope header.
	ErrInvalidCap = errors.New("cap must exceed header reserve")

	// ErrNotListing indicates a navigation action that requires an active
	// listing was issued while the session was idle.
	ErrNotListing = errors.New("no active listing")
)

// FormatError reports that a single record could not be rendered. The page
// build skips the record and keeps going; the error is surfaced to the
// logging sink only, never to the end user.
type FormatError struct {
	RecordID int64
	Err      error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("format record %d: %v", e.RecordID, e.Err)
}

// Unwrap returns the underlying formatter error.
func (e *FormatError) Unwrap() error {
	return e.Err
}
