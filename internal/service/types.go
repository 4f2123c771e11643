// Package service defines the backend-agnostic interfaces for checklist persistence.
package service

import (
	"errors"
	"fmt"
	"strings"
)

// Field names written by a save.
const (
	FieldAnswer  = "answer"
	FieldChecked = "checked"
)

// Document is a remote document: its key and decoded top-level fields.
// Field values are string, bool, int64, float64 or nil.
type Document struct {
	ID     string
	Fields map[string]any
}

// SaveResult describes how far a save got.
// Succeeded lists ids persisted in order, FailedID is the id whose write
// failed (empty when the whole write failed at once or nothing failed),
// Remaining lists ids that were never attempted.
type SaveResult struct {
	Succeeded []string
	FailedID  string
	Remaining []string
}

// Complete reports whether nothing failed and nothing remains.
func (r SaveResult) Complete() bool {
	return r.FailedID == "" && len(r.Remaining) == 0
}

// String renders the partial-completion boundary for error output.
func (r SaveResult) String() string {
	parts := []string{"saved: " + joinOrNone(r.Succeeded)}
	if r.FailedID != "" {
		parts = append(parts, "failed: "+r.FailedID)
	}
	parts = append(parts, "not attempted: "+joinOrNone(r.Remaining))
	return strings.Join(parts, "; ")
}

func joinOrNone(ids []string) string {
	if len(ids) == 0 {
		return "(none)"
	}
	return strings.Join(ids, ", ")
}

// Error kinds. Backends wrap one of these so callers can use errors.Is.
var (
	// ErrParse means the stored local snapshot could not be decoded.
	ErrParse = errors.New("stored checklist is corrupt")

	// ErrLoadTimeout means the remote read exceeded its bound.
	ErrLoadTimeout = errors.New("load timed out")

	// ErrLoadFailed means the read was rejected for any other reason.
	ErrLoadFailed = errors.New("load failed")

	// ErrSaveFailed means a local or remote write was rejected.
	ErrSaveFailed = errors.New("save failed")

	// ErrNotFound means a remote document does not exist.
	ErrNotFound = errors.New("not found")
)

// SaveError is returned by Backend.Save on failure.
// It wraps both ErrSaveFailed and the underlying cause.
type SaveError struct {
	Result SaveResult
	Err    error
}

func (e *SaveError) Error() string {
	if e.Result.FailedID != "" {
		return fmt.Sprintf("save failed at %s: %v", e.Result.FailedID, e.Err)
	}
	return fmt.Sprintf("save failed: %v", e.Err)
}

func (e *SaveError) Unwrap() []error { return []error{ErrSaveFailed, e.Err} }
