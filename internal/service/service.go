// Package service defines the backend-agnostic interfaces for checklist persistence.
package service

import (
	"context"

	"nenkin/internal/checklist"
)

// Backend defines the interface for checklist persistence.
// Commands and the interactive editor only talk to a Backend;
// they never import a storage SDK directly.
type Backend interface {
	// Name identifies the backend in diagnostics ("local" or "remote").
	Name() string

	// Load returns the checklist in its backend-defined order.
	// The returned slice is always usable: on degradation Load returns the
	// fallback items (seed or empty) together with a non-nil error wrapping
	// ErrParse, ErrLoadTimeout or ErrLoadFailed.
	Load(ctx context.Context) ([]checklist.Item, error)

	// Save persists answer and checked state of items.
	// On failure the error wraps ErrSaveFailed and the result reports
	// which items were persisted before the failure.
	Save(ctx context.Context, items []checklist.Item) (SaveResult, error)

	// Close releases the backend's client handle.
	Close() error
}

// Slot is a single string-keyed value store used by the local backend.
type Slot interface {
	// Get returns the value stored under key. found is false if the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set replaces the value stored under key in full.
	Set(ctx context.Context, key, value string) error
}

// DocumentStore is the remote key-value document capability.
// It never creates or deletes documents.
type DocumentStore interface {
	// ReadAll returns every document in collection.
	ReadAll(ctx context.Context, collection string) ([]Document, error)

	// Update sets exactly the given fields on an existing document.
	// Returns an error wrapping ErrNotFound if the document does not exist.
	Update(ctx context.Context, collection, id string, fields map[string]any) error
}
