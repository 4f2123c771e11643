package testutil

import (
	"context"
	"sync"

	"nenkin/internal/checklist"
	"nenkin/internal/service"
)

// FakeBackend is an in-memory implementation of service.Backend for command tests.
type FakeBackend struct {
	mu    sync.Mutex
	items []checklist.Item

	// Saves counts successful Save calls.
	Saves  int
	Closed bool

	// Error injection for testing. LoadErr is returned alongside the
	// current items (or LoadItems, when set) to mimic degraded loads.
	LoadErr   error
	LoadItems []checklist.Item
	SaveErr   error
	SaveRes   service.SaveResult
}

// NewFakeBackend creates a backend holding a copy of items.
func NewFakeBackend(items []checklist.Item) *FakeBackend {
	return &FakeBackend{items: clone(items)}
}

// Items returns a copy of the persisted items.
func (f *FakeBackend) Items() []checklist.Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	return clone(f.items)
}

// Name implements service.Backend.
func (f *FakeBackend) Name() string { return "fake" }

// Load implements service.Backend.
func (f *FakeBackend) Load(ctx context.Context) ([]checklist.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LoadErr != nil {
		if f.LoadItems != nil {
			return clone(f.LoadItems), f.LoadErr
		}
		return clone(f.items), f.LoadErr
	}
	return clone(f.items), nil
}

// Save implements service.Backend.
func (f *FakeBackend) Save(ctx context.Context, items []checklist.Item) (service.SaveResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SaveErr != nil {
		return f.SaveRes, &service.SaveError{Result: f.SaveRes, Err: f.SaveErr}
	}
	f.items = clone(items)
	f.Saves++
	return service.SaveResult{Succeeded: checklist.IDs(items)}, nil
}

// Close implements service.Backend.
func (f *FakeBackend) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

func clone(items []checklist.Item) []checklist.Item {
	if items == nil {
		return nil
	}
	out := make([]checklist.Item, len(items))
	copy(out, items)
	return out
}
