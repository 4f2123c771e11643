package testutil

import (
	"context"
	"sync"
)

// MemSlot is an in-memory implementation of service.Slot.
type MemSlot struct {
	mu     sync.Mutex
	values map[string]string

	// Writes counts successful Set calls.
	Writes int

	// Error injection for testing
	GetErr error
	SetErr error
}

// NewMemSlot creates an empty slot store.
func NewMemSlot() *MemSlot {
	return &MemSlot{values: make(map[string]string)}
}

// Seed stores a raw value directly.
func (s *MemSlot) Seed(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Value returns the raw stored value.
func (s *MemSlot) Value(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Get implements service.Slot.
func (s *MemSlot) Get(ctx context.Context, key string) (string, bool, error) {
	if s.GetErr != nil {
		return "", false, s.GetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set implements service.Slot.
func (s *MemSlot) Set(ctx context.Context, key, value string) error {
	if s.SetErr != nil {
		return s.SetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.Writes++
	return nil
}
