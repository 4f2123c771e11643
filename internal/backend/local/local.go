// Package local implements service.Backend over a single string-keyed slot
// holding the whole checklist as a JSON snapshot.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"nenkin/internal/checklist"
	"nenkin/internal/logging"
	"nenkin/internal/service"
)

// State tracks the backend lifecycle: Uninitialized → Loaded → Saved.
type State int

const (
	Uninitialized State = iota
	Loaded
	Saved
)

func (s State) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Saved:
		return "saved"
	default:
		return "uninitialized"
	}
}

// Backend stores the checklist snapshot in a Slot.
type Backend struct {
	slot   service.Slot
	key    string
	seed   func() []checklist.Item
	log    *slog.Logger
	closer func() error
	state  State
}

// Option configures a Backend.
type Option func(*Backend)

// WithSeed replaces the default seed list.
func WithSeed(seed func() []checklist.Item) Option {
	return func(b *Backend) { b.seed = seed }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Backend) { b.log = l }
}

// WithCloser registers a function run by Close, typically the slot's client teardown.
func WithCloser(fn func() error) Option {
	return func(b *Backend) { b.closer = fn }
}

// New creates a local backend storing its snapshot under key in slot.
func New(slot service.Slot, key string, opts ...Option) *Backend {
	b := &Backend{
		slot: slot,
		key:  key,
		seed: checklist.Seed,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.log = logging.OrDiscard(b.log).With("backend", "local", "key", key)
	return b
}

// Name implements service.Backend.
func (b *Backend) Name() string { return "local" }

// State returns the lifecycle state.
func (b *Backend) State() State { return b.state }

// Load implements service.Backend.
// An absent or empty slot yields the seed list. A corrupt snapshot or a failed read
// also yields the seed list, together with an error describing why.
func (b *Backend) Load(ctx context.Context) ([]checklist.Item, error) {
	b.state = Loaded

	raw, found, err := b.slot.Get(ctx, b.key)
	if err != nil {
		b.log.Debug("slot read failed, using seed", "error", err)
		return b.seed(), fmt.Errorf("%w: read slot: %w", service.ErrLoadFailed, err)
	}
	if !found || raw == "" {
		b.log.Debug("slot empty, using seed")
		return b.seed(), nil
	}

	items, err := decodeSnapshot(raw)
	if err != nil {
		b.log.Debug("stored snapshot is corrupt, using seed", "error", err)
		return b.seed(), fmt.Errorf("%w: %w", service.ErrParse, err)
	}
	b.log.Debug("snapshot loaded", "items", len(items))
	return items, nil
}

func decodeSnapshot(raw string) ([]checklist.Item, error) {
	var items []checklist.Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if items == nil {
		return nil, fmt.Errorf("snapshot is not an array")
	}
	if err := checklist.Validate(items); err != nil {
		return nil, err
	}
	return items, nil
}

// Save implements service.Backend. The whole snapshot replaces the slot
// value in a single write.
func (b *Backend) Save(ctx context.Context, items []checklist.Item) (service.SaveResult, error) {
	ids := checklist.IDs(items)
	if items == nil {
		items = []checklist.Item{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return service.SaveResult{Remaining: ids}, &service.SaveError{
			Result: service.SaveResult{Remaining: ids},
			Err:    fmt.Errorf("json marshal: %w", err),
		}
	}
	if err := b.slot.Set(ctx, b.key, string(data)); err != nil {
		b.log.Debug("slot write failed", "error", err)
		res := service.SaveResult{Remaining: ids}
		return res, &service.SaveError{Result: res, Err: err}
	}

	b.state = Saved
	b.log.Debug("snapshot saved", "items", len(items))
	return service.SaveResult{Succeeded: ids}, nil
}

// Close implements service.Backend.
func (b *Backend) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer()
}
