// Package checklist defines the checklist item model and the pure operations
// over ordered item sequences.
package checklist

import (
	"errors"
	"fmt"
)

// Item is a single question/answer record of the checklist.
// ID, Section, Title and Question are fixed once the item exists;
// only Answer and Checked change.
type Item struct {
	ID       string `json:"id"`
	Section  string `json:"section"`
	Title    string `json:"title"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Checked  bool   `json:"checked"`
}

var (
	// ErrEmptyID is returned by Validate for an item without an id.
	ErrEmptyID = errors.New("item id is empty")

	// ErrDuplicateID is returned by Validate when two items share an id.
	ErrDuplicateID = errors.New("duplicate item id")
)

// Find returns the item with the given id.
func Find(items []Item, id string) (Item, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Toggle returns a copy of items with Checked flipped on the item matching id.
// The input slice is not modified. The bool reports whether id was found.
func Toggle(items []Item, id string) ([]Item, bool) {
	return update(items, id, func(it *Item) { it.Checked = !it.Checked })
}

// SetAnswer returns a copy of items with Answer replaced on the item matching id.
// The input slice is not modified. The bool reports whether id was found.
func SetAnswer(items []Item, id, answer string) ([]Item, bool) {
	return update(items, id, func(it *Item) { it.Answer = answer })
}

func update(items []Item, id string, fn func(*Item)) ([]Item, bool) {
	out := make([]Item, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ID == id {
			fn(&out[i])
			return out, true
		}
	}
	return out, false
}

// Validate checks that every item has a non-empty, unique id.
func Validate(items []Item) error {
	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		if it.ID == "" {
			return fmt.Errorf("item %d: %w", i, ErrEmptyID)
		}
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateID, it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return nil
}

// IDs returns the ids of items in order.
func IDs(items []Item) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

// Progress counts checked items.
func Progress(items []Item) (done, total int) {
	for _, it := range items {
		if it.Checked {
			done++
		}
	}
	return done, len(items)
}
