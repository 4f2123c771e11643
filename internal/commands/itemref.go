package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"nenkin/internal/checklist"
)

// ItemRef represents a parsed item reference.
type ItemRef struct {
	Num int    // 1-based display number, 0 if ID is set
	ID  string // item id, empty if Num is set
}

// ErrItemRefRequired indicates no item reference was provided.
var ErrItemRefRequired = errors.New("item reference required")

// ParseItemRef parses an item reference from the first arg.
//
// Parsing rules:
// 1. All digits → display number (as printed by list)
// 2. Otherwise, a token without whitespace → item id (hospital-2)
func ParseItemRef(args []string) (ItemRef, error) {
	if len(args) == 0 {
		return ItemRef{}, ErrItemRefRequired
	}

	ref := args[0]
	if isAllDigits(ref) {
		num, err := strconv.Atoi(ref)
		if err != nil {
			return ItemRef{}, fmt.Errorf("invalid item reference: %s", ref)
		}
		return ItemRef{Num: num}, nil
	}

	if ref == "" || strings.IndexFunc(ref, unicode.IsSpace) >= 0 {
		return ItemRef{}, fmt.Errorf("invalid item reference: %q", ref)
	}
	return ItemRef{ID: ref}, nil
}

// Resolve finds the referenced item and returns it with its display number.
func (r ItemRef) Resolve(items []checklist.Item) (checklist.Item, int, error) {
	ordered := checklist.DisplayOrder(items)
	if r.ID == "" {
		if r.Num < 1 || r.Num > len(ordered) {
			return checklist.Item{}, 0, fmt.Errorf("item number out of range: %d", r.Num)
		}
		return ordered[r.Num-1], r.Num, nil
	}
	for i, it := range ordered {
		if it.ID == r.ID {
			return it, i + 1, nil
		}
	}
	return checklist.Item{}, 0, fmt.Errorf("item not found: %s", r.ID)
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// resolveRef parses args[0] and resolves it against items, reporting
// errors on errOut.
func resolveRef(args []string, items []checklist.Item, errOut io.Writer) (checklist.Item, int, bool) {
	ref, err := ParseItemRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return checklist.Item{}, 0, false
	}
	it, num, err := ref.Resolve(items)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return checklist.Item{}, 0, false
	}
	return it, num, true
}
