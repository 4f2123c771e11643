package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"nenkin/internal/checklist"
	"nenkin/internal/exitcode"
	"nenkin/internal/service"
)

// loadItems loads the checklist and reports degradation on errOut.
// A corrupt local snapshot is a warning and the fallback items are used.
// Any other load error stops the command; ok is false and code is the exit code.
func loadItems(ctx context.Context, b service.Backend, errOut io.Writer) (items []checklist.Item, code int, ok bool) {
	items, err := b.Load(ctx)
	if err == nil {
		return items, exitcode.Success, true
	}
	if errors.Is(err, service.ErrParse) {
		fmt.Fprintf(errOut, "warning: %v (showing the default checklist)\n", err)
		return items, exitcode.Success, true
	}
	fmt.Fprintf(errOut, "error: %v\n", err)
	return nil, exitcode.BackendError, false
}

// saveItems saves items and prints the partial-completion boundary on failure.
func saveItems(ctx context.Context, b service.Backend, items []checklist.Item, errOut io.Writer) int {
	if len(items) == 0 {
		fmt.Fprintln(errOut, "error: refusing to save an empty checklist")
		return exitcode.BackendError
	}
	res, err := b.Save(ctx, items)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		fmt.Fprintf(errOut, "  %s\n", res)
		return exitcode.BackendError
	}
	return exitcode.Success
}
