package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"nenkin/internal/config"
	"nenkin/internal/exitcode"
	"nenkin/internal/output"
	"nenkin/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `nenkin` (no args) and `nenkin list`.
type ListCmd struct {
	pending bool
}

// SetPending sets the pending filter (for testing).
func (c *ListCmd) SetPending(pending bool) {
	c.pending = pending
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "Show the checklist" }
func (c *ListCmd) Usage() string      { return "nenkin list [--pending]" }
func (c *ListCmd) NeedsBackend() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.pending, "pending", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, b service.Backend, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	items, code, ok := loadItems(ctx, b, errOut)
	if !ok {
		return code
	}

	output.FormatChecklist(out, items, c.pending)
	return exitcode.Success
}
