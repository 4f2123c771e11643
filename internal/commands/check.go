package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"nenkin/internal/checklist"
	"nenkin/internal/config"
	"nenkin/internal/exitcode"
	"nenkin/internal/service"
)

func init() {
	Register(&CheckCmd{})
}

// CheckCmd implements the check command. It toggles the checked flag.
type CheckCmd struct{}

func (c *CheckCmd) Name() string       { return "check" }
func (c *CheckCmd) Aliases() []string  { return []string{"toggle"} }
func (c *CheckCmd) Synopsis() string   { return "Toggle an item's checked state" }
func (c *CheckCmd) Usage() string      { return "nenkin check <ref>" }
func (c *CheckCmd) NeedsBackend() bool { return true }

func (c *CheckCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CheckCmd) Run(ctx context.Context, cfg *config.Config, b service.Backend, args []string, out, errOut io.Writer) int {
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}

	items, code, ok := loadItems(ctx, b, errOut)
	if !ok {
		return code
	}

	it, _, ok := resolveRef(args, items, errOut)
	if !ok {
		return exitcode.UserError
	}

	items, _ = checklist.Toggle(items, it.ID)
	if code := saveItems(ctx, b, items, errOut); code != exitcode.Success {
		return code
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
