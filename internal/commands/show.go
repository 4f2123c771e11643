package commands

import (
	"context"
	"flag"
	"io"

	"nenkin/internal/config"
	"nenkin/internal/exitcode"
	"nenkin/internal/output"
	"nenkin/internal/service"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd implements the show command.
type ShowCmd struct{}

func (c *ShowCmd) Name() string       { return "show" }
func (c *ShowCmd) Aliases() []string  { return nil }
func (c *ShowCmd) Synopsis() string   { return "Show one item" }
func (c *ShowCmd) Usage() string      { return "nenkin show <ref>" }
func (c *ShowCmd) NeedsBackend() bool { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, b service.Backend, args []string, out, errOut io.Writer) int {
	items, code, ok := loadItems(ctx, b, errOut)
	if !ok {
		return code
	}

	it, num, ok := resolveRef(args, items, errOut)
	if !ok {
		return exitcode.UserError
	}

	output.FormatDetail(out, num, it)
	return exitcode.Success
}
