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
	Register(&StatusCmd{})
}

// StatusCmd implements the status command.
type StatusCmd struct{}

func (c *StatusCmd) Name() string       { return "status" }
func (c *StatusCmd) Aliases() []string  { return nil }
func (c *StatusCmd) Synopsis() string   { return "Show progress per section" }
func (c *StatusCmd) Usage() string      { return "nenkin status" }
func (c *StatusCmd) NeedsBackend() bool { return true }

func (c *StatusCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatusCmd) Run(ctx context.Context, cfg *config.Config, b service.Backend, args []string, out, errOut io.Writer) int {
	items, code, ok := loadItems(ctx, b, errOut)
	if !ok {
		return code
	}
	output.FormatStatus(out, items)
	return exitcode.Success
}
