package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"nenkin/internal/config"
	"nenkin/internal/exitcode"
	"nenkin/internal/service"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd prints the checklist as indented JSON, in the local snapshot format.
type ExportCmd struct{}

func (c *ExportCmd) Name() string       { return "export" }
func (c *ExportCmd) Aliases() []string  { return nil }
func (c *ExportCmd) Synopsis() string   { return "Print the checklist as JSON" }
func (c *ExportCmd) Usage() string      { return "nenkin export" }
func (c *ExportCmd) NeedsBackend() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, b service.Backend, args []string, out, errOut io.Writer) int {
	items, code, ok := loadItems(ctx, b, errOut)
	if !ok {
		return code
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	fmt.Fprintf(out, "%s\n", data)
	return exitcode.Success
}
