package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"nenkin/internal/config"
	"nenkin/internal/exitcode"
	"nenkin/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "nenkin help" }
func (c *HelpCmd) NeedsBackend() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, b service.Backend, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  nenkin                                    Show the checklist
  nenkin list [common flags] [--pending]    Show the checklist (pending items only)
  nenkin show [common flags] <ref>          Show one item
  nenkin check [common flags] <ref>         Toggle an item's checked state
  nenkin answer [common flags] [--clear] <ref> <text...>
  nenkin status [common flags]              Show progress per section
  nenkin export [common flags]              Print the checklist as JSON
  nenkin edit [common flags]                Interactive editor
  nenkin config [common flags]              Show configuration
  nenkin help
  nenkin version

<ref> is an item id (hospital-2) or the number shown by list.

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Environment:
  NENKIN_BACKEND           local (default) or remote
  NENKIN_SLOT_STORE        file (default) or redis
  NENKIN_REDIS_URL         Redis URL for the redis slot store
  NENKIN_COLLECTION        Remote collection (default questions)
  NENKIN_REMOTE_ORDER      id (default) or seed
  FIREBASE_PROJECT_ID      Remote project
  FIREBASE_API_KEY         Remote API key
`
