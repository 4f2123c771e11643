package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"nenkin/internal/backend/local"
	"nenkin/internal/config"
	"nenkin/internal/exitcode"
	"nenkin/internal/service"
)

func init() {
	Register(&ConfigCmd{})
}

// ConfigCmd prints the effective configuration and checks it.
// Secret values are never printed, only whether they are set.
type ConfigCmd struct{}

func (c *ConfigCmd) Name() string       { return "config" }
func (c *ConfigCmd) Aliases() []string  { return nil }
func (c *ConfigCmd) Synopsis() string   { return "Show configuration" }
func (c *ConfigCmd) Usage() string      { return "nenkin config" }
func (c *ConfigCmd) NeedsBackend() bool { return false }

func (c *ConfigCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ConfigCmd) Run(ctx context.Context, cfg *config.Config, b service.Backend, args []string, out, errOut io.Writer) int {
	env := cfg.Env

	fmt.Fprintf(out, "config dir:   %s\n", cfg.Dir)
	fmt.Fprintf(out, "backend:      %s\n", env.Backend)
	switch env.Backend {
	case config.BackendLocal:
		fmt.Fprintf(out, "slot store:   %s\n", env.SlotStore)
		fmt.Fprintf(out, "slot key:     %s\n", env.SlotKey)
		if env.SlotStore == config.SlotFile {
			if p, err := local.NewFileSlot(cfg.Dir).Path(env.SlotKey); err == nil {
				fmt.Fprintf(out, "slot path:    %s\n", p)
			}
		} else {
			fmt.Fprintf(out, "redis url:    %s\n", setOrUnset(env.RedisURL != ""))
		}
	case config.BackendRemote:
		fmt.Fprintf(out, "collection:   %s\n", env.Collection)
		fmt.Fprintf(out, "order:        %s\n", env.RemoteOrder)
		fmt.Fprintf(out, "load timeout: %s\n", env.LoadTimeout)
		fmt.Fprintf(out, "credentials:  %s\n", setOrUnset(env.CredentialsFile != ""))
		if env.Firebase.EmulatorHost != "" {
			fmt.Fprintf(out, "emulator:     %s\n", env.Firebase.EmulatorHost)
		}
	}

	fmt.Fprintln(out, "remote settings:")
	for _, s := range cfg.RemoteSettings() {
		mark := "✗"
		if s.Present {
			mark = "✓"
		}
		fmt.Fprintf(out, "  %s %s\n", mark, s.Name)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}
	return exitcode.Success
}

func setOrUnset(set bool) string {
	if set {
		return "set"
	}
	return "unset"
}
