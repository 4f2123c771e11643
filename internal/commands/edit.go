package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"nenkin/internal/checklist"
	"nenkin/internal/config"
	"nenkin/internal/exitcode"
	"nenkin/internal/service"
	"nenkin/internal/tui"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd starts the interactive editor.
// Load degradation does not stop it; the editor shows the error instead.
type EditCmd struct {
	run func(ctx context.Context, b service.Backend, items []checklist.Item, loadErr error) error
}

// SetRunner replaces the editor entry point (for testing).
func (c *EditCmd) SetRunner(run func(ctx context.Context, b service.Backend, items []checklist.Item, loadErr error) error) {
	c.run = run
}

func (c *EditCmd) Name() string       { return "edit" }
func (c *EditCmd) Aliases() []string  { return []string{"tui"} }
func (c *EditCmd) Synopsis() string   { return "Interactive editor" }
func (c *EditCmd) Usage() string      { return "nenkin edit" }
func (c *EditCmd) NeedsBackend() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, b service.Backend, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	items, loadErr := b.Load(ctx)
	if items == nil {
		items = []checklist.Item{}
	}

	run := c.run
	if run == nil {
		run = func(ctx context.Context, b service.Backend, items []checklist.Item, loadErr error) error {
			return tui.Run(ctx, b, items, loadErr)
		}
	}
	restore := detachLog(cfg)
	err := run(ctx, b, items, loadErr)
	restore()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	if loadErr != nil && !errors.Is(loadErr, service.ErrParse) {
		return exitcode.BackendError
	}
	return exitcode.Success
}

// detachLog keeps log output off the terminal while the editor owns it.
// With --debug it goes to LogFile in the config directory, otherwise it is dropped.
func detachLog(cfg *config.Config) (restore func()) {
	if cfg.Log == nil {
		return func() {}
	}
	if cfg.Debug && cfg.EnsureDir() == nil {
		f, err := tea.LogToFile(filepath.Join(cfg.Dir, config.LogFile), config.AppName)
		if err == nil {
			undo := cfg.Log.Redirect(f)
			return func() {
				undo()
				log.SetOutput(os.Stderr)
				f.Close()
			}
		}
	}
	return cfg.Log.Redirect(io.Discard)
}
