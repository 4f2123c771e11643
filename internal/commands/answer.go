package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"nenkin/internal/checklist"
	"nenkin/internal/config"
	"nenkin/internal/exitcode"
	"nenkin/internal/service"
)

func init() {
	Register(&AnswerCmd{})
}

// AnswerCmd implements the answer command.
type AnswerCmd struct {
	clear bool
}

// SetClear sets the clear flag (for testing).
func (c *AnswerCmd) SetClear(clear bool) {
	c.clear = clear
}

func (c *AnswerCmd) Name() string       { return "answer" }
func (c *AnswerCmd) Aliases() []string  { return nil }
func (c *AnswerCmd) Synopsis() string   { return "Set an item's answer" }
func (c *AnswerCmd) Usage() string      { return "nenkin answer [--clear] <ref> <text...>" }
func (c *AnswerCmd) NeedsBackend() bool { return true }

func (c *AnswerCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.clear, "clear", false, "")
}

func (c *AnswerCmd) Run(ctx context.Context, cfg *config.Config, b service.Backend, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintf(errOut, "error: %v\n", ErrItemRefRequired)
		return exitcode.UserError
	}

	var text string
	switch {
	case c.clear && len(args) > 1:
		fmt.Fprintln(errOut, "error: --clear takes no answer text")
		return exitcode.UserError
	case !c.clear:
		text = strings.Join(args[1:], " ")
		if strings.TrimSpace(text) == "" {
			fmt.Fprintln(errOut, "error: answer text required (use --clear to remove)")
			return exitcode.UserError
		}
	}

	items, code, ok := loadItems(ctx, b, errOut)
	if !ok {
		return code
	}

	it, _, ok := resolveRef(args[:1], items, errOut)
	if !ok {
		return exitcode.UserError
	}

	items, _ = checklist.SetAnswer(items, it.ID, text)
	if code := saveItems(ctx, b, items, errOut); code != exitcode.Success {
		return code
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
