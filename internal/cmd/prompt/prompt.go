// Package prompt asks the user to confirm destructive commands on the terminal.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agentstation/signlib/internal/cmd/output"
	"github.com/agentstation/signlib/pkg/errors"
	"github.com/agentstation/signlib/pkg/logging"
	"github.com/agentstation/signlib/pkg/notify"
)

// Options configures how prompts are displayed and handled.
type Options struct {
	// AssumeYes approves every confirmation without reading input (--yes).
	AssumeYes bool
	// Interactive reports whether In is a terminal. A non-interactive prompt
	// without AssumeYes refuses with errors.ErrDeclined.
	Interactive bool
	In          io.Reader
	Out         io.Writer
}

// Confirmer is a notify.Confirmer backed by a terminal.
type Confirmer struct {
	opts Options
}

// New creates a Confirmer. Nil streams default to stdin and stderr.
func New(opts Options) *Confirmer {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stderr
	}
	return &Confirmer{opts: opts}
}

// NewTerminal creates a Confirmer on stdin/stderr, detecting whether stdin is
// interactive.
func NewTerminal(assumeYes bool) *Confirmer {
	return New(Options{
		AssumeYes:   assumeYes,
		Interactive: output.IsTerminal(os.Stdin),
	})
}

// Confirm implements notify.Confirmer.
func (c *Confirmer) Confirm(ctx context.Context, req notify.Confirmation) (bool, error) {
	logger := logging.FromContext(ctx)
	if c.opts.AssumeYes {
		logger.Debug().Str("prompt", req.Title).Msg("Confirmation auto-approved")
		return true, nil
	}
	if !c.opts.Interactive {
		fmt.Fprintf(c.opts.Out, "%s: pass --yes to confirm non-interactively\n", req.Title)
		return false, errors.NewResourceError("confirm", "prompt", req.Title, errors.ErrDeclined)
	}

	fmt.Fprintf(c.opts.Out, "\n%s  %s\n", req.Icon, req.Title)
	if req.Message != "" {
		fmt.Fprintf(c.opts.Out, "   %s\n", req.Message)
	}
	label := req.OKLabel
	if label == "" {
		label = "OK"
	}
	fmt.Fprintf(c.opts.Out, "\n%s? [y/N] ", label)

	answer := make(chan string, 1)
	go func() {
		response, err := bufio.NewReader(c.opts.In).ReadString('\n')
		if err != nil && response == "" {
			answer <- ""
			return
		}
		answer <- response
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(c.opts.Out)
		return false, errors.WrapResource("confirm", "prompt", req.Title, errors.ErrCanceled)
	case response := <-answer:
		switch strings.ToLower(strings.TrimSpace(response)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}

var _ notify.Confirmer = (*Confirmer)(nil)
