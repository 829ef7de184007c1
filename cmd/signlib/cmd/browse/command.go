// Package browse provides the interactive terminal browser command.
package browse

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/signlib"
	"github.com/agentstation/signlib/cmd/signlib/cmd/play"
	"github.com/agentstation/signlib/internal/appcontext"
	"github.com/agentstation/signlib/internal/cmd/cmdutil"
	"github.com/agentstation/signlib/internal/cmd/globals"
	"github.com/agentstation/signlib/internal/cmd/output"
	"github.com/agentstation/signlib/internal/tui"
	"github.com/agentstation/signlib/pkg/errors"
	"github.com/agentstation/signlib/pkg/logging"
)

// NewCommand creates the browse command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the library in an interactive terminal UI",
		Long: `Browse opens a full-screen browser over the library.

Keys: / search, tab category, s sort, f favorite, d delete, X clear all,
enter play, q quit.

Folder videos play only while their folder is linked in this session;
pass --link to link a folder before the browser opens.`,
		Example: `  signlib browse
  signlib browse --category favorites
  signlib browse --link ~/Videos/signs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !output.IsTerminal(os.Stdout) {
				return errors.NewValidationError("terminal", "stdout", "browse needs an interactive terminal")
			}
			q, err := globals.ParseView(cmd)
			if err != nil {
				return err
			}

			// Log lines would tear the full-screen UI.
			silent := zerolog.Nop()
			ctx := logging.WithLogger(cmd.Context(), &silent)
			bridge := tui.NewBridge()
			lib, err := app.LibraryWithOptions(ctx, signlib.WithNotifier(bridge), signlib.WithLogger(&silent))
			if err != nil {
				return err
			}
			if lib == nil {
				return errors.NewConfigError("library", "no library configured", nil)
			}
			defer lib.Close()
			bridge.Attach(lib)
			if dir := cmdutil.MustGetString(cmd, "link"); dir != "" {
				if _, err := cmdutil.LinkFolder(ctx, lib, dir); err != nil {
					return err
				}
			}

			return tui.Run(ctx, lib, bridge, tui.Options{
				Player: play.Launcher(cmdutil.MustGetString(cmd, "player")),
				Query:  q,
			})
		},
	}

	globals.AddViewFlags(cmd)
	cmd.Flags().String("player", "", "Player to use: mpv, ffplay, vlc, open")
	cmd.Flags().String("link", "", "Link this folder for the session")
	_ = cmd.MarkFlagDirname("link")

	return cmd
}
