// Package manage provides the commands that change existing records.
package manage

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/signlib/internal/appcontext"
	"github.com/agentstation/signlib/internal/cmd/cmdutil"
	"github.com/agentstation/signlib/internal/cmd/completion"
	"github.com/agentstation/signlib/internal/cmd/output"
)

// Result is the structured outcome of a change.
type Result struct {
	ID       string `json:"id,omitempty" yaml:"id,omitempty"`
	Favorite *bool  `json:"favorite,omitempty" yaml:"favorite,omitempty"`
	Deleted  *bool  `json:"deleted,omitempty" yaml:"deleted,omitempty"`
	Cleared  *bool  `json:"cleared,omitempty" yaml:"cleared,omitempty"`
	Revision uint64 `json:"revision" yaml:"revision"`
}

// NewFavoriteCommand creates the fav command.
func NewFavoriteCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:               "fav <id>",
		Aliases:           []string{"favorite"},
		Short:             "Toggle a video's favorite mark",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completion.VideoIDs(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdutil.Context(cmd, app)
			lib, err := cmdutil.Library(ctx, app)
			if err != nil {
				return err
			}
			if _, err := lib.Video(args[0]); err != nil {
				return err
			}
			on := lib.ToggleFavorite(ctx, args[0])
			return write(cmd, app, Result{ID: args[0], Favorite: &on, Revision: lib.Revision()})
		},
	}
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a video",
		Long: `Remove a video from the library after confirmation. The original file
on disk is not affected. Pass --yes to skip the prompt.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completion.VideoIDs(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdutil.Context(cmd, app)
			lib, err := cmdutil.Library(ctx, app)
			if err != nil {
				return err
			}
			if _, err := lib.Video(args[0]); err != nil {
				return err
			}
			deleted, err := lib.RequestDelete(ctx, args[0])
			if err != nil {
				return err
			}
			return write(cmd, app, Result{ID: args[0], Deleted: &deleted, Revision: lib.Revision()})
		},
	}
}

// NewClearCommand creates the clear command.
func NewClearCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every video",
		Long: `Remove every video, favorite and folder link after confirmation.
Original files on disk are not affected. Pass --yes to skip the prompt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmdutil.Context(cmd, app)
			lib, err := cmdutil.Library(ctx, app)
			if err != nil {
				return err
			}
			cleared, err := lib.RequestClear(ctx)
			if err != nil {
				return err
			}
			return write(cmd, app, Result{Cleared: &cleared, Revision: lib.Revision()})
		},
	}
}

// write prints r for structured formats. Table output relies on the
// notices already shown, except for a declined prompt.
func write(cmd *cobra.Command, app appcontext.Interface, r Result) error {
	format := cmdutil.Format(app)
	if !format.IsTable() {
		return output.FormatAny(cmd.OutOrStdout(), format, r)
	}
	if (r.Deleted != nil && !*r.Deleted) || (r.Cleared != nil && !*r.Cleared) {
		_, err := fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled.")
		return err
	}
	return nil
}
