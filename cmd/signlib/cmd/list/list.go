// Package list provides the read-only catalog commands.
package list

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/signlib/internal/appcontext"
	"github.com/agentstation/signlib/internal/cmd/cmdutil"
	"github.com/agentstation/signlib/internal/cmd/completion"
	"github.com/agentstation/signlib/internal/cmd/globals"
	"github.com/agentstation/signlib/internal/cmd/output"
	"github.com/agentstation/signlib/pkg/query"
)

// NewListCommand creates the list command.
func NewListCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List videos",
		Example: `  signlib list                          # Newest first
  signlib list --category favorites     # Favorites only
  signlib list --category Greetings --sort az
  signlib list --search hello -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := globals.ParseView(cmd)
			if err != nil {
				return err
			}

			ctx := cmdutil.Context(cmd, app)
			lib, err := cmdutil.Library(ctx, app)
			if err != nil {
				return err
			}

			videos := lib.Query(q)
			app.Logger().Debug().
				Str("view", query.Title(q.Category)).
				Int("count", len(videos)).
				Msg("Listed videos")
			return output.FormatVideos(cmd.OutOrStdout(), cmdutil.Format(app), videos, lib.Catalog().Favorites())
		},
	}

	globals.AddViewFlags(cmd)

	return cmd
}

// NewShowCommand creates the show command.
func NewShowCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:               "show <id>",
		Short:             "Show one video",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completion.VideoIDs(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdutil.Context(cmd, app)
			lib, err := cmdutil.Library(ctx, app)
			if err != nil {
				return err
			}
			v, err := lib.Video(args[0])
			if err != nil {
				return err
			}
			return output.FormatVideo(cmd.OutOrStdout(), cmdutil.Format(app), v, lib.IsFavorite(v.ID))
		},
	}
}

// NewCategoriesCommand creates the categories command.
func NewCategoriesCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cats"},
		Short:   "Show category counts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmdutil.Context(cmd, app)
			lib, err := cmdutil.Library(ctx, app)
			if err != nil {
				return err
			}
			return output.FormatSummary(cmd.OutOrStdout(), cmdutil.Format(app), lib.Summary())
		},
	}
}
