package imports

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/signlib/internal/appcontext"
	"github.com/agentstation/signlib/internal/cmd/cmdutil"
	"github.com/agentstation/signlib/internal/cmd/globals"
	"github.com/agentstation/signlib/internal/cmd/output"
	"github.com/agentstation/signlib/pkg/importer"
)

// NewLinkCommand creates the link command.
func NewLinkCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link <dir>",
		Short: "Link a folder of videos",
		Long: `Link registers every video below a folder without copying it.

Linking replaces the records of any previously linked folder. Linked
files play only while the folder link is live in the running process;
after a restart, link the folder again to watch its videos.`,
		Example: `  signlib link ~/Videos/signs
  signlib link ./clips --category Practice
  signlib link ./clips --include '*.mp4' --include '*.webm'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdutil.Context(cmd, app)
			lib, err := cmdutil.Library(ctx, app)
			if err != nil {
				return err
			}

			filter, err := globals.ParseFilter(cmd)
			if err != nil {
				return err
			}
			name, files, err := importer.WalkFolder(ctx, args[0])
			if err != nil {
				return err
			}
			files = keep(files, filter)
			res, err := lib.LinkFolder(ctx, name, files, globals.ParseImport(cmd))
			if err != nil {
				return err
			}
			return output.FormatVideos(cmd.OutOrStdout(), cmdutil.Format(app), res.Videos, lib.Catalog().Favorites())
		},
	}

	globals.AddImportFlags(cmd)

	return cmd
}
