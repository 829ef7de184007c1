// Package add provides the add command.
package add

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/signlib/internal/appcontext"
	"github.com/agentstation/signlib/internal/cmd/cmdutil"
	"github.com/agentstation/signlib/internal/cmd/output"
	"github.com/agentstation/signlib/pkg/catalogs"
	"github.com/agentstation/signlib/pkg/importer"
)

// NewCommand creates the add command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [file]",
		Short: "Add a single video",
		Long: `Add one video to the library.

With a file, the title and category default to what the file name suggests
and the file is embedded in the library. Without a file the record is a
manual entry and --title is required.`,
		Example: `  signlib add ~/clips/thank-you_v2.mp4
  signlib add clip.mp4 --title "Thank You" --category Greetings --tags basic,polite
  signlib add --title "Good Morning" --category Greetings`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := importer.SingleInput{
				Title:    cmdutil.MustGetString(cmd, "title"),
				Category: cmdutil.MustGetString(cmd, "category"),
				Tags:     catalogs.ParseTags(cmdutil.MustGetString(cmd, "tags")),
			}
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return run(cmd, app, in, path)
		},
	}

	cmd.Flags().StringP("title", "t", "", "Title (default: suggested from the file name)")
	cmd.Flags().String("category", "", "Category (default: suggested from the file name)")
	cmd.Flags().String("tags", "", "Comma-separated tags")

	return cmd
}

func run(cmd *cobra.Command, app appcontext.Interface, in importer.SingleInput, path string) error {
	ctx := cmdutil.Context(cmd, app)
	lib, err := cmdutil.Library(ctx, app)
	if err != nil {
		return err
	}

	if path != "" {
		f, err := importer.OpenFile(path)
		if err != nil {
			return err
		}
		title, category := lib.Importer().Suggest(f.Name())
		if in.Title == "" {
			in.Title = title
		}
		if in.Category == "" && !cmd.Flags().Changed("category") {
			in.Category = category
		}
		in.File = f
	}

	v, err := lib.AddSingle(ctx, in)
	if err != nil {
		return err
	}
	return output.FormatVideo(cmd.OutOrStdout(), cmdutil.Format(app), v, lib.IsFavorite(v.ID))
}
