// Package export provides the export command.
package export

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/signlib/internal/appcontext"
	"github.com/agentstation/signlib/internal/cmd/cmdutil"
	"github.com/agentstation/signlib/internal/cmd/globals"
	"github.com/agentstation/signlib/internal/export"
	"github.com/agentstation/signlib/pkg/constants"
	"github.com/agentstation/signlib/pkg/errors"
)

// NewCommand creates the export command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the library as a report",
		Long: `Export writes a snapshot of the library: category counts and the
videos of the selected view. Embedded video bytes are never included.`,
		Example: `  signlib export > library.md
  signlib export --type json --output library.json
  signlib export --category favorites --type yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(cmdutil.MustGetString(cmd, "type"))
			if err != nil {
				return err
			}
			q, err := globals.ParseView(cmd)
			if err != nil {
				return err
			}

			ctx := cmdutil.Context(cmd, app)
			lib, err := cmdutil.Library(ctx, app)
			if err != nil {
				return err
			}
			doc := export.Build(lib.Videos(), lib.Catalog().Favorites(), q, time.Now())

			var w io.Writer = cmd.OutOrStdout()
			if dst := cmdutil.MustGetString(cmd, "output"); dst != "" && dst != "-" {
				file, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions)
				if err != nil {
					return errors.WrapIO("create", dst, err)
				}
				defer file.Close()
				w = file
			}

			if err := export.Write(w, f, doc); err != nil {
				return errors.WrapResource("export", "library", string(f), err)
			}
			app.Logger().Debug().Str("type", string(f)).Int("videos", len(doc.Videos)).Msg("Exported library")
			return nil
		},
	}

	globals.AddViewFlags(cmd)
	cmd.Flags().String("type", string(export.FormatMarkdown), "Report type: markdown, json, yaml")
	cmd.Flags().String("output", "", "Write to this file instead of stdout")

	return cmd
}
