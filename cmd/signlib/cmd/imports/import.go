// Package imports provides the bulk import and folder link commands.
package imports

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/signlib"
	"github.com/agentstation/signlib/internal/appcontext"
	"github.com/agentstation/signlib/internal/cmd/cmdutil"
	"github.com/agentstation/signlib/internal/cmd/globals"
	"github.com/agentstation/signlib/internal/cmd/output"
	"github.com/agentstation/signlib/internal/cmd/table"
	"github.com/agentstation/signlib/internal/matcher"
	"github.com/agentstation/signlib/pkg/importer"
	"github.com/agentstation/signlib/pkg/logging"
)

// NewImportCommand creates the import command.
func NewImportCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Import many videos at once",
		Long: `Import embeds every video file given and adds the batch to the top of
the library. Non-video files are skipped. Titles and categories are
suggested from each file name unless --category is set.

When a file cannot be read the whole batch is dropped (--on-error abort,
the default) or just that file is skipped (--on-error skip).`,
		Example: `  signlib import ~/clips/*.mp4
  signlib import *.mp4 --category Greetings --tags beginner
  signlib import *.mp4 --dry-run
  signlib import ~/clips/* --exclude 'draft-*'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, app, args)
		},
	}

	globals.AddImportFlags(cmd)
	cmd.Flags().String("on-error", "", "Failure policy: abort or skip (default from config)")
	cmd.Flags().Bool("dry-run", false, "Show the suggested titles and categories without importing")

	return cmd
}

func runImport(cmd *cobra.Command, app appcontext.Interface, paths []string) error {
	ctx := cmdutil.Context(cmd, app)
	d := globals.ParseImport(cmd)

	filter, err := globals.ParseFilter(cmd)
	if err != nil {
		return err
	}
	files, err := importer.OpenFiles(paths)
	if err != nil {
		return err
	}
	files = keep(files, filter)

	lib, done, err := openLibrary(cmd, app)
	if err != nil {
		return err
	}
	defer done()

	format := cmdutil.Format(app)
	if cmdutil.MustGetBool(cmd, "dry-run") {
		items := lib.Importer().Preview(importer.FilterVideos(files), d.Category)
		var data any = items
		if format.IsTable() {
			data = table.PreviewToTableData(items)
		}
		return output.FormatAny(cmd.OutOrStdout(), format, data)
	}

	logger := logging.FromContext(ctx)
	progress := func(done, total int, name string) {
		logger.Debug().Int("done", done).Int("total", total).Str("file", name).Msg("Read file")
	}

	res, err := lib.ImportBulk(ctx, files, d, progress)
	if err != nil {
		return err
	}
	for _, f := range res.Failed {
		logger.Warn().Err(f.Err).Str("file", f.Name).Msg("Skipped unreadable file")
	}
	return output.FormatVideos(cmd.OutOrStdout(), format, res.Videos, lib.Catalog().Favorites())
}

// keep drops the files the --include and --exclude patterns reject.
func keep(files []importer.File, filter *matcher.Filter) []importer.File {
	if filter.Empty() {
		return files
	}
	out := files[:0:0]
	for _, f := range files {
		if filter.Keep(f.Name()) {
			out = append(out, f)
		}
	}
	return out
}

// openLibrary returns the shared library, or a dedicated one when
// --on-error overrides the configured policy.
func openLibrary(cmd *cobra.Command, app appcontext.Interface) (*signlib.Library, func(), error) {
	ctx := cmdutil.Context(cmd, app)
	policy := cmdutil.MustGetString(cmd, "on-error")
	if policy == "" {
		lib, err := cmdutil.Library(ctx, app)
		return lib, func() {}, err
	}

	p, err := importer.ParseOnError(policy)
	if err != nil {
		return nil, nil, err
	}
	lib, err := app.LibraryWithOptions(ctx, signlib.WithOnError(p))
	if err != nil {
		return nil, nil, err
	}
	if lib == nil {
		lib, err = cmdutil.Library(ctx, app)
		return lib, func() {}, err
	}
	return lib, func() { _ = lib.Close() }, nil
}
