// Package cmdutil provides helpers shared by the signlib commands.
package cmdutil

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/signlib"
	"github.com/agentstation/signlib/internal/appcontext"
	"github.com/agentstation/signlib/internal/cmd/output"
	"github.com/agentstation/signlib/pkg/errors"
	"github.com/agentstation/signlib/pkg/importer"
	"github.com/agentstation/signlib/pkg/logging"
)

// Context returns the command context carrying the app logger.
func Context(cmd *cobra.Command, app appcontext.Interface) context.Context {
	return logging.WithLogger(cmd.Context(), app.Logger())
}

// Library returns the shared library of app.
func Library(ctx context.Context, app appcontext.Interface) (*signlib.Library, error) {
	lib, err := app.Library(ctx)
	if err != nil {
		return nil, err
	}
	if lib == nil {
		return nil, errors.NewConfigError("library", "no library configured", nil)
	}
	return lib, nil
}

// LinkFolder walks dir and links its videos into lib for the life of the
// process. Folder records from an earlier link are replaced.
func LinkFolder(ctx context.Context, lib *signlib.Library, dir string) (*importer.FolderResult, error) {
	name, files, err := importer.WalkFolder(ctx, dir)
	if err != nil {
		return nil, err
	}
	return lib.LinkFolder(ctx, name, files, importer.Defaults{})
}

// Format returns the output format, detecting it from stdout when unset.
func Format(app appcontext.Interface) output.Format {
	return output.DetectFormat(app.OutputFormat())
}

// MustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
func MustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// MustGetString retrieves a string flag value or panics if the flag doesn't exist.
func MustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
