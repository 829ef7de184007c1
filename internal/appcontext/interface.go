// Package appcontext provides the shared application context interface
// used by all commands. Commands accept this interface rather than the
// concrete App so they can be tested with Mock.
package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/signlib"
	"github.com/agentstation/signlib/internal/server"
	"github.com/agentstation/signlib/pkg/notify"
)

// Interface defines the application context interface that commands need.
type Interface interface {
	// Library returns the shared library, opening it lazily on first use.
	// The app owns it and closes it on shutdown.
	Library(ctx context.Context) (*signlib.Library, error)

	// LibraryWithOptions opens a separate library with extra options layered
	// over the configured ones. The caller must Close it.
	LibraryWithOptions(ctx context.Context, opts ...signlib.Option) (*signlib.Library, error)

	// Notifier returns the terminal writer for library notices.
	Notifier() notify.Notifier

	// ServerConfig returns the HTTP server settings.
	ServerConfig() server.Config

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, wide).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
