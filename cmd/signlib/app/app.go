// Package app provides the application context and dependency management
// for the signlib CLI. It centralizes configuration, logging and the
// lifecycle of the shared library.
package app

import (
	"context"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/signlib"
	"github.com/agentstation/signlib/internal/appcontext"
	"github.com/agentstation/signlib/internal/cmd/alerts"
	"github.com/agentstation/signlib/internal/cmd/output"
	"github.com/agentstation/signlib/internal/cmd/prompt"
	"github.com/agentstation/signlib/internal/server"
	"github.com/agentstation/signlib/pkg/errors"
	"github.com/agentstation/signlib/pkg/importer"
	"github.com/agentstation/signlib/pkg/notify"
)

// App represents the signlib application with all its dependencies.
type App struct {
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	mu       sync.Mutex
	library  *signlib.Library
	notifier notify.Notifier
	confirm  notify.Confirmer
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string { return a.version }

// Commit returns the git commit hash.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string { return a.builtBy }

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// OutputFormat returns the --format value.
func (a *App) OutputFormat() string { return a.config.Format }

// Notifier returns the stderr writer for library notices, honoring
// --quiet, --no-color and the output format.
func (a *App) Notifier() notify.Notifier {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.notifier != nil {
		return a.notifier
	}

	cfg := alerts.WriterConfig{
		UseColor: !a.config.NoColor && output.IsTerminal(os.Stderr),
		MinLevel: notify.LevelInfo,
	}
	if a.config.Quiet {
		cfg.MinLevel = notify.LevelWarn
	}
	format := output.DetectFormat(a.config.Format)
	if format == output.FormatWide {
		format = output.FormatTable
	}
	return alerts.NewFormatWriter(os.Stderr, format).WithConfig(cfg)
}

// Confirmer returns the terminal confirmer; --yes approves everything.
func (a *App) Confirmer() notify.Confirmer {
	if a.confirm != nil {
		return a.confirm
	}
	return prompt.NewTerminal(a.config.Yes)
}

// ServerConfig returns the HTTP server settings from configuration.
func (a *App) ServerConfig() server.Config {
	cfg := server.DefaultConfig()
	if a.config.ServerHost != "" {
		cfg.Host = a.config.ServerHost
	}
	if a.config.ServerPort != 0 {
		cfg.Port = a.config.ServerPort
	}
	if len(a.config.CORSOrigins) > 0 {
		cfg.CORSEnabled = true
		cfg.CORSOrigins = a.config.CORSOrigins
	}
	if a.config.CacheTTL > 0 {
		cfg.CacheTTL = a.config.CacheTTL
	}
	if a.config.MaxUploadBytes > 0 {
		cfg.MaxUploadBytes = a.config.MaxUploadBytes
	}
	if root, err := expandHome(a.config.FolderRoot); err == nil {
		cfg.FolderRoot = root
	}
	return cfg
}

// Library returns the shared library, opening it lazily on first use.
func (a *App) Library(ctx context.Context) (*signlib.Library, error) {
	a.mu.Lock()
	if a.library != nil {
		lib := a.library
		a.mu.Unlock()
		return lib, nil
	}
	a.mu.Unlock()

	lib, err := a.LibraryWithOptions(ctx)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.library != nil {
		_ = lib.Close()
		return a.library, nil
	}
	a.library = lib
	return lib, nil
}

// LibraryWithOptions opens a new library with opts layered over the
// configured ones. The caller closes it.
func (a *App) LibraryWithOptions(ctx context.Context, opts ...signlib.Option) (*signlib.Library, error) {
	sc, err := a.config.StorageConfig()
	if err != nil {
		return nil, err
	}
	base, err := a.libraryOptions()
	if err != nil {
		return nil, err
	}

	a.logger.Debug().
		Str("backend", sc.Backend.String()).
		Str("path", sc.Path).
		Int64("quota_bytes", sc.QuotaBytes).
		Msg("Opening library")

	lib, err := signlib.Open(ctx, sc, append(base, opts...)...)
	if err != nil {
		return nil, errors.WrapResource("open", "library", sc.Backend.String(), err)
	}
	return lib, nil
}

func (a *App) libraryOptions() ([]signlib.Option, error) {
	onError, err := importer.ParseOnError(a.config.OnError)
	if err != nil {
		return nil, err
	}
	return []signlib.Option{
		signlib.WithKeys(a.config.CatalogKey, a.config.FavoritesKey),
		signlib.WithDemoSeed(a.config.SeedDemo),
		signlib.WithOnError(onError),
		signlib.WithNotifier(a.Notifier()),
		signlib.WithConfirmer(a.Confirmer()),
		signlib.WithLogger(a.logger),
	}, nil
}

// Shutdown releases the shared library.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	lib := a.library
	a.library = nil
	a.mu.Unlock()

	if lib == nil {
		return nil
	}
	if err := lib.Close(); err != nil {
		a.logger.Error().Err(err).Msg("Failed to close library during shutdown")
		return err
	}
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithLibrary sets the shared library (useful for testing).
func WithLibrary(lib *signlib.Library) Option {
	return func(a *App) error {
		a.library = lib
		return nil
	}
}

// WithNotifier replaces the stderr notice writer.
func WithNotifier(n notify.Notifier) Option {
	return func(a *App) error {
		a.notifier = n
		return nil
	}
}

// WithConfirmer replaces the terminal confirmer.
func WithConfirmer(c notify.Confirmer) Option {
	return func(a *App) error {
		a.confirm = c
		return nil
	}
}

var _ appcontext.Interface = (*App)(nil)
