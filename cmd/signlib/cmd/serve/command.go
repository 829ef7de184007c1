// Package serve provides the HTTP server command.
package serve

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/signlib"
	"github.com/agentstation/signlib/internal/appcontext"
	"github.com/agentstation/signlib/internal/cmd/cmdutil"
	"github.com/agentstation/signlib/internal/cmd/emoji"
	"github.com/agentstation/signlib/internal/server"
	"github.com/agentstation/signlib/internal/server/events"
	"github.com/agentstation/signlib/pkg/constants"
	"github.com/agentstation/signlib/pkg/errors"
	"github.com/agentstation/signlib/pkg/notify"
)

// NewCommand creates the serve command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	defaults := app.ServerConfig()

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		Short:   "Start the HTTP API with a live change stream",
		Long: `Start a local HTTP API over the library.

Endpoints live under the path prefix (default /api/v1):
  - GET/POST/DELETE /videos, GET/DELETE /videos/{id}, GET /videos/{id}/stream
  - POST /videos/bulk, POST /folders, POST /favorites/{id}, GET /categories
  - GET /updates/stream (Server-Sent Events) and GET /updates/ws (WebSocket)

Every change to the catalog and every notice is pushed to connected
stream and WebSocket clients.`,
		Example: `  signlib serve
  signlib serve --port 3000 --folder-root ~/Videos
  signlib serve --cors-origins "http://localhost:5173"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := parseConfig(cmd, defaults)
			if err != nil {
				return err
			}
			return runServer(cmd, app, cfg)
		},
	}

	cmd.Flags().Int("port", defaults.Port, "Server port")
	cmd.Flags().String("host", defaults.Host, "Bind address")
	cmd.Flags().String("prefix", defaults.PathPrefix, "API path prefix")
	cmd.Flags().StringSlice("cors-origins", defaults.CORSOrigins, "Allowed CORS origins (comma-separated, * for any)")
	cmd.Flags().Duration("cache-ttl", defaults.CacheTTL, "Query cache TTL")
	cmd.Flags().Int64("max-upload", defaults.MaxUploadBytes, "Maximum upload request size in bytes")
	cmd.Flags().String("folder-root", defaults.FolderRoot, "Restrict folder links to paths below this directory")

	return cmd
}

func parseConfig(cmd *cobra.Command, cfg server.Config) (server.Config, error) {
	fs := cmd.Flags()
	var err error
	if cfg.Port, err = fs.GetInt("port"); err != nil {
		return cfg, err
	}
	if cfg.Host, err = fs.GetString("host"); err != nil {
		return cfg, err
	}
	if cfg.PathPrefix, err = fs.GetString("prefix"); err != nil {
		return cfg, err
	}
	if cfg.CORSOrigins, err = fs.GetStringSlice("cors-origins"); err != nil {
		return cfg, err
	}
	cfg.CORSEnabled = len(cfg.CORSOrigins) > 0
	if cfg.CacheTTL, err = fs.GetDuration("cache-ttl"); err != nil {
		return cfg, err
	}
	if cfg.MaxUploadBytes, err = fs.GetInt64("max-upload"); err != nil {
		return cfg, err
	}
	if cfg.FolderRoot, err = fs.GetString("folder-root"); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// runServer starts the API server and blocks until the command context ends.
func runServer(cmd *cobra.Command, app appcontext.Interface, cfg server.Config) error {
	ctx := cmdutil.Context(cmd, app)
	logger := app.Logger()

	// The broker is the library's notifier so notices reach stream clients.
	broker := events.NewBroker(logger)
	lib, err := app.LibraryWithOptions(ctx, signlib.WithNotifier(notify.Multi(app.Notifier(), broker)))
	if err != nil {
		return err
	}
	if lib == nil {
		return errors.NewConfigError("library", "no library configured", nil)
	}
	defer lib.Close()

	logger.Info().
		Int("port", cfg.Port).
		Str("host", cfg.Host).
		Str("prefix", cfg.PathPrefix).
		Bool("cors", cfg.CORSEnabled).
		Dur("cache_ttl", cfg.CacheTTL).
		Str("folder_root", cfg.FolderRoot).
		Msg("Starting API server")

	srv := server.New(lib, cfg, logger, server.WithBroker(broker))
	srv.Start()

	listener, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		_ = srv.Shutdown(context.Background())
		return errors.WrapResource("listen", "server", cfg.Host, err)
	}

	httpServer := &http.Server{
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return serveWithGracefulShutdown(ctx, httpServer, listener, srv, logger, cmd.ErrOrStderr())
}

// serveWithGracefulShutdown serves on listener until ctx is cancelled, then
// drains connections and stops the background services.
func serveWithGracefulShutdown(ctx context.Context, httpServer *http.Server, listener net.Listener, srv *server.Server, logger *zerolog.Logger, out io.Writer) error {
	serverErr := make(chan error, 1)
	addr := listener.Addr().String()

	go func() {
		logger.Info().Str("addr", addr).Msg("HTTP server listening")
		fmt.Fprintf(out, "API server listening on http://%s\n", addr)
		fmt.Fprintln(out, "   Press Ctrl+C to stop")

		if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
	}()

	select {
	case err := <-serverErr:
		_ = srv.Shutdown(context.Background())
		return err
	case <-ctx.Done():
		logger.Info().Msg("Shutdown signal received via context")
		fmt.Fprintf(out, "\n%s Shutting down API server...\n", emoji.Stop)

		// The parent context is already cancelled.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("Background services shutdown had issues")
		}

		logger.Info().Dur("uptime", time.Since(srv.StartTime())).Msg("Server stopped gracefully")
		fmt.Fprintf(out, "%s API server stopped gracefully\n", emoji.Success)
		return nil
	}
}
