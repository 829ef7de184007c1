package serve

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/signlib"
	"github.com/agentstation/signlib/internal/appcontext"
	"github.com/agentstation/signlib/internal/server"
	"github.com/agentstation/signlib/pkg/errors"
)

func TestParseConfig(t *testing.T) {
	cmd := NewCommand(&appcontext.Mock{})
	require.NoError(t, cmd.ParseFlags([]string{
		"--port", "3000",
		"--cors-origins", "http://localhost:5173",
		"--folder-root", "/videos",
		"--cache-ttl", "30s",
	}))

	cfg, err := parseConfig(cmd, server.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "localhost", cfg.Host)
	assert.True(t, cfg.CORSEnabled)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.Equal(t, "/videos", cfg.FolderRoot)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
}

func TestParseConfigBadPort(t *testing.T) {
	cmd := NewCommand(&appcontext.Mock{})
	require.NoError(t, cmd.ParseFlags([]string{"--port", "70000"}))

	_, err := parseConfig(cmd, server.DefaultConfig())
	assert.True(t, errors.IsValidationError(err))
}

func TestServeWithGracefulShutdown(t *testing.T) {
	lib, err := signlib.New(context.Background())
	require.NoError(t, err)
	defer lib.Close()

	logger := zerolog.Nop()
	srv := server.New(lib, server.DefaultConfig(), &logger)
	srv.Start()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serveWithGracefulShutdown(ctx, &http.Server{Handler: srv.Handler()}, listener, srv, &logger, io.Discard)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + listener.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
