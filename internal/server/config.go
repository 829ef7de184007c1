package server

import (
	"net"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/signlib/pkg/constants"
	"github.com/agentstation/signlib/pkg/errors"
)

// Config holds server configuration.
type Config struct {
	Host       string
	Port       int
	PathPrefix string

	// CORSOrigins are echoed when CORSEnabled. Empty or "*" allows any origin.
	CORSEnabled bool
	CORSOrigins []string

	// CacheTTL bounds how long a video-list result is served without a
	// catalog change.
	CacheTTL time.Duration

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// MaxUploadBytes caps a POST /videos body. Larger uploads get 413.
	MaxUploadBytes int64

	// FolderRoot restricts POST /folders to paths below it. Empty allows any
	// directory readable by the server process.
	FolderRoot string
}

// DefaultConfig listens on localhost:8080 under /api/v1 with CORS off.
func DefaultConfig() Config {
	return Config{
		Host:           "localhost",
		Port:           8080,
		PathPrefix:     "/api/v1",
		CORSOrigins:    []string{},
		CacheTTL:       constants.CacheTTL,
		ReadTimeout:    constants.ServerReadTimeout,
		WriteTimeout:   constants.ServerWriteTimeout,
		IdleTimeout:    constants.ServerIdleTimeout,
		MaxUploadBytes: constants.MaxUploadBytes,
	}
}

// Addr is the host:port to listen on.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Port < 0 || c.Port > 65535:
		return errors.NewValidationError("port", c.Port, "must be between 0 and 65535")
	case c.PathPrefix != "" && !strings.HasPrefix(c.PathPrefix, "/"):
		return errors.NewValidationError("prefix", c.PathPrefix, `must start with "/"`)
	case c.CacheTTL < 0:
		return errors.NewValidationError("cache-ttl", c.CacheTTL, "must not be negative")
	case c.MaxUploadBytes < 0:
		return errors.NewValidationError("max-upload", c.MaxUploadBytes, "must not be negative")
	case c.FolderRoot != "" && !filepath.IsAbs(c.FolderRoot):
		return errors.NewValidationError("folder-root", c.FolderRoot, "must be an absolute path")
	}
	return nil
}
