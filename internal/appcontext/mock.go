package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/signlib"
	"github.com/agentstation/signlib/internal/server"
	"github.com/agentstation/signlib/pkg/notify"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	LibraryFunc            func(ctx context.Context) (*signlib.Library, error)
	LibraryWithOptionsFunc func(ctx context.Context, opts ...signlib.Option) (*signlib.Library, error)
	NotifierFunc           func() notify.Notifier
	ServerConfigFunc       func() server.Config
	LoggerFunc             func() *zerolog.Logger
	OutputFormatFunc       func() string
	VersionFunc            func() string
	CommitFunc             func() string
	DateFunc               func() string
	BuiltByFunc            func() string
}

// Library returns a library using the mock function or nil.
func (m *Mock) Library(ctx context.Context) (*signlib.Library, error) {
	if m.LibraryFunc != nil {
		return m.LibraryFunc(ctx)
	}
	return nil, nil
}

// LibraryWithOptions returns a library using the mock function, falling
// back to LibraryFunc.
func (m *Mock) LibraryWithOptions(ctx context.Context, opts ...signlib.Option) (*signlib.Library, error) {
	if m.LibraryWithOptionsFunc != nil {
		return m.LibraryWithOptionsFunc(ctx, opts...)
	}
	return m.Library(ctx)
}

// Notifier returns a notifier using the mock function or notify.Discard.
func (m *Mock) Notifier() notify.Notifier {
	if m.NotifierFunc != nil {
		return m.NotifierFunc()
	}
	return notify.Discard
}

// ServerConfig returns server settings using the mock function or the defaults.
func (m *Mock) ServerConfig() server.Config {
	if m.ServerConfigFunc != nil {
		return m.ServerConfigFunc()
	}
	return server.DefaultConfig()
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
