package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/signlib"
	"github.com/agentstation/signlib/pkg/notify"
)

func testConfig() *Config {
	return &Config{
		StorageBackend: "memory",
		SeedDemo:       true,
		OnError:        "skip",
		Format:         "json",
	}
}

func newTestApp(t *testing.T, opts ...Option) *App {
	t.Helper()
	t.Chdir(t.TempDir())
	nop := zerolog.Nop()
	opts = append([]Option{WithConfig(testConfig()), WithLogger(&nop), WithNotifier(notify.Discard)}, opts...)
	app, err := New("1.0.0", "abc123", "2024-01-01", "test", opts...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(func() { _ = app.Shutdown(context.Background()) })
	return app
}

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	app := newTestApp(t)

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %s, want 1.0.0", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %s, want abc123", app.Commit())
	}
	if app.Date() != "2024-01-01" {
		t.Errorf("Date() = %s, want 2024-01-01", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %s, want test", app.BuiltBy())
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	if app.OutputFormat() != "json" {
		t.Errorf("OutputFormat() = %s, want json", app.OutputFormat())
	}
}

// TestApp_Library_Singleton verifies that Library() returns the same instance.
func TestApp_Library_Singleton(t *testing.T) {
	app := newTestApp(t)

	lib1, err := app.Library(context.Background())
	if err != nil {
		t.Fatalf("Library() failed: %v", err)
	}
	lib2, err := app.Library(context.Background())
	if err != nil {
		t.Fatalf("Library() second call failed: %v", err)
	}
	if lib1 != lib2 {
		t.Error("Library() returned different instances")
	}
	if n := lib1.Catalog().Videos().Len(); n != 6 {
		t.Errorf("seeded library has %d videos, want 6", n)
	}
}

// TestApp_Library_Concurrent verifies concurrent opens share one library.
func TestApp_Library_Concurrent(t *testing.T) {
	app := newTestApp(t)

	const goroutines = 10
	libs := make([]*signlib.Library, goroutines)
	var wg sync.WaitGroup
	for i := range goroutines {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			lib, err := app.Library(context.Background())
			if err != nil {
				t.Errorf("Library() failed: %v", err)
				return
			}
			libs[i] = lib
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		if libs[i] != libs[0] {
			t.Fatalf("goroutine %d got a different library", i)
		}
	}
}

func TestApp_LibraryWithOptions(t *testing.T) {
	app := newTestApp(t)

	lib, err := app.LibraryWithOptions(context.Background(), signlib.WithDemoSeed(false))
	if err != nil {
		t.Fatalf("LibraryWithOptions() failed: %v", err)
	}
	defer lib.Close()

	if n := lib.Catalog().Videos().Len(); n != 0 {
		t.Errorf("library has %d videos, want 0", n)
	}
}

func TestApp_LibraryBadOnError(t *testing.T) {
	config := testConfig()
	config.OnError = "retry"
	app := newTestApp(t, WithConfig(config))

	if _, err := app.Library(context.Background()); err == nil {
		t.Error("expected error for invalid import.on_error")
	}
}

func TestApp_ServerConfig(t *testing.T) {
	config := testConfig()
	config.ServerHost = "0.0.0.0"
	config.ServerPort = 3000
	config.CORSOrigins = []string{"*"}
	config.CacheTTL = time.Minute
	config.MaxUploadBytes = 1 << 20
	config.FolderRoot = "/srv/signs"
	app := newTestApp(t, WithConfig(config))

	cfg := app.ServerConfig()
	if cfg.Host != "0.0.0.0" || cfg.Port != 3000 {
		t.Errorf("address = %s:%d, want 0.0.0.0:3000", cfg.Host, cfg.Port)
	}
	if !cfg.CORSEnabled {
		t.Error("CORS should be enabled when origins are configured")
	}
	if cfg.CacheTTL != time.Minute {
		t.Errorf("CacheTTL = %v, want 1m", cfg.CacheTTL)
	}
	if cfg.PathPrefix != "/api/v1" {
		t.Errorf("PathPrefix = %s, want default", cfg.PathPrefix)
	}
	if cfg.MaxUploadBytes != 1<<20 || cfg.FolderRoot != "/srv/signs" {
		t.Errorf("upload/folder = %d/%s, want 1048576//srv/signs", cfg.MaxUploadBytes, cfg.FolderRoot)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestApp_Confirmer(t *testing.T) {
	config := testConfig()
	config.Yes = true
	app := newTestApp(t, WithConfig(config))

	ok, err := app.Confirmer().Confirm(context.Background(), notify.Confirmation{Title: "Clear all videos?"})
	if err != nil || !ok {
		t.Errorf("Confirm() = %v, %v; want true with --yes", ok, err)
	}
}

// TestApp_Shutdown verifies shutdown is idempotent.
func TestApp_Shutdown(t *testing.T) {
	app := newTestApp(t)
	if _, err := app.Library(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := app.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() failed: %v", err)
	}
	if err := app.Shutdown(context.Background()); err != nil {
		t.Errorf("second Shutdown() failed: %v", err)
	}
}
