package imports

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/signlib"
	"github.com/agentstation/signlib/internal/appcontext"
	"github.com/agentstation/signlib/pkg/catalogs"
	"github.com/agentstation/signlib/pkg/errors"
	"github.com/agentstation/signlib/pkg/importer"
)

func newApp(t *testing.T) (*appcontext.Mock, *signlib.Library) {
	t.Helper()
	lib, err := signlib.New(context.Background(), signlib.WithDemoSeed(false))
	require.NoError(t, err)
	t.Cleanup(func() { _ = lib.Close() })
	return &appcontext.Mock{
		LibraryFunc:      func(context.Context) (*signlib.Library, error) { return lib, nil },
		OutputFormatFunc: func() string { return "json" },
	}, lib
}

func writeFiles(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(paths[i]), 0o755))
		require.NoError(t, os.WriteFile(paths[i], []byte(name), 0o600))
	}
	return paths
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func titles(t *testing.T, out string) []string {
	t.Helper()
	var videos []catalogs.Video
	require.NoError(t, json.Unmarshal([]byte(out), &videos))
	names := make([]string, len(videos))
	for i, v := range videos {
		names[i] = v.Title
	}
	return names
}

func TestImport(t *testing.T) {
	app, lib := newApp(t)
	paths := writeFiles(t, t.TempDir(), "hello.mp4", "one.webm", "notes.txt")

	out, err := run(t, NewImportCommand(app), append(paths, "--tags", "practice")...)
	require.NoError(t, err)

	assert.Equal(t, []string{"Hello", "One"}, titles(t, out))
	videos := lib.Videos()
	require.Len(t, videos, 2)
	assert.Equal(t, []string{"practice"}, videos[0].Tags)
	assert.Equal(t, "Greetings", videos[0].Category)
	assert.Equal(t, "Numbers", videos[1].Category)
}

func TestImportCategoryOverride(t *testing.T) {
	app, lib := newApp(t)
	paths := writeFiles(t, t.TempDir(), "hello.mp4")

	_, err := run(t, NewImportCommand(app), append(paths, "--category", "Practice")...)
	require.NoError(t, err)
	assert.Equal(t, "Practice", lib.Videos()[0].Category)
}

func TestImportDryRun(t *testing.T) {
	app, lib := newApp(t)
	paths := writeFiles(t, t.TempDir(), "hello.mp4", "readme.md")

	out, err := run(t, NewImportCommand(app), append(paths, "--dry-run")...)
	require.NoError(t, err)

	var items []importer.PreviewItem
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, importer.PreviewItem{Name: "hello.mp4", Title: "Hello", Category: "Greetings"}, items[0])
	assert.Zero(t, lib.Catalog().Videos().Len())
}

func TestImportNoVideos(t *testing.T) {
	app, _ := newApp(t)
	paths := writeFiles(t, t.TempDir(), "readme.md")

	_, err := run(t, NewImportCommand(app), paths...)
	assert.True(t, errors.IsNoVideos(err))
}

func TestImportOnErrorOverride(t *testing.T) {
	app, _ := newApp(t)
	var opened int
	app.LibraryWithOptionsFunc = func(ctx context.Context, opts ...signlib.Option) (*signlib.Library, error) {
		opened++
		return signlib.New(ctx, append([]signlib.Option{signlib.WithDemoSeed(false)}, opts...)...)
	}
	paths := writeFiles(t, t.TempDir(), "hello.mp4")

	_, err := run(t, NewImportCommand(app), append(paths, "--on-error", "skip")...)
	require.NoError(t, err)
	assert.Equal(t, 1, opened)

	_, err = run(t, NewImportCommand(app), append(paths, "--on-error", "retry")...)
	assert.True(t, errors.IsValidationError(err))
}

func TestLink(t *testing.T) {
	app, lib := newApp(t)
	dir := filepath.Join(t.TempDir(), "signs")
	writeFiles(t, dir, "a.mp4", "nested/water.mov", ".hidden.mp4", "notes.txt")

	out, err := run(t, NewLinkCommand(app), dir)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"A", "Water"}, titles(t, out))
	name, files := lib.Folder()
	assert.Equal(t, "signs", name)
	assert.Equal(t, 2, files)
	for _, v := range lib.Videos() {
		assert.Equal(t, catalogs.SourceFolder, v.Source)
	}
}

func TestLinkMissingFolder(t *testing.T) {
	app, _ := newApp(t)

	_, err := run(t, NewLinkCommand(app), filepath.Join(t.TempDir(), "nope"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestImportExclude(t *testing.T) {
	app, _ := newApp(t)
	paths := writeFiles(t, t.TempDir(), "hello.mp4", "draft-bye.mp4", "one.webm")

	out, err := run(t, NewImportCommand(app), append(paths, "--exclude", "draft-*")...)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello", "One"}, titles(t, out))
}

func TestLinkInclude(t *testing.T) {
	app, _ := newApp(t)
	dir := filepath.Join(t.TempDir(), "signs")
	writeFiles(t, dir, "water.mp4", "a.webm", "sub/happy.mp4")

	out, err := run(t, NewLinkCommand(app), dir, "--include", "*.mp4")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Water", "Happy"}, titles(t, out))
}

func TestImportBadPattern(t *testing.T) {
	app, _ := newApp(t)
	paths := writeFiles(t, t.TempDir(), "hello.mp4")

	_, err := run(t, NewImportCommand(app), append(paths, "--include", "[")...)
	assert.True(t, errors.IsValidationError(err))
}
