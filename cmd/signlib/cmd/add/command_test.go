package add

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/signlib"
	"github.com/agentstation/signlib/internal/appcontext"
	"github.com/agentstation/signlib/pkg/catalogs"
	"github.com/agentstation/signlib/pkg/errors"
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

func execute(t *testing.T, app *appcontext.Mock, args ...string) (*catalogs.Video, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewCommand(app)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		return nil, err
	}
	var v catalogs.Video
	require.NoError(t, json.Unmarshal(out.Bytes(), &v))
	return &v, nil
}

func TestAddManual(t *testing.T) {
	app, lib := newApp(t)

	v, err := execute(t, app, "--title", "Good Morning", "--category", "Greetings", "--tags", "basic, polite")
	require.NoError(t, err)

	assert.Equal(t, "Good Morning", v.Title)
	assert.Equal(t, "Greetings", v.Category)
	assert.Equal(t, []string{"basic", "polite"}, v.Tags)
	assert.Equal(t, catalogs.SourceManual, v.Source)
	assert.Equal(t, 1, lib.Catalog().Videos().Len())
}

func TestAddFileSuggestsTitleAndCategory(t *testing.T) {
	app, lib := newApp(t)
	path := filepath.Join(t.TempDir(), "thank-you_v2.mp4")
	require.NoError(t, os.WriteFile(path, []byte("mp4"), 0o600))

	v, err := execute(t, app, path)
	require.NoError(t, err)

	assert.Equal(t, "Thank You V2", v.Title)
	assert.Equal(t, "Greetings", v.Category)
	assert.Equal(t, catalogs.SourceUpload, v.Source)

	p, err := lib.Resolve(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, "video/mp4", p.MediaType())
}

func TestAddFileFlagsOverrideSuggestion(t *testing.T) {
	app, _ := newApp(t)
	path := filepath.Join(t.TempDir(), "thank-you_v2.mp4")
	require.NoError(t, os.WriteFile(path, []byte("mp4"), 0o600))

	v, err := execute(t, app, path, "--title", "Thanks", "--category", "")
	require.NoError(t, err)

	assert.Equal(t, "Thanks", v.Title)
	assert.Empty(t, v.Category)
}

func TestAddErrors(t *testing.T) {
	app, _ := newApp(t)

	_, err := execute(t, app)
	assert.True(t, errors.IsValidationError(err))

	_, err = execute(t, app, filepath.Join(t.TempDir(), "missing.mp4"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
