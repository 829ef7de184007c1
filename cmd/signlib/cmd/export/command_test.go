package export

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
	"github.com/agentstation/signlib/internal/export"
)

func newApp(t *testing.T) *appcontext.Mock {
	t.Helper()
	lib, err := signlib.New(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = lib.Close() })
	lib.ToggleFavorite(context.Background(), "d1")
	return &appcontext.Mock{
		LibraryFunc: func(context.Context) (*signlib.Library, error) { return lib, nil },
	}
}

func run(t *testing.T, app appcontext.Interface, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewCommand(app)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestExportMarkdown(t *testing.T) {
	out, err := run(t, newApp(t))
	require.NoError(t, err)

	assert.Contains(t, out, "# SignLib Library")
	assert.Contains(t, out, "## Summary")
	assert.Contains(t, out, "## Categories")
	assert.Contains(t, out, "Food & Drink")
	assert.Contains(t, out, "Thank You")
}

func TestExportJSONFavorites(t *testing.T) {
	out, err := run(t, newApp(t), "--type", "json", "--category", "favorites")
	require.NoError(t, err)

	var doc export.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 6, doc.Summary.Total)
	assert.Equal(t, 1, doc.Summary.Favorites)
	require.Len(t, doc.Videos, 1)
	assert.Equal(t, "Hello", doc.Videos[0].Title)
	assert.True(t, doc.Videos[0].Favorite)
}

func TestExportToFile(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "library.yaml")

	out, err := run(t, newApp(t), "--type", "yaml", "--output", dst)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(data), "title: Water")
}

func TestExportBadType(t *testing.T) {
	_, err := run(t, newApp(t), "--type", "pdf")
	assert.Error(t, err)
}
