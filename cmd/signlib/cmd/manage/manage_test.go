package manage

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/signlib"
	"github.com/agentstation/signlib/internal/appcontext"
	"github.com/agentstation/signlib/pkg/errors"
	"github.com/agentstation/signlib/pkg/notify"
)

func newApp(t *testing.T, format string, confirmer notify.Confirmer) (*appcontext.Mock, *signlib.Library) {
	t.Helper()
	lib, err := signlib.New(context.Background(), signlib.WithConfirmer(confirmer))
	require.NoError(t, err)
	t.Cleanup(func() { _ = lib.Close() })
	return &appcontext.Mock{
		LibraryFunc:      func(context.Context) (*signlib.Library, error) { return lib, nil },
		OutputFormatFunc: func() string { return format },
	}, lib
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func decode(t *testing.T, s string) Result {
	t.Helper()
	var r Result
	require.NoError(t, json.Unmarshal([]byte(s), &r))
	return r
}

func TestFavorite(t *testing.T) {
	app, lib := newApp(t, "json", notify.AlwaysDecline)

	out, _, err := run(t, NewFavoriteCommand(app), "d4")
	require.NoError(t, err)
	r := decode(t, out)
	require.NotNil(t, r.Favorite)
	assert.True(t, *r.Favorite)
	assert.True(t, lib.IsFavorite("d4"))

	out, _, err = run(t, NewFavoriteCommand(app), "d4")
	require.NoError(t, err)
	assert.False(t, *decode(t, out).Favorite)

	_, _, err = run(t, NewFavoriteCommand(app), "missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestDeleteConfirmed(t *testing.T) {
	var asked notify.Confirmation
	confirm := notify.ConfirmerFunc(func(_ context.Context, c notify.Confirmation) (bool, error) {
		asked = c
		return true, nil
	})
	app, lib := newApp(t, "json", confirm)

	out, _, err := run(t, NewDeleteCommand(app), "d1")
	require.NoError(t, err)

	r := decode(t, out)
	assert.Equal(t, "d1", r.ID)
	assert.True(t, *r.Deleted)
	assert.Equal(t, `Remove "Hello"?`, asked.Title)
	assert.Equal(t, 5, lib.Catalog().Videos().Len())
}

func TestDeleteDeclined(t *testing.T) {
	app, lib := newApp(t, "table", notify.AlwaysDecline)

	out, errOut, err := run(t, NewDeleteCommand(app), "d1")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, "Cancelled.\n", errOut)
	assert.Equal(t, 6, lib.Catalog().Videos().Len())
}

func TestDeleteUnknown(t *testing.T) {
	app, _ := newApp(t, "json", notify.AlwaysConfirm)

	_, _, err := run(t, NewDeleteCommand(app), "nope")
	assert.True(t, errors.IsNotFound(err))
}

func TestDeleteConfirmError(t *testing.T) {
	refuse := notify.ConfirmerFunc(func(context.Context, notify.Confirmation) (bool, error) {
		return false, errors.ErrDeclined
	})
	app, lib := newApp(t, "json", refuse)

	_, _, err := run(t, NewDeleteCommand(app), "d1")
	assert.True(t, errors.IsDeclined(err))
	assert.Equal(t, 6, lib.Catalog().Videos().Len())
}

func TestClear(t *testing.T) {
	app, lib := newApp(t, "yaml", notify.AlwaysConfirm)

	out, _, err := run(t, NewClearCommand(app))
	require.NoError(t, err)
	assert.Contains(t, out, "cleared: true")
	assert.Zero(t, lib.Catalog().Videos().Len())
}
