package tui

import (
	"context"
	"io"
	"os/exec"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/signlib"
	"github.com/agentstation/signlib/pkg/importer"
	"github.com/agentstation/signlib/pkg/notify"
	"github.com/agentstation/signlib/pkg/query"
)

func newModel(t *testing.T, opts Options) (Model, *signlib.Library, *Bridge) {
	t.Helper()
	bridge := NewBridge()
	lib, err := signlib.New(context.Background(), signlib.WithNotifier(bridge))
	require.NoError(t, err)
	t.Cleanup(func() { _ = lib.Close() })
	bridge.Attach(lib)
	m := New(context.Background(), lib, bridge, opts)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model), lib, bridge
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func viewTitles(m Model) []string {
	out := make([]string, len(m.videos))
	for i, v := range m.videos {
		out[i] = v.Title
	}
	return out
}

func TestNewShowsDemoNewestFirst(t *testing.T) {
	m, _, _ := newModel(t, Options{})

	assert.Equal(t, []string{"Water", "A", "Happy", "One", "Thank You", "Hello"}, viewTitles(m))
	assert.Contains(t, m.View(), "All Videos")
	assert.Contains(t, m.View(), "6 videos")
}

func TestSortAndCategoryCycle(t *testing.T) {
	m, _, _ := newModel(t, Options{})

	m = press(t, m, "s")
	assert.Equal(t, query.SortOldest, m.query.Sort)
	assert.Equal(t, "Hello", viewTitles(m)[0])

	m = press(t, m, "tab")
	assert.Equal(t, query.CategoryFavorites, m.query.Category)
	assert.Empty(t, m.videos)
	assert.Contains(t, m.View(), "No favorites yet")

	m = press(t, m, "tab")
	assert.Equal(t, "Alphabet", m.query.Category)
	assert.Equal(t, []string{"A"}, viewTitles(m))

	m = press(t, m, "s", "s", "s")
	assert.Equal(t, query.SortNewest, m.query.Sort)
}

func TestSearch(t *testing.T) {
	m, _, _ := newModel(t, Options{})

	m = press(t, m, "/")
	assert.True(t, m.search.Focused())

	m = press(t, m, "h", "e", "l")
	assert.Equal(t, []string{"Hello"}, viewTitles(m))

	m = press(t, m, "enter")
	assert.False(t, m.search.Focused())

	// keys act on the table again once the input is blurred
	m = press(t, m, "s")
	assert.Equal(t, query.SortOldest, m.query.Sort)
}

func TestFavoriteToggle(t *testing.T) {
	m, lib, _ := newModel(t, Options{})

	m = press(t, m, "f")
	assert.True(t, lib.IsFavorite("d6"))
	assert.Equal(t, "♥", m.table.Rows()[0][0])

	m = press(t, m, "f")
	assert.False(t, lib.IsFavorite("d6"))
	assert.Empty(t, m.table.Rows()[0][0])
}

func TestDeleteConfirm(t *testing.T) {
	m, lib, _ := newModel(t, Options{})

	m = press(t, m, "d")
	require.NotNil(t, m.confirm)
	assert.Contains(t, m.View(), `Remove "Water"?`)

	m = press(t, m, "n")
	assert.Nil(t, m.confirm)
	assert.Equal(t, 6, lib.Catalog().Videos().Len())

	m = press(t, m, "d", "y")
	assert.Nil(t, m.confirm)
	assert.Equal(t, 5, lib.Catalog().Videos().Len())
	assert.Equal(t, "A", viewTitles(m)[0])
}

func TestClearConfirm(t *testing.T) {
	m, lib, _ := newModel(t, Options{})

	m = press(t, m, "X")
	require.NotNil(t, m.confirm)
	assert.Contains(t, m.View(), "Clear all videos?")
	assert.Contains(t, m.View(), "all 6 videos")
	assert.Contains(t, m.confirm.prompt.Message, "all 6 videos")

	m = press(t, m, "enter")
	assert.Zero(t, lib.Catalog().Videos().Len())
	assert.Contains(t, m.View(), "No videos yet")

	m = press(t, m, "X")
	assert.Nil(t, m.confirm)
}

func TestExternalChangeRefreshes(t *testing.T) {
	m, lib, bridge := newModel(t, Options{})

	lib.DeleteVideo(context.Background(), "d6")
	next, cmd := m.Update(bridge.waitChange()())
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.Len(t, m.videos, 5)
}

func TestNoticeShownInStatus(t *testing.T) {
	m, lib, bridge := newModel(t, Options{})

	lib.ToggleFavorite(context.Background(), "d1")
	next, _ := m.Update(bridge.waitNotice()())
	m = next.(Model)
	assert.Equal(t, notify.LevelSuccess, m.status.Level)
	assert.Contains(t, m.View(), "Added to favorites")
}

func TestPlayWithoutFile(t *testing.T) {
	m, _, _ := newModel(t, Options{})

	m = press(t, m, "enter")
	assert.Equal(t, "No file attached to this video", m.status.Message)
}

func TestPlayFolderLinkedInSession(t *testing.T) {
	var played []byte
	player := func(_ context.Context, p signlib.Playback) (*exec.Cmd, func(), error) {
		rc, err := p.Open()
		if err != nil {
			return nil, nil, err
		}
		defer rc.Close()
		played, err = io.ReadAll(rc)
		return exec.Command("true"), nil, err
	}
	m, lib, bridge := newModel(t, Options{Player: player, Query: query.Query{Search: "grandmother"}})

	_, err := lib.LinkFolder(context.Background(), "signs", []importer.File{
		importer.NewMemFile("grandmother.mp4", "video/mp4", []byte("gm")),
	}, importer.Defaults{})
	require.NoError(t, err)
	next, _ := m.Update(bridge.waitChange()())
	m = next.(Model)
	require.Equal(t, []string{"Grandmother"}, viewTitles(m))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)
	assert.Equal(t, "gm", string(played))
}

func TestQuit(t *testing.T) {
	m, _, _ := newModel(t, Options{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestNext(t *testing.T) {
	list := []string{"a", "b", "c"}
	assert.Equal(t, "b", next(list, "a"))
	assert.Equal(t, "a", next(list, "c"))
	assert.Equal(t, "a", next(list, "zzz"))
}
