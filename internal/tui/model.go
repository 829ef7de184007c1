// Package tui is the interactive terminal browser for a SignLib library.
package tui

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agentstation/signlib"
	"github.com/agentstation/signlib/internal/cmd/emoji"
	cmdtable "github.com/agentstation/signlib/internal/cmd/table"
	"github.com/agentstation/signlib/pkg/catalogs"
	"github.com/agentstation/signlib/pkg/notify"
	"github.com/agentstation/signlib/pkg/query"
)

var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))
	inputStyle = lipgloss.NewStyle().
			Margin(1, 0, 0, 0)
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
	levelStyles = map[notify.Level]lipgloss.Style{
		notify.LevelInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		notify.LevelSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		notify.LevelWarn:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		notify.LevelError:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

// PlayFunc builds the external player process for a playback. The cleanup
// func runs after the process exits.
type PlayFunc func(ctx context.Context, p signlib.Playback) (cmd *exec.Cmd, cleanup func(), err error)

// Options configures the browser.
type Options struct {
	// Player launches playback on enter. Nil disables playback.
	Player PlayFunc
	// Query is the initial view.
	Query query.Query
}

type confirmation struct {
	prompt notify.Confirmation
	run    func()
}

// Model is the bubbletea model of the browser.
type Model struct {
	ctx     context.Context
	lib     *signlib.Library
	bridge  *Bridge
	opts    Options
	search  textinput.Model
	table   table.Model
	query   query.Query
	videos  []*catalogs.Video
	status  notify.Notice
	confirm *confirmation
	width   int
}

// New creates the browser model over lib. The bridge must be attached to
// lib for external changes to show up.
func New(ctx context.Context, lib *signlib.Library, bridge *Bridge, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Search title, category or tags"
	ti.Prompt = "🔍 "
	ti.CharLimit = 128
	ti.SetValue(opts.Query.Search)

	tbl := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	tbl.SetStyles(styles)

	q := opts.Query
	if q.Category == "" {
		q.Category = query.CategoryAll
	}
	if q.Sort == "" {
		q.Sort = query.SortNewest
	}

	m := Model{
		ctx:    ctx,
		lib:    lib,
		bridge: bridge,
		opts:   opts,
		search: ti,
		table:  tbl,
		query:  q,
	}
	m.refresh()
	return m
}

func columns(width int) []table.Column {
	title := max(16, width-70)
	return []table.Column{
		{Title: emoji.Favorite, Width: 2},
		{Title: "Title", Width: title},
		{Title: "Category", Width: 14},
		{Title: "Tags", Width: 20},
		{Title: "Source", Width: 8},
		{Title: "Added", Width: 16},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.bridge.waitNotice(), m.bridge.waitChange())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetColumns(columns(msg.Width))
		m.table.SetHeight(max(3, msg.Height-10))
		return m, nil
	case changeMsg:
		m.refresh()
		return m, m.bridge.waitChange()
	case noticeMsg:
		m.status = notify.Notice(msg)
		return m, m.bridge.waitNotice()
	case playedMsg:
		if msg.err != nil {
			m.status = notify.Notice{Level: notify.LevelError, Message: "Player failed: " + msg.err.Error()}
		}
		return m, nil
	case tea.KeyMsg:
		switch {
		case m.confirm != nil:
			return m.updateConfirm(msg)
		case m.search.Focused():
			return m.updateSearch(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Confirm):
		run := m.confirm.run
		m.confirm = nil
		run()
		m.refresh()
	case key.Matches(msg, keys.Cancel), key.Matches(msg, keys.Quit):
		m.confirm = nil
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Done) {
		m.search.Blur()
		m.table.Focus()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.query.Search != m.search.Value() {
		m.query.Search = m.search.Value()
		m.refresh()
		m.table.GotoTop()
	}
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Search):
		m.table.Blur()
		m.search.Focus()
		return m, textinput.Blink
	case key.Matches(msg, keys.Category):
		m.query.Category = next(m.categories(), m.query.Category)
		m.refresh()
		m.table.GotoTop()
		return m, nil
	case key.Matches(msg, keys.Sort):
		m.query.Sort = next(query.Sorts, m.query.Sort)
		m.refresh()
		return m, nil
	case key.Matches(msg, keys.Favorite):
		if v := m.selected(); v != nil {
			m.lib.ToggleFavorite(m.ctx, v.ID)
			m.refresh()
		}
		return m, nil
	case key.Matches(msg, keys.Delete):
		if v := m.selected(); v != nil {
			id := v.ID
			m.confirm = &confirmation{
				prompt: signlib.DeleteConfirmation(v),
				run:    func() { m.lib.DeleteVideo(m.ctx, id) },
			}
		}
		return m, nil
	case key.Matches(msg, keys.Clear):
		if n := m.lib.Catalog().Videos().Len(); n > 0 {
			m.confirm = &confirmation{
				prompt: signlib.ClearConfirmation(n),
				run:    func() { m.lib.ClearAll(m.ctx) },
			}
		}
		return m, nil
	case key.Matches(msg, keys.Play):
		return m.play()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) play() (tea.Model, tea.Cmd) {
	v := m.selected()
	if v == nil {
		return m, nil
	}
	p, err := m.lib.Resolve(m.ctx, v.ID)
	if err != nil {
		m.status = notify.Notice{Level: notify.LevelError, Message: err.Error()}
		return m, nil
	}
	if p.Empty() {
		// folder records already raised the relink warning
		if !v.IsFolder() {
			m.status = notify.Notice{Level: notify.LevelInfo, Message: "No file attached to this video"}
		}
		return m, nil
	}
	if m.opts.Player == nil {
		m.status = notify.Notice{Level: notify.LevelWarn, Message: "No player configured"}
		return m, nil
	}
	cmd, cleanup, err := m.opts.Player(m.ctx, p)
	if err != nil {
		m.status = notify.Notice{Level: notify.LevelError, Message: err.Error()}
		return m, nil
	}
	return m, tea.ExecProcess(cmd, func(err error) tea.Msg {
		if cleanup != nil {
			cleanup()
		}
		return playedMsg{err: err}
	})
}

// refresh re-derives the view from the library.
func (m *Model) refresh() {
	m.videos = m.lib.Query(m.query)
	favs := m.lib.Catalog().Favorites()
	rows := make([]table.Row, len(m.videos))
	for i, v := range m.videos {
		heart := ""
		if favs.Has(v.ID) {
			heart = emoji.Favorite
		}
		rows[i] = table.Row{
			heart,
			v.Title,
			v.DisplayCategory(),
			cmdtable.FormatTags(v.Tags),
			v.Source.Label(),
			v.Created().Format("2006-01-02 15:04"),
		}
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m Model) selected() *catalogs.Video {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.videos) {
		return nil
	}
	return m.videos[i]
}

func (m Model) categories() []string {
	cats := []string{query.CategoryAll, query.CategoryFavorites}
	for _, c := range m.lib.Summary().Categories {
		cats = append(cats, c.Name)
	}
	return cats
}

// next returns the element after cur, wrapping. An unknown cur yields the first.
func next[T comparable](list []T, cur T) T {
	for i, v := range list {
		if v == cur {
			return list[(i+1)%len(list)]
		}
	}
	return list[0]
}

// View implements tea.Model.
func (m Model) View() string {
	if m.confirm != nil {
		return m.viewConfirm()
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("SignLib · " + query.Title(m.query.Category)))
	fmt.Fprintf(&b, "  %s · %d video%s", m.query.Sort.Label(), len(m.videos), plural(len(m.videos)))
	if name, files := m.lib.Folder(); name != "" {
		fmt.Fprintf(&b, " · 📁 %s (%d)", name, files)
	}
	b.WriteString("\n")
	b.WriteString(inputStyle.Render(m.search.View()))
	b.WriteString("\n")
	if len(m.videos) == 0 {
		b.WriteString(baseStyle.Render(m.emptyText()))
	} else {
		b.WriteString(baseStyle.Render(m.table.View()))
	}
	b.WriteString("\n")
	if m.status.Message != "" {
		b.WriteString(levelStyles[m.status.Level].Render(m.status.String()))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(helpLine()))
	return b.String()
}

func (m Model) emptyText() string {
	switch {
	case m.query.Search != "":
		return "No videos match \"" + m.query.Search + "\""
	case m.query.Category == query.CategoryFavorites:
		return "No favorites yet. Press f on a video to add one."
	default:
		return "No videos yet. Add some with signlib add, import or link."
	}
}

func (m Model) viewConfirm() string {
	c := m.confirm.prompt
	label := c.OKLabel
	if label == "" {
		label = "OK"
	}
	body := fmt.Sprintf("%s  %s\n\n%s\n\n[y] %s   [n] Cancel", c.Icon, headerStyle.Render(c.Title), c.Message, label)
	return modalStyle.Width(min(72, max(40, m.width-4))).Render(body)
}

func helpLine() string {
	parts := make([]string, 0, len(keys.help()))
	for _, k := range keys.help() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// Run starts the browser on the terminal and blocks until the user quits.
func Run(ctx context.Context, lib *signlib.Library, bridge *Bridge, opts Options) error {
	p := tea.NewProgram(New(ctx, lib, bridge, opts), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
