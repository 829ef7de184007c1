package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agentstation/signlib"
	"github.com/agentstation/signlib/pkg/constants"
	"github.com/agentstation/signlib/pkg/notify"
)

type (
	changeMsg signlib.Change
	noticeMsg notify.Notice
	playedMsg struct{ err error }
)

// Bridge carries library notices and change events into the program. Pass
// it to signlib.WithNotifier when opening the library for the browser so
// notices land in the status bar instead of on stderr.
type Bridge struct {
	notices chan notify.Notice
	changes chan signlib.Change
}

// NewBridge creates a Bridge.
func NewBridge() *Bridge {
	return &Bridge{
		notices: make(chan notify.Notice, constants.ChannelBufferSize),
		changes: make(chan signlib.Change, constants.ChannelBufferSize),
	}
}

// Notify implements notify.Notifier. Notices are dropped when the program
// falls behind.
func (b *Bridge) Notify(_ context.Context, n notify.Notice) {
	select {
	case b.notices <- n:
	default:
	}
}

// Attach subscribes the bridge to lib's committed changes.
func (b *Bridge) Attach(lib *signlib.Library) {
	lib.OnChange(func(c signlib.Change) {
		select {
		case b.changes <- c:
		default:
		}
	})
}

func (b *Bridge) waitNotice() tea.Cmd {
	if b == nil {
		return nil
	}
	return func() tea.Msg {
		return noticeMsg(<-b.notices)
	}
}

func (b *Bridge) waitChange() tea.Cmd {
	if b == nil {
		return nil
	}
	return func() tea.Msg {
		return changeMsg(<-b.changes)
	}
}

var _ notify.Notifier = (*Bridge)(nil)
