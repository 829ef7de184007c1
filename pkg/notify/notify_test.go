package notify_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/signlib/pkg/notify"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		level notify.Level
		name  string
		icon  string
	}{
		{notify.LevelInfo, "info", "i"},
		{notify.LevelSuccess, "success", "✓"},
		{notify.LevelWarn, "warn", "!"},
		{notify.LevelError, "error", "✗"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.level.String())
			assert.Equal(t, tt.icon, tt.level.Icon())
			parsed, ok := notify.ParseLevel(tt.name)
			assert.True(t, ok)
			assert.Equal(t, tt.level, parsed)
		})
	}

	_, ok := notify.ParseLevel("fatal")
	assert.False(t, ok)
}

func TestNoticeJSON(t *testing.T) {
	data, err := json.Marshal(notify.Notice{Level: notify.LevelWarn, Message: "careful"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"level":"warn"`)
	assert.Equal(t, "! careful", notify.Notice{Level: notify.LevelWarn, Message: "careful"}.String())
}

func TestMultiAndRecorder(t *testing.T) {
	a, b := &notify.Recorder{}, &notify.Recorder{}
	n := notify.Multi(a, nil, b, notify.Discard)

	n.Notify(context.Background(), notify.Notice{Message: "one"})
	n.Notify(context.Background(), notify.Notice{Message: "two"})

	assert.Len(t, a.Notices(), 2)
	last, ok := b.Last()
	require.True(t, ok)
	assert.Equal(t, "two", last.Message)

	a.Reset()
	_, ok = a.Last()
	assert.False(t, ok)
}

func TestConfirmers(t *testing.T) {
	ctx := context.Background()
	c := notify.Confirmation{Title: "Clear all videos?"}

	ok, err := notify.AlwaysConfirm.Confirm(ctx, c)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = notify.AlwaysDecline.Confirm(ctx, c)
	require.NoError(t, err)
	assert.False(t, ok)

	var seen string
	ok, err = notify.ConfirmerFunc(func(_ context.Context, c notify.Confirmation) (bool, error) {
		seen = c.Title
		return true, nil
	}).Confirm(ctx, c)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Clear all videos?", seen)
}
