package prompt

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/signlib/pkg/errors"
	"github.com/agentstation/signlib/pkg/notify"
)

var clearAll = notify.Confirmation{
	Icon:    "⚠️",
	Title:   "Clear all videos?",
	Message: "This will permanently remove all 3 videos from SignLib.",
	OKLabel: "Clear All",
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"yes", "y\n", true},
		{"long yes", " YES \n", true},
		{"no", "n\n", false},
		{"empty", "\n", false},
		{"eof", "", false},
		{"no newline", "y", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := New(Options{Interactive: true, In: strings.NewReader(tt.input), Out: &out})

			ok, err := c.Confirm(context.Background(), clearAll)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.Contains(t, out.String(), "Clear all videos?")
			assert.Contains(t, out.String(), "Clear All? [y/N]")
		})
	}
}

func TestConfirmAssumeYes(t *testing.T) {
	var out bytes.Buffer
	c := New(Options{AssumeYes: true, In: strings.NewReader(""), Out: &out})

	ok, err := c.Confirm(context.Background(), clearAll)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, out.String())
}

func TestConfirmNonInteractive(t *testing.T) {
	var out bytes.Buffer
	c := New(Options{In: strings.NewReader("y\n"), Out: &out})

	ok, err := c.Confirm(context.Background(), clearAll)
	assert.False(t, ok)
	assert.True(t, errors.IsDeclined(err))
	var opErr *errors.OpError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, "resource", opErr.Kind)
	assert.Equal(t, "confirm prompt Clear all videos?: declined", err.Error())
	assert.Equal(t, "Clear all videos?: pass --yes to confirm non-interactively\n", out.String())
}

func TestConfirmCanceled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	c := New(Options{Interactive: true, In: r, Out: io.Discard})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := c.Confirm(ctx, clearAll)
	assert.False(t, ok)
	assert.True(t, errors.IsCanceled(err))
}
