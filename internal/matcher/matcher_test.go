package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/signlib/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		pt       PatternType
		pattern  string
		wantType PatternType
		wantErr  bool
	}{
		{"glob", Glob, "*.mp4", Glob, false},
		{"regex", Regex, `^hello`, Regex, false},
		{"auto glob", Auto, "lesson-?.webm", Glob, false},
		{"auto regex", Auto, `^(hello|bye)\.mp4$`, Regex, false},
		{"auto plain", Auto, "hello.mp4", Glob, false},
		{"bad glob", Glob, "[", Glob, true},
		{"bad regex", Regex, "(", Regex, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.pt, tt.pattern)
			if tt.wantErr {
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, m.Type())
			assert.Equal(t, tt.pattern, m.Pattern())
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"*.mp4", "hello.mp4", true},
		{"*.mp4", "HELLO.MP4", true},
		{"*.mp4", "lessons/week1/hello.mp4", true},
		{"*.mp4", "hello.webm", false},
		{"week?-*", "week1-hello.mov", true},
		{`^thank`, "Thank-You.mp4", true},
		{`\d+\.webm$`, "counting-10.webm", true},
		{`\d+\.webm$`, "counting.webm", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.input, func(t *testing.T) {
			m, err := New(Auto, tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Match(tt.input))
		})
	}
}

func TestFilter(t *testing.T) {
	names := []string{"hello.mp4", "bye.mp4", "draft-hello.mp4", "one.webm", "notes.txt"}
	keep := func(f *Filter) []string {
		var out []string
		for _, n := range names {
			if f.Keep(n) {
				out = append(out, n)
			}
		}
		return out
	}

	t.Run("empty keeps all", func(t *testing.T) {
		f, err := NewFilter(nil, []string{""})
		require.NoError(t, err)
		assert.True(t, f.Empty())
		assert.Equal(t, names, keep(f))
	})

	t.Run("include", func(t *testing.T) {
		f, err := NewFilter([]string{"*.mp4"}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"hello.mp4", "bye.mp4", "draft-hello.mp4"}, keep(f))
	})

	t.Run("include and exclude", func(t *testing.T) {
		f, err := NewFilter([]string{"*.mp4", "*.webm"}, []string{"draft-*"})
		require.NoError(t, err)
		assert.Equal(t, []string{"hello.mp4", "bye.mp4", "one.webm"}, keep(f))
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := NewFilter(nil, []string{"["})
		assert.Error(t, err)
	})

	t.Run("nil filter", func(t *testing.T) {
		var f *Filter
		assert.True(t, f.Keep("anything"))
	})
}
