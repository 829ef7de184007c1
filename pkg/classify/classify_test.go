package classify_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/signlib/pkg/classify"
)

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"dash and underscore", "thank-you_v2.mp4", "Thank You V2"},
		{"plain", "hello.mp4", "Hello"},
		{"no extension", "noext", "Noext"},
		{"only last extension", "archive.tar.gz", "Archive.Tar"},
		{"trailing dot kept", "file.", "File."},
		{"hidden file", ".hidden", ""},
		{"inner spaces kept", "  spaced  name .mp4", "Spaced  Name"},
		{"existing capitals kept", "iPhone_CLIP.MOV", "IPhone CLIP"},
		{"digits start words", "lesson-2b.webm", "Lesson 2b"},
		{"accented letters end words", "crème-brûlée.mp4", "CrèMe BrûLéE"},
		{"non-ascii inside a word", "naïve_sign.mp4", "NaïVe Sign"},
		{"non-ascii first", "über.mp4", "üBer"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify.CleanTitle(tt.in))
		})
	}
}

func TestCleanTitleIdempotent(t *testing.T) {
	inputs := []string{"good morning", "Nice To Meet You", "a b c", "x", "über cool", "  padded  "}
	for _, in := range inputs {
		out := classify.CleanTitle(in)
		assert.False(t, strings.ContainsAny(out, ".-_"))
		assert.Equal(t, out, classify.CleanTitle(out), "re-applying to %q", out)
	}
}

func TestGuessCategory(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"greeting", "hello.mp4", "Greetings"},
		{"multi-word keyword", "GOOD MORNING.mov", "Greetings"},
		{"substring inside token", "unsorryable.webm", "Greetings"},
		{"hi inside this", "this.mp4", "Greetings"},
		{"number", "SEVEN.MP4", "Numbers"},
		{"earlier rule wins", "thank-you-one.mp4", "Greetings"},
		{"alphabet catches letters", "happy.mp4", "Alphabet"},
		{"fingerspell", "fingerspelling.mkv", "Alphabet"},
		{"no letters", "1234.5678", "Other"},
		{"empty", "", "Other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify.GuessCategory(tt.in))
		})
	}
}

func TestClassify(t *testing.T) {
	title, category := classify.Classify("thank-you_v2.mp4")
	assert.Equal(t, "Thank You V2", title)
	assert.Equal(t, "Greetings", category)
}

func TestClassifierWithTable(t *testing.T) {
	c := classify.New(classify.WithTable(classify.Table{
		{Category: "Emotions", Keywords: []string{"happy", "sad"}},
		{Category: "Colors", Keywords: []string{"red"}},
	}))

	tests := map[string]string{
		"happy.mp4":      "Emotions",
		"red-sad.mp4":    "Emotions",
		"red.mp4":        "Colors",
		"greetings.mp4":  "Other",
		"BORED_SAD.webm": "Emotions",
	}
	for in, want := range tests {
		assert.Equal(t, want, c.GuessCategory(in), in)
	}
	assert.Equal(t, []string{"Emotions", "Colors", "Other"}, c.Categories())
}

func TestCategories(t *testing.T) {
	cats := classify.Categories()
	assert.Equal(t, "Greetings", cats[0])
	assert.Equal(t, classify.Other, cats[len(cats)-1])
	assert.Len(t, cats, 10)
	assert.Contains(t, cats, "Food & Drink")
}

func TestSingleKeywordCategories(t *testing.T) {
	// Each name contains keywords of exactly one rule once letters are ignored.
	c := classify.New(classify.WithTable(withoutLetters(classify.DefaultTable)))
	tests := map[string]string{
		"mother.mp4":  "Family",
		"coffee.mp4":  "Food & Drink",
		"purple.mp4":  "Colors",
		"where.mp4":   "Questions",
		"jump.mp4":    "Actions",
		"excited.mp4": "Emotions",
		"zzz.mp4":     "Other",
	}
	for in, want := range tests {
		assert.Equal(t, want, c.GuessCategory(in), in)
	}
}

func withoutLetters(t classify.Table) classify.Table {
	out := make(classify.Table, 0, len(t))
	for _, r := range t {
		var kws []string
		for _, kw := range r.Keywords {
			if len(kw) > 1 {
				kws = append(kws, kw)
			}
		}
		out = append(out, classify.Rule{Category: r.Category, Keywords: kws})
	}
	return out
}
