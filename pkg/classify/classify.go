// Package classify derives a display title and a best-guess category from a
// video file name using an ordered keyword table.
//
// Matching is substring based on the lower-cased file name, extension
// included. Table order breaks ties: the first category with any matching
// keyword wins, and "Other" is returned when nothing matches.
package classify

import (
	"strings"
)

// Other is the fallback category.
const Other = "Other"

// Rule maps a category to the keywords that select it.
type Rule struct {
	Category string
	Keywords []string
}

// Table is an ordered list of rules.
type Table []Rule

// DefaultTable is the built-in keyword table. The Alphabet rule includes
// every single letter, so it captures any name with a letter that no earlier
// rule matched.
var DefaultTable = Table{
	{"Greetings", []string{"hello", "hi", "bye", "goodbye", "thank", "please", "sorry", "welcome", "good morning", "good night", "nice to meet"}},
	{"Numbers", []string{"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten", "zero", "number", "count", "digit"}},
	{"Alphabet", append([]string{"letter", "alpha", "fingerspell", "abc"}, strings.Split("abcdefghijklmnopqrstuvwxyz", "")...)},
	{"Emotions", []string{"happy", "sad", "angry", "fear", "surprise", "love", "hate", "emotion", "feel", "scared", "excited", "bored", "proud"}},
	{"Family", []string{"mother", "father", "mom", "dad", "sister", "brother", "son", "daughter", "baby", "family", "grandma", "grandpa", "uncle", "aunt", "cousin", "husband", "wife"}},
	{"Food & Drink", []string{"eat", "food", "drink", "water", "juice", "milk", "coffee", "tea", "bread", "rice", "meat", "fruit", "vegetable", "pizza", "hungry", "thirsty"}},
	{"Colors", []string{"red", "blue", "green", "yellow", "orange", "purple", "pink", "black", "white", "brown", "color", "grey", "gray"}},
	{"Questions", []string{"what", "who", "where", "when", "why", "how", "question", "ask"}},
	{"Actions", []string{"run", "walk", "jump", "sit", "stand", "go", "come", "stop", "play", "work", "sleep", "write", "read", "help", "want", "need"}},
}

// Classifier guesses categories from a table.
type Classifier struct {
	table Table
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithTable replaces the keyword table.
func WithTable(t Table) Option {
	return func(c *Classifier) {
		c.table = t
	}
}

// New creates a classifier using DefaultTable unless overridden.
func New(opts ...Option) *Classifier {
	c := &Classifier{table: DefaultTable}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GuessCategory returns the first category whose keywords appear in the
// lower-cased name, or Other.
func (c *Classifier) GuessCategory(filename string) string {
	n := strings.ToLower(filename)
	for _, rule := range c.table {
		for _, kw := range rule.Keywords {
			if strings.Contains(n, kw) {
				return rule.Category
			}
		}
	}
	return Other
}

// Classify returns the cleaned title and guessed category of filename.
func (c *Classifier) Classify(filename string) (title, category string) {
	return CleanTitle(filename), c.GuessCategory(filename)
}

// Categories returns the table's category labels in order, followed by Other.
func (c *Classifier) Categories() []string {
	out := make([]string, 0, len(c.table)+1)
	for _, rule := range c.table {
		out = append(out, rule.Category)
	}
	return append(out, Other)
}

var std = New()

// GuessCategory guesses a category with DefaultTable.
func GuessCategory(filename string) string {
	return std.GuessCategory(filename)
}

// Classify classifies filename with DefaultTable.
func Classify(filename string) (title, category string) {
	return std.Classify(filename)
}

// Categories returns the DefaultTable labels followed by Other.
func Categories() []string {
	return std.Categories()
}
