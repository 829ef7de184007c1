// Package matcher selects file names with glob or regex patterns.
package matcher

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/agentstation/signlib/pkg/errors"
)

// PatternType is the syntax of a pattern.
type PatternType int

const (
	// Glob uses shell-style patterns (*, ?, []).
	Glob PatternType = iota
	// Regex uses regular expressions.
	Regex
	// Auto picks Regex when the pattern uses regex-only syntax, else Glob.
	Auto
)

// String returns the name of the pattern type.
func (pt PatternType) String() string {
	switch pt {
	case Glob:
		return "glob"
	case Regex:
		return "regex"
	case Auto:
		return "auto"
	default:
		return "unknown"
	}
}

// Matcher tests names against one pattern. Matching ignores case, since
// video file names rarely agree on it.
type Matcher struct {
	pattern     string
	patternType PatternType
	glob        string
	re          *regexp.Regexp
}

// New compiles pattern.
func New(patternType PatternType, pattern string) (*Matcher, error) {
	m := &Matcher{pattern: pattern, patternType: patternType}
	if patternType == Auto {
		m.patternType = detectPatternType(pattern)
	}

	switch m.patternType {
	case Glob:
		m.glob = strings.ToLower(pattern)
		if _, err := filepath.Match(m.glob, ""); err != nil {
			return nil, errors.NewValidationError("pattern", pattern, "invalid glob pattern")
		}
	case Regex:
		re, err := regexp.Compile("(?i)" + strings.TrimPrefix(pattern, "(?i)"))
		if err != nil {
			return nil, errors.NewValidationError("pattern", pattern, "invalid regex pattern: "+err.Error())
		}
		m.re = re
	default:
		return nil, errors.NewValidationError("pattern_type", m.patternType.String(), "unsupported pattern type")
	}
	return m, nil
}

// Match reports whether name matches. A glob is tested against the base
// name, so "*.mp4" selects files in any subdirectory.
func (m *Matcher) Match(name string) bool {
	if m.re != nil {
		return m.re.MatchString(name)
	}
	ok, _ := filepath.Match(m.glob, strings.ToLower(filepath.Base(name)))
	return ok
}

// Pattern returns the pattern as given.
func (m *Matcher) Pattern() string { return m.pattern }

// Type returns the resolved pattern type.
func (m *Matcher) Type() PatternType { return m.patternType }

// regexIndicators is syntax that only makes sense as a regex.
var regexIndicators = []string{
	"^", "$", `\d`, `\w`, `\s`, `\D`, `\W`, `\S`,
	"(?:", "(?i)", "{", "}", "+", "|", "(", ")",
}

func detectPatternType(pattern string) PatternType {
	for _, indicator := range regexIndicators {
		if strings.Contains(pattern, indicator) {
			return Regex
		}
	}
	return Glob
}

// Filter keeps names that match any include pattern (or all names when
// there are none) and no exclude pattern.
type Filter struct {
	include []*Matcher
	exclude []*Matcher
}

// NewFilter compiles include and exclude patterns with type Auto.
func NewFilter(include, exclude []string) (*Filter, error) {
	f := &Filter{}
	var err error
	if f.include, err = compileAll(include); err != nil {
		return nil, err
	}
	if f.exclude, err = compileAll(exclude); err != nil {
		return nil, err
	}
	return f, nil
}

func compileAll(patterns []string) ([]*Matcher, error) {
	out := make([]*Matcher, 0, len(patterns))
	for _, p := range patterns {
		if p == "" {
			continue
		}
		m, err := New(Auto, p)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Empty reports whether the filter keeps everything.
func (f *Filter) Empty() bool {
	return f == nil || len(f.include) == 0 && len(f.exclude) == 0
}

// Keep reports whether name passes the filter.
func (f *Filter) Keep(name string) bool {
	if f.Empty() {
		return true
	}
	if len(f.include) > 0 && !anyMatch(f.include, name) {
		return false
	}
	return !anyMatch(f.exclude, name)
}

func anyMatch(ms []*Matcher, name string) bool {
	for _, m := range ms {
		if m.Match(name) {
			return true
		}
	}
	return false
}
