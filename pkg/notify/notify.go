// Package notify carries user-facing notices and confirmation prompts.
//
// The library reports outcomes as Notices rather than printing them, so each
// front end (terminal, HTTP, browser UI) decides how to show a toast. Destructive
// operations ask a Confirmer first.
package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Level is the severity of a notice.
type Level int

const (
	// LevelInfo is a neutral notice.
	LevelInfo Level = iota
	// LevelSuccess reports a completed operation.
	LevelSuccess
	// LevelWarn reports a degraded outcome the user can recover from.
	LevelWarn
	// LevelError reports a failed operation.
	LevelError
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("unknown(%d)", l)
	}
}

// Icon returns the terminal symbol for the level.
func (l Level) Icon() string {
	switch l {
	case LevelSuccess:
		return "✓"
	case LevelWarn:
		return "!"
	case LevelError:
		return "✗"
	default:
		return "i"
	}
}

// ParseLevel parses a level name.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(s) {
	case "info":
		return LevelInfo, true
	case "success":
		return LevelSuccess, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	}
	return LevelInfo, false
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Notice is a transient, user-visible message.
type Notice struct {
	Level   Level     `json:"level" yaml:"level"`
	Message string    `json:"message" yaml:"message"`
	Time    time.Time `json:"time" yaml:"time"`
}

// String returns the notice as a single terminal line.
func (n Notice) String() string {
	return n.Level.Icon() + " " + n.Message
}

// Notifier receives notices.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// NotifierFunc adapts a function to a Notifier.
type NotifierFunc func(ctx context.Context, n Notice)

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, n Notice) { f(ctx, n) }

// Discard drops every notice.
var Discard Notifier = NotifierFunc(func(context.Context, Notice) {})

// Multi fans a notice out to every notifier.
func Multi(notifiers ...Notifier) Notifier {
	return NotifierFunc(func(ctx context.Context, n Notice) {
		for _, nt := range notifiers {
			if nt != nil {
				nt.Notify(ctx, n)
			}
		}
	})
}

// Recorder keeps every notice it receives. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

// Notify implements Notifier.
func (r *Recorder) Notify(_ context.Context, n Notice) {
	r.mu.Lock()
	r.notices = append(r.notices, n)
	r.mu.Unlock()
}

// Notices returns a copy of the recorded notices.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// Last returns the most recent notice.
func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

// Reset drops recorded notices.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.notices = nil
	r.mu.Unlock()
}
