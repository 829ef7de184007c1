// Package alerts writes library notices to the terminal.
package alerts

import "github.com/agentstation/signlib/pkg/notify"

// Color returns ANSI color codes for terminal output.
func Color(l notify.Level) string {
	switch l {
	case notify.LevelError:
		return "\033[31m" // Red
	case notify.LevelWarn:
		return "\033[33m" // Yellow
	case notify.LevelInfo:
		return "\033[36m" // Cyan
	case notify.LevelSuccess:
		return "\033[32m" // Green
	default:
		return "\033[0m"
	}
}

// ResetColor returns the ANSI reset code.
func ResetColor() string {
	return "\033[0m"
}

// severity orders levels for MinLevel filtering. Success ranks with info.
func severity(l notify.Level) int {
	switch l {
	case notify.LevelWarn:
		return 1
	case notify.LevelError:
		return 2
	default:
		return 0
	}
}
