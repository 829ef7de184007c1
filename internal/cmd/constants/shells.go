// Package constants provides shared constants for CLI commands.
package constants

// Shells that completion scripts can be generated for.
const (
	ShellBash       = "bash"
	ShellZsh        = "zsh"
	ShellFish       = "fish"
	ShellPowerShell = "powershell"
)

// Shells lists the supported shells.
var Shells = []string{ShellBash, ShellZsh, ShellFish, ShellPowerShell}
