// Package emoji provides the symbols the CLI prints, so every command uses
// the same visual language.
package emoji

const (
	// Success marks a completed operation or an available tool.
	Success = "✓"

	// Error marks a failure or a missing tool.
	Error = "✗"

	// Stop marks a shutdown.
	Stop = "✗"

	// Warning marks a non-fatal problem.
	Warning = "!"

	// Favorite marks a favorite video in tables and reports.
	Favorite = "♥"
)
