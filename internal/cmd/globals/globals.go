// Package globals provides shared flag structures and utilities for CLI commands.
package globals

import "github.com/spf13/cobra"

// Flags holds the global flags defined on the root command.
type Flags struct {
	Format  string
	Quiet   bool
	Verbose bool
	NoColor bool
	Yes     bool
}

// Parse extracts global flags from the command hierarchy. Flags missing
// from the hierarchy read as zero values.
func Parse(cmd *cobra.Command) *Flags {
	root := cmd.Root()

	format, _ := root.PersistentFlags().GetString("format")
	quiet, _ := root.PersistentFlags().GetBool("quiet")
	verbose, _ := root.PersistentFlags().GetBool("verbose")
	noColor, _ := root.PersistentFlags().GetBool("no-color")
	yes, _ := root.PersistentFlags().GetBool("yes")

	return &Flags{
		Format:  format,
		Quiet:   quiet,
		Verbose: verbose,
		NoColor: noColor,
		Yes:     yes,
	}
}
