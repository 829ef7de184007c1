package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/agentstation/signlib/internal/cmd/output"
	"github.com/agentstation/signlib/pkg/storage"
)

// Execute runs the signlib CLI application with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "signlib",
		Short:   "Local video clip library",
		Version: a.version,
		Long: `SignLib keeps a catalog of locally stored video clips.

Register clips one at a time, in bulk, or by linking a whole folder.
Titles and categories are suggested from file names. Browse, search,
favorite and play the catalog from the command line, the terminal
browser (signlib browse) or the HTTP API (signlib serve).`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "library", Title: "Library Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "browse", Title: "Browse Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "server", Title: "Server Commands:"})

	c := a.config
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default is $HOME/.signlib.yaml)")
	pf.BoolP("verbose", "v", c.Verbose, "verbose output (shortcut for --log-level=debug)")
	pf.BoolP("quiet", "q", c.Quiet, "minimal output (shortcut for --log-level=warn)")
	pf.Bool("no-color", c.NoColor, "disable colored output")
	pf.StringP("format", "o", c.Format, "output format: table, json, yaml, wide")
	pf.String("log-level", c.LogLevel, "log level: trace, debug, info, warn, error (overrides -v/-q)")
	pf.BoolP("yes", "y", c.Yes, "approve destructive actions without prompting")
	pf.String("storage", c.StorageBackend, "storage backend: memory, file, sqlite, redis")
	pf.String("data-dir", c.StoragePath, "directory of the file and sqlite backends")

	rootCmd.SetVersionTemplate("signlib {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if path := mustGetString(cmd, "config"); path != "" {
		config, err := LoadConfigFile(path)
		if err != nil {
			return err
		}
		a.config = config
	}
	if err := a.config.UpdateFromFlags(cmd.Flags()); err != nil {
		return err
	}

	logger := NewLogger(a.config)
	a.logger = &logger

	if _, err := output.ParseFormat(a.config.Format); err != nil {
		return err
	}
	return nil
}

// UpdateFromFlags applies the flags the user set explicitly, so they take
// precedence over config file and env vars.
func (c *Config) UpdateFromFlags(fs *pflag.FlagSet) error {
	var err error
	setBool := func(name string, dst *bool) {
		if err == nil && fs.Changed(name) {
			*dst, err = fs.GetBool(name)
		}
	}
	setString := func(name string, dst *string) {
		if err == nil && fs.Changed(name) {
			*dst, err = fs.GetString(name)
		}
	}

	setBool("verbose", &c.Verbose)
	setBool("quiet", &c.Quiet)
	setBool("no-color", &c.NoColor)
	setBool("yes", &c.Yes)
	setString("format", &c.Format)
	setString("log-level", &c.LogLevel)
	setString("storage", &c.StorageBackend)
	setString("data-dir", &c.StoragePath)
	if err != nil {
		return err
	}

	if _, err := storage.ParseBackend(c.StorageBackend); err != nil {
		return err
	}
	return nil
}

// ExitOnError prints err and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
