package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/signlib/cmd/signlib/cmd/add"
	"github.com/agentstation/signlib/cmd/signlib/cmd/browse"
	"github.com/agentstation/signlib/cmd/signlib/cmd/completion"
	"github.com/agentstation/signlib/cmd/signlib/cmd/export"
	"github.com/agentstation/signlib/cmd/signlib/cmd/imports"
	"github.com/agentstation/signlib/cmd/signlib/cmd/list"
	"github.com/agentstation/signlib/cmd/signlib/cmd/manage"
	"github.com/agentstation/signlib/cmd/signlib/cmd/play"
	"github.com/agentstation/signlib/cmd/signlib/cmd/serve"
	cmdcompletion "github.com/agentstation/signlib/internal/cmd/completion"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	library := []*cobra.Command{
		add.NewCommand(a),
		imports.NewImportCommand(a),
		imports.NewLinkCommand(a),
		manage.NewFavoriteCommand(a),
		manage.NewDeleteCommand(a),
		manage.NewClearCommand(a),
	}
	browsing := []*cobra.Command{
		list.NewListCommand(a),
		list.NewShowCommand(a),
		list.NewCategoriesCommand(a),
		play.NewCommand(a),
		export.NewCommand(a),
		browse.NewCommand(a),
	}

	for _, c := range library {
		c.GroupID = "library"
		rootCmd.AddCommand(c)
	}
	for _, c := range browsing {
		c.GroupID = "browse"
		rootCmd.AddCommand(c)
	}

	srv := serve.NewCommand(a)
	srv.GroupID = "server"
	rootCmd.AddCommand(srv)

	rootCmd.AddCommand(a.newVersionCommand())
	rootCmd.AddCommand(completion.NewCommand())

	cmdcompletion.Register(rootCmd, a)
}

func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("signlib %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
