// Package completion provides the shell completion command.
package completion

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/signlib/internal/cmd/constants"
	"github.com/agentstation/signlib/pkg/errors"
)

// NewCommand creates the completion command. It replaces cobra's default so
// the scripts carry descriptions on every shell.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <shell>",
		Short: "Generate a shell completion script",
		Long: `Generate the autocompletion script for bash, zsh, fish or powershell.
Video ids, category names and flag values complete from the library.

To load completions in your current shell session:

  bash:       source <(signlib completion bash)
  zsh:        source <(signlib completion zsh)
  fish:       signlib completion fish | source
  powershell: signlib completion powershell | Out-String | Invoke-Expression

To load completions for every new session, write the script to your
shell's completion directory, for example:

  signlib completion bash > /etc/bash_completion.d/signlib
  signlib completion zsh > "${fpath[1]}/_signlib"
  signlib completion fish > ~/.config/fish/completions/signlib.fish`,
		ValidArgs:             constants.Shells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case constants.ShellBash:
				return root.GenBashCompletionV2(out, true)
			case constants.ShellZsh:
				return root.GenZshCompletion(out)
			case constants.ShellFish:
				return root.GenFishCompletion(out, true)
			case constants.ShellPowerShell:
				return root.GenPowerShellCompletionWithDesc(out)
			}
			return errors.NewValidationError("shell", args[0], "unsupported shell")
		},
	}
}
