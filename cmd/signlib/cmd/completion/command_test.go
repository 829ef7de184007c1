package completion

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionScripts(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			root := &cobra.Command{Use: "signlib"}
			root.AddCommand(NewCommand())

			var out bytes.Buffer
			root.SetOut(&out)
			root.SetArgs([]string{"completion", shell})
			require.NoError(t, root.Execute())
			assert.Contains(t, out.String(), "signlib")
		})
	}
}

func TestCompletionUnknownShell(t *testing.T) {
	root := &cobra.Command{Use: "signlib"}
	root.AddCommand(NewCommand())
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"completion", "tcsh"})
	assert.Error(t, root.Execute())
}
