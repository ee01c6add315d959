package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for elecciones. Completions cover
subcommands, flags, election types and chart names.

To load completions:

Bash:
  $ source <(elecciones completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ elecciones completion bash > /etc/bash_completion.d/elecciones
  # macOS:
  $ elecciones completion bash > $(brew --prefix)/etc/bash_completion.d/elecciones

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ elecciones completion zsh > "${fpath[1]}/_elecciones"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ elecciones completion fish | source

  # To load completions for each session, execute once:
  $ elecciones completion fish > ~/.config/fish/completions/elecciones.fish

PowerShell:
  PS> elecciones completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> elecciones completion powershell > elecciones.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(stdout)
			}
			return nil
		},
	}

	return cmd
}
