package commands

import (
	"github.com/spf13/cobra"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for prioritizer.

To load completions:

Bash:
  $ source <(prioritizer completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ prioritizer completion bash > /etc/bash_completion.d/prioritizer
  # macOS:
  $ prioritizer completion bash > $(brew --prefix)/etc/bash_completion.d/prioritizer

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ prioritizer completion zsh > "${fpath[1]}/_prioritizer"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ prioritizer completion fish | source

  # To load completions for each session, execute once:
  $ prioritizer completion fish > ~/.config/fish/completions/prioritizer.fish

PowerShell:
  PS> prioritizer completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> prioritizer completion powershell > prioritizer.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletionV2(out, true)
		case "zsh":
			return cmd.Root().GenZshCompletion(out)
		case "fish":
			return cmd.Root().GenFishCompletion(out, true)
		default:
			return cmd.Root().GenPowerShellCompletionWithDesc(out)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
