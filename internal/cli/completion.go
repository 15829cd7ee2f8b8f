package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for units.

To load completions:

Bash:
  $ source <(units completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ units completion bash > /etc/bash_completion.d/units
  # macOS:
  $ units completion bash > $(brew --prefix)/etc/bash_completion.d/units

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ units completion zsh > "${fpath[1]}/_units"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ units completion fish | source

  # To load completions for each session, execute once:
  $ units completion fish > ~/.config/fish/completions/units.fish

PowerShell:
  PS> units completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> units completion powershell > units.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completeSymbols completes the first argument with registered unit
// symbols. Completion runs without the root pre-run, so it loads the
// config itself and stays silent on failure.
func (c *CLI) completeSymbols(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if err := c.loadConfig(); err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	env, err := c.newEnvironment(withLogger(cmd.Context(), c.Logger))
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer env.Close()

	var symbols []string
	for _, a := range env.reg.Units() {
		symbols = append(symbols, a.Symbol())
	}
	return symbols, cobra.ShellCompDirectiveNoFileComp
}
