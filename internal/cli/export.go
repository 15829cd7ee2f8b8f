package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/units/pkg/config"
	"github.com/matzehuels/units/pkg/registry"
)

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output string
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write unit definitions as TOML",
		Long: `Write the stored unit definitions as [[units]] tables.

The output can be loaded with "units define --file" or pasted into the
config file. With --all, builtin and configured units are included too.`,
		Example: `  units export -o units.toml
  units export --all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := c.newEnvironment(ctx)
			if err != nil {
				return err
			}
			defer env.Close()

			var defs []registry.Definition
			if all {
				defs = env.reg.Definitions()
			} else if defs, err = env.store.List(ctx); err != nil {
				return err
			}

			out, err := openOutput(output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := config.WriteDefinitions(out, defs); err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}

			if output != "" {
				printSuccess(cmd.ErrOrStderr(), "Exported %d units", len(defs))
				printFile(cmd.ErrOrStderr(), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&all, "all", false, "include builtin and configured units")

	return cmd
}
