package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/units/pkg/dimension"
)

// browseCommand creates the interactive browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var dim string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse registered units interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter *dimension.Vector
			if dim != "" {
				v, err := parseDimension(dim)
				if err != nil {
					return err
				}
				filter = &v
			}

			env, err := c.newEnvironment(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			rows := unitRows(env.reg, filter)

			p := tea.NewProgram(NewUnitListModel(rows),
				tea.WithContext(cmd.Context()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen(),
			)
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&dim, "dimension", "d", "", "only units of this dimension")

	return cmd
}
