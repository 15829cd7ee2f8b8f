package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/units/pkg/errors"
)

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var precision int

	cmd := &cobra.Command{
		Use:   "convert <value> <from> <to>",
		Short: "Convert a value between units",
		Long: `Convert a value from one unit expression to another.

Both expressions must have the same dimension. Affine units such as degC
can only be converted on their own, not as part of a composite.`,
		Example: `  units convert 6 in cm
  units convert 60 mi/h m/s
  units convert 1 "kg*m/s^2" N
  units convert -- -40 degF degC`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return errs.Wrap(errs.ErrCodeInvalidInput, err, "value %q is not a number", args[0])
			}

			env, err := c.newEnvironment(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			conv, err := env.reg.Convert(value, args[1], args[2])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s %s\n",
				StyleValue.Render(formatNumber(value, -1)),
				StyleHighlight.Render(env.reg.Display(conv.From)),
				StyleDim.Render("="),
				StyleNumber.Render(formatNumber(conv.Value, precision)),
				StyleHighlight.Render(env.reg.Display(conv.To)),
			)
			return err
		},
	}

	cmd.Flags().IntVarP(&precision, "precision", "p", -1, "significant digits of the result (-1 for shortest exact)")

	return cmd
}
