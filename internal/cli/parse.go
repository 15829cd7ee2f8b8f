package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/units/pkg/registry"
	"github.com/matzehuels/units/pkg/unit"
)

// parseCommand creates the parse command.
func (c *CLI) parseCommand() *cobra.Command {
	var lenient bool

	cmd := &cobra.Command{
		Use:   "parse <expression>",
		Short: "Parse a unit expression",
		Long: `Parse a unit expression and print its canonical symbol, long name,
dimension and conversion factor.

By default only canonical symbols are accepted. With --lenient, atoms may
also be given by long name or display alias ("mile/hour", "mi/hr").`,
		Example: `  units parse "kg*m/s^2"
  units parse --lenient "foot/second^2"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := c.newEnvironment(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			parse := env.reg.Parse
			if lenient {
				parse = env.reg.ParseLenient
			}
			u, err := parse(args[0])
			if err != nil {
				return err
			}
			printUnit(cmd.OutOrStdout(), env.reg, u)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&lenient, "lenient", "l", false, "resolve long names and aliases")

	return cmd
}

// printUnit prints the key facts about u.
func printUnit(w io.Writer, reg *registry.Registry, u unit.Unit) {
	printKeyValue(w, "symbol", u.Symbol())
	printKeyValue(w, "name", u.Name())
	if display := reg.Display(u); display != u.Symbol() {
		printKeyValue(w, "display", display)
	}
	printKeyValue(w, "kind", u.Kind().String())
	printKeyValue(w, "dimension", u.Dimension().String())

	if factor, err := u.Factor(); err == nil {
		printKeyValue(w, "factor", formatNumber(factor, -1))
	} else {
		printKeyValue(w, "factor", StyleWarning.Render("non-linear"))
	}
	if a, ok := u.Atomic(); ok && !a.IsLinear() {
		printKeyValue(w, "offset", formatNumber(a.Constant(), -1))
	}

	if u.Kind() == unit.KindComposite {
		for _, t := range u.Terms() {
			printDetail(w, "%s^%d  %s", t.Atomic.Symbol(), t.Exp, t.Atomic.Dimension())
		}
	}
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns stdout when path is empty, otherwise it creates the
// file at path, overwriting it if it exists.
func openOutput(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	return f, nil
}
