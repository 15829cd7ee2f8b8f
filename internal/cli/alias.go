package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/units/pkg/builtin"
	"github.com/matzehuels/units/pkg/store"
)

// aliasCommand creates the alias command.
func (c *CLI) aliasCommand() *cobra.Command {
	var clearAll bool

	cmd := &cobra.Command{
		Use:   "alias <symbol> [alias...]",
		Short: "Show or replace a unit's display aliases",
		Long: `Show or replace the display aliases of a unit.

Aliases are used when rendering units for display ("miles/hr") and are
accepted by lenient parsing. Giving aliases replaces the unit's whole
alias set; an alias owned by another unit moves to this one. Aliases of
stored units are persisted; aliases of builtin units last for one run.`,
		Example: `  units alias mi
  units alias ft feet foot
  units alias ft --clear`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: c.completeSymbols,
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol, aliases := args[0], args[1:]
			if clearAll {
				aliases = nil
			}

			env, err := c.newEnvironment(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			a, err := env.reg.LookupSymbol(symbol)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(aliases) == 0 && !clearAll {
				current := env.reg.Aliases(symbol)
				if len(current) == 0 {
					printInfo(w, "%s has no aliases", StyleHighlight.Render(symbol))
					return nil
				}
				printKeyValue(w, a.Symbol(), strings.Join(current, ", "))
				return nil
			}

			next, err := env.reg.CheckAliases(symbol, aliases...)
			if err != nil {
				return err
			}
			if err := store.PutAliases(cmd.Context(), env.store, symbol, next); err != nil {
				return err
			}
			if err := env.reg.SetAliases(symbol, aliases...); err != nil {
				return err
			}

			if len(aliases) == 0 {
				printSuccess(w, "Cleared aliases of %s", StyleHighlight.Render(symbol))
			} else {
				printSuccess(w, "%s is displayed as %s", StyleHighlight.Render(symbol), StyleValue.Render(env.reg.DisplayLabel(a)))
			}
			if builtin.IsBuiltin(symbol) {
				printWarning(w, "Aliases of builtin units are not persisted")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearAll, "clear", false, "remove all aliases")

	return cmd
}
