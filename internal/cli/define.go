package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/units/pkg/builtin"
	"github.com/matzehuels/units/pkg/config"
	errs "github.com/matzehuels/units/pkg/errors"
	"github.com/matzehuels/units/pkg/registry"
	"github.com/matzehuels/units/pkg/store"
)

// defineOptions holds the flags of the define command.
type defineOptions struct {
	dimension   string
	coefficient float64
	constant    float64
	of          string
	aliases     []string
	file        string
}

// defineCommand creates the define command.
func (c *CLI) defineCommand() *cobra.Command {
	var opts defineOptions

	cmd := &cobra.Command{
		Use:   "define <name> <symbol>",
		Short: "Define and persist a new unit",
		Long: `Define a new atomic unit and save it in the configured store.

The unit's dimension is given either directly with --dimension or derived
from a unit expression with --of, in which case --coefficient scales the
expression's factor. With --file, every [[units]] table of a TOML file is
defined instead; tables may reference each other in any order.`,
		Example: `  units define centifoot cft --dimension length --coefficient 0.003048
  units define "kilowatt hour" kWh --of "W*h" --coefficient 1000
  units define furlong fur --of m --coefficient 201.168 --alias furlongs
  units define --file units.toml`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.file != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := c.newEnvironment(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			if opts.file != "" {
				return defineFile(cmd, env, opts.file)
			}

			def, err := opts.definition(args[0], args[1])
			if err != nil {
				return err
			}
			if err := env.reg.Check(def); err != nil {
				return err
			}
			if err := env.store.Put(cmd.Context(), def); err != nil {
				return err
			}
			if _, err := env.reg.Define(def); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printSuccess(w, "Defined %s (%s)", StyleHighlight.Render(def.Symbol), def.Name)
			if u, err := env.reg.Parse(def.Symbol); err == nil {
				printDetail(w, "dimension %s", u.Dimension())
			}
			printNextStep(w, "Try it", fmt.Sprintf("%s convert 1 %s <unit>", appName, def.Symbol))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.dimension, "dimension", "d", "", "dimension (e.g. length or mass,length=2,time=-2)")
	cmd.Flags().Float64VarP(&opts.coefficient, "coefficient", "c", 0, "factor to the base unit (default 1)")
	cmd.Flags().Float64Var(&opts.constant, "constant", 0, "additive offset to the base unit")
	cmd.Flags().StringVar(&opts.of, "of", "", "derive the dimension and factor from a unit expression")
	cmd.Flags().StringSliceVarP(&opts.aliases, "alias", "a", nil, "display alias (repeatable)")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "define every unit of a TOML file")
	cmd.MarkFlagsMutuallyExclusive("dimension", "of")
	cmd.MarkFlagsMutuallyExclusive("file", "dimension")
	cmd.MarkFlagsMutuallyExclusive("file", "of")

	return cmd
}

// definition builds the registry definition described by the flags.
func (o defineOptions) definition(name, symbol string) (registry.Definition, error) {
	def := registry.Definition{
		Name:        name,
		Symbol:      symbol,
		Coefficient: o.coefficient,
		Constant:    o.constant,
		Of:          o.of,
		Aliases:     o.aliases,
	}
	if o.of != "" {
		return def, nil
	}
	if o.coefficient == 0 {
		def.Coefficient = 1
	}
	if o.dimension != "" {
		dim, err := parseDimension(o.dimension)
		if err != nil {
			return registry.Definition{}, err
		}
		def.Dimension = dim.Map()
	}
	return def, nil
}

// defineFile registers the units of a definitions file and persists the
// ones that succeed. It fails when any unit was rejected.
func defineFile(cmd *cobra.Command, env *environment, path string) error {
	ctx := cmd.Context()
	defs, err := config.LoadDefinitions(path)
	if err != nil {
		return err
	}

	staged := store.NewMemoryStore()
	for _, def := range defs {
		if err := staged.Put(ctx, def); err != nil {
			return err
		}
	}
	report, err := store.Load(ctx, staged, env.reg)
	if err != nil {
		return err
	}
	if err := persist(ctx, env, staged, report.Loaded); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, symbol := range report.Loaded {
		printSuccess(w, "Defined %s", StyleHighlight.Render(symbol))
	}
	for _, f := range report.Failed {
		printError(w, "%s: %s", f.Symbol, errs.UserMessage(f.Err))
	}
	if len(report.Failed) > 0 {
		return errs.New(errs.ErrCodeInvalidInput, "%d of %d units in %s were rejected", len(report.Failed), len(defs), path)
	}
	return nil
}

func persist(ctx context.Context, env *environment, staged store.Store, symbols []string) error {
	for _, symbol := range symbols {
		def, err := staged.Get(ctx, symbol)
		if err != nil {
			return err
		}
		if err := env.store.Put(ctx, def); err != nil {
			return err
		}
	}
	return nil
}

// undefineCommand creates the undefine command.
func (c *CLI) undefineCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "undefine <symbol>",
		Short: "Remove a persisted unit",
		Long: `Remove a user-defined unit from the configured store.

Registries are append-only, so the unit disappears on the next run. Builtin
units cannot be removed.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeSymbols,
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := args[0]
			if builtin.IsBuiltin(symbol) {
				return errs.New(errs.ErrCodeUnsupported, "unit %q is builtin and cannot be removed", symbol)
			}

			ctx := cmd.Context()
			s, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Delete(ctx, symbol); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Removed %s", StyleHighlight.Render(symbol))
			return nil
		},
	}
}
