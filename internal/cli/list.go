package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/units/pkg/builtin"
	"github.com/matzehuels/units/pkg/dimension"
	errs "github.com/matzehuels/units/pkg/errors"
	"github.com/matzehuels/units/pkg/registry"
)

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	var (
		dim      string
		userOnly bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered units",
		Long: `List registered units with their dimension, factor and aliases.

--dimension filters by an exact dimension, written as comma-separated
base dimensions with optional exponents.`,
		Example: `  units list
  units list --dimension length
  units list --dimension length,time=-1
  units list --user`,
		Args: cobra.NoArgs,
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
			if userOnly {
				rows = userRows(rows)
			}
			w := cmd.OutOrStdout()
			if len(rows) == 0 {
				printInfo(w, "No units match")
				return nil
			}
			fmt.Fprintln(w, unitTable(rows).Render())
			printDetail(w, "%d units", len(rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dim, "dimension", "d", "", "only units of this dimension (e.g. length,time=-1)")
	cmd.Flags().BoolVar(&userOnly, "user", false, "only units that are not builtin")

	return cmd
}

// =============================================================================
// Unit Rows
// =============================================================================

// unitRow is the display form of one registered unit.
type unitRow struct {
	Symbol    string
	Name      string
	Dimension string
	Factor    string
	Offset    string
	Aliases   string
	Builtin   bool
}

func (r unitRow) cells() []string {
	return []string{r.Symbol, r.Name, r.Dimension, r.Factor, r.Offset, r.Aliases}
}

// matches reports whether q occurs in the row's symbol, name or aliases.
func (r unitRow) matches(q string) bool {
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(r.Symbol), q) ||
		strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.Aliases), q)
}

// unitRows returns one row per registered unit in definition order, keeping
// only units of dimension filter when it is set.
func unitRows(reg *registry.Registry, filter *dimension.Vector) []unitRow {
	var rows []unitRow
	for _, a := range reg.Units() {
		if filter != nil && !a.Dimension().Equal(*filter) {
			continue
		}
		offset := ""
		if !a.IsLinear() {
			offset = formatNumber(a.Constant(), -1)
		}
		rows = append(rows, unitRow{
			Symbol:    a.Symbol(),
			Name:      a.Name(),
			Dimension: a.Dimension().String(),
			Factor:    formatNumber(a.Coefficient(), 6),
			Offset:    offset,
			Aliases:   strings.Join(reg.Aliases(a.Symbol()), ", "),
			Builtin:   builtin.IsBuiltin(a.Symbol()),
		})
	}
	return rows
}

func userRows(rows []unitRow) []unitRow {
	var out []unitRow
	for _, r := range rows {
		if !r.Builtin {
			out = append(out, r)
		}
	}
	return out
}

// unitTable renders rows as a bordered table. User-defined units are
// highlighted.
func unitTable(rows []unitRow) *table.Table {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = r.cells()
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Symbol", "Name", "Dimension", "Factor", "Offset", "Aliases").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row < 0 || row >= len(rows) {
				return headerStyle.Padding(0, 1)
			}
			switch {
			case col == 0 && !rows[row].Builtin:
				return cell.Foreground(colorGreen).Bold(true)
			case col == 0:
				return cell.Foreground(colorCyan)
			case col == 2 || col == 5:
				return cell.Foreground(colorGray)
			}
			return cell
		})
}

// =============================================================================
// Dimension Flags
// =============================================================================

// parseDimension parses "length,time=-2" into a dimension vector. A base
// dimension without "=" has exponent 1; repeated dimensions add up.
func parseDimension(s string) (dimension.Vector, error) {
	exps := make(map[string]int)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, exp, found := strings.Cut(part, "=")
		id = strings.TrimSpace(id)
		if id == "" {
			return dimension.Vector{}, errs.New(errs.ErrCodeInvalidInput, "dimension %q has an empty name", part)
		}
		n := 1
		if found {
			var err error
			if n, err = strconv.Atoi(strings.TrimSpace(exp)); err != nil {
				return dimension.Vector{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "dimension exponent %q", exp)
			}
		}
		exps[id] += n
	}
	return dimension.FromMap(exps)
}
