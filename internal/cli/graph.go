package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/units/pkg/errors"
	"github.com/matzehuels/units/pkg/render"
	"github.com/matzehuels/units/pkg/unit"
)

// Graph output formats.
const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPDF = "pdf"
	formatPNG = "png"
)

// graphOptions holds the flags of the graph command.
type graphOptions struct {
	format   string
	output   string
	detailed bool
	scale    float64
}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOptions

	cmd := &cobra.Command{
		Use:   "graph <expression>",
		Short: "Render the composition of a unit expression",
		Long: `Render a unit expression as a graph of its atomic units and their base
dimensions. Edges from the unit to its atoms carry the exponents.

DOT and SVG are built in. PDF and PNG require rsvg-convert (librsvg).`,
		Example: `  units graph "kg*m/s^2"
  units graph N -f svg -o newton.svg
  units graph "mi/h" --detailed -f png -o speed.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := strings.ToLower(opts.format)
			switch format {
			case formatDOT, formatSVG, formatPDF, formatPNG:
			default:
				return errs.New(errs.ErrCodeInvalidInput, "unknown format %q (want dot, svg, pdf or png)", opts.format)
			}

			ctx := cmd.Context()
			env, err := c.newEnvironment(ctx)
			if err != nil {
				return err
			}
			defer env.Close()

			u, err := env.reg.ParseLenient(args[0])
			if err != nil {
				return err
			}
			data, err := renderGraph(ctx, u, format, render.Options{
				Detailed: opts.detailed,
				Label:    env.reg.DisplayLabel,
			}, opts.scale)
			if err != nil {
				return err
			}

			out, err := openOutput(opts.output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if _, err := out.Write(data); err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}

			if opts.output != "" {
				loggerFromContext(ctx).Infof("Rendered %s", u.Symbol())
				printFile(cmd.ErrOrStderr(), opts.output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", formatDOT, "output format: dot, svg, pdf, png")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show names and factors on atom nodes")
	cmd.Flags().Float64Var(&opts.scale, "scale", 2, "PNG scale factor")

	return cmd
}

// renderGraph produces the graph of u in the given format.
func renderGraph(ctx context.Context, u unit.Unit, format string, opts render.Options, scale float64) ([]byte, error) {
	dot := render.ToDOT(u, opts)
	if format == formatDOT {
		return []byte(dot), nil
	}

	svg, err := render.RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	switch format {
	case formatPDF:
		return render.ToPDF(svg)
	case formatPNG:
		return render.ToPNG(svg, scale)
	default:
		return svg, nil
	}
}
