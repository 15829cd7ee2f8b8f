// Package render draws unit decomposition diagrams with Graphviz.
//
// A diagram shows a unit on top, the atomic units it is composed of
// below it (edges labeled with each term's exponent), and the base
// dimensions at the bottom (edges labeled with each atomic unit's
// dimension exponent):
//
//	dot := render.ToDOT(newtonsPerSquareMeter, render.Options{})
//	svg, err := render.RenderSVG(ctx, dot)
//
// [ToPDF] and [ToPNG] convert any SVG with the external rsvg-convert tool
// (from librsvg):
//
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package render
