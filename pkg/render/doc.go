// Package render draws computed constellation layouts.
//
// # Overview
//
// A [graph.Layout] already carries every star's position, so rendering never
// runs physics. The package provides:
//
//   - [RenderSVG]: the native night sky renderer, with selection highlighting
//     and twinkle animation
//   - [ToDOT] and [RenderDOTSVG]: a Graphviz rendition with pinned positions
//   - [ToPDF] and [ToPNG]: format conversion through rsvg-convert
//
// # Styles
//
// [Night] draws pale stars with a soft glow on a dark gradient. [Simple]
// draws flat dots on white for print. Star radius grows with the topic's
// count relative to the busiest topic, and a star's hue follows the most
// common mood among its linked entries (see [MoodHue]).
//
// # Selection
//
// [Highlight] walks the graph's edges from a selected word. Edges touching
// the selection are drawn brighter and thicker; stars outside its
// neighborhood and the remaining edges are dimmed.
//
//	svg := render.RenderSVG(layout, render.WithSelected("ocean"))
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// [graph.Layout]: github.com/matzehuels/constellation/pkg/graph.Layout
package render
