// Package nodelink exports a frame of the explorer as a Graphviz diagram.
//
// # Overview
//
// [ToDOT] writes the current layout as DOT source. Every node carries a
// pinned position ("x,y!"), so neato reproduces the force layout instead
// of computing its own, and every visible edge carries the color of its
// class for the current selection.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Palette: p, Selection: sel})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// The DOT output can be:
//
//   - Rendered in-process via [RenderSVG]
//   - Saved and processed with external Graphviz tools (neato -n)
//   - Customized before rendering
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
