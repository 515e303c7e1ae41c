// Package render draws a frame of the explorer onto a device-pixel surface.
//
// # Overview
//
// A [Renderer] paints one [Frame] per call to [Renderer.Draw]:
//
//  1. Resize the [Surface] to size × DPR device pixels
//  2. Clear to the background color
//  3. Visible edges in three passes: light, normal, dark
//  4. Nodes, filled by group color, then highlight rings
//  5. Labels above the selected and hovered nodes
//
// World coordinates map to device pixels through the view transform:
//
//	device = ((world + pan) * k + size/2) * dpr
//
// # Edge Classes
//
// With an empty selection every edge is [EdgeNormal]. Otherwise an edge is
// [EdgeDark] when every selected node is one of its endpoints and
// [EdgeLight] when it is not, so the edges of a selected node, or the edge
// between a selected pair, stand out.
//
// # Surfaces
//
// [Raster] draws with github.com/fogleman/gg and backs PNG export and both
// interactive hosts. [Recorder] keeps the drawing operations in memory.
// Graphviz output lives in the [nodelink] subpackage.
//
// [nodelink]: github.com/matzehuels/depweb/pkg/render/nodelink
package render
