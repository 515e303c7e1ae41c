// Package input turns pointer and keyboard events into view changes, node
// drags and selection changes.
//
// # Coordinates
//
// Events carry logical pixel coordinates relative to the top-left corner
// of the drawing area. World coordinates follow from the [View]:
//
//	world = (pixel - size/2) / k - pan
//
// # States
//
// A [Controller] is Idle, Hovering a node, or Dragging. A drag holds
// either a node, which is pinned and follows the pointer, or nothing, in
// which case the canvas pans so the grabbed world point stays under the
// pointer. Drag effects are applied in [Controller.Resolve], which the
// scheduler calls once per frame after stepping the simulation.
//
// # Selection
//
// Clicking a node toggles it in the [Selection]. At most two nodes are
// selected and a pair is only kept when a visible edge joins it. Clicking
// empty canvas selects both ends of the nearest visible edge, or clears
// the selection when no edge is close enough.
//
// Malformed events are dropped without an error: non-finite coordinates,
// a release without a press, a press before the pointer entered.
package input
