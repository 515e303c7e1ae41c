package input

import (
	"math"

	"github.com/matzehuels/depweb/pkg/config"
	"github.com/matzehuels/depweb/pkg/model"
)

// State is the coarse interaction state.
type State int

const (
	StateIdle State = iota
	StateHovering
	StateDragging
)

func (s State) String() string {
	switch s {
	case StateHovering:
		return "hovering"
	case StateDragging:
		return "dragging"
	default:
		return "idle"
	}
}

// AlphaTargeter is the part of the simulation the controller drives: the
// layout is energized while a node is held.
type AlphaTargeter interface {
	SetAlphaTarget(float64)
}

// Controller owns the pointer, the view and the selection of one session.
// It is not safe for concurrent use.
type Controller struct {
	graph *model.Graph
	sim   AlphaTargeter
	opts  config.Options

	width, height float64

	pointer   Pointer
	view      View
	zoom      float64 // Percent; view.K is always zoom/100
	selection Selection

	// OnSelect is called after every selection change.
	OnSelect func(Selection)
}

// NewController returns a controller for g with the view centered at the
// default zoom. sim may be nil.
func NewController(g *model.Graph, sim AlphaTargeter, opts config.Options) *Controller {
	c := &Controller{graph: g, sim: sim, opts: opts}
	c.SetZoom(opts.ZoomDefault)
	return c
}

// Resize sets the logical size of the drawing area. Non-positive or
// non-finite sizes are ignored.
func (c *Controller) Resize(w, h float64) {
	if !finite(w, h) || w <= 0 || h <= 0 {
		return
	}
	c.width, c.height = w, h
}

// Size returns the logical size of the drawing area.
func (c *Controller) Size() (float64, float64) { return c.width, c.height }

// View returns the current view transform.
func (c *Controller) View() View { return c.view }

// Pointer returns the current pointer state.
func (c *Controller) Pointer() Pointer { return c.pointer }

// Selection returns the selected nodes, oldest first.
func (c *Controller) Selection() Selection { return c.selection }

// Hover returns the hovered node, or nil. During a node drag this is the
// held node.
func (c *Controller) Hover() *Node { return c.pointer.Target }

// State returns the interaction state.
func (c *Controller) State() State {
	switch {
	case c.pointer.Down && c.pointer.Dragging:
		return StateDragging
	case c.pointer.Target != nil:
		return StateHovering
	default:
		return StateIdle
	}
}

// Move handles a pointer move to logical pixel (x, y). While the button is
// held it only records the position: a held node is re-pinned under the
// pointer, or the view panned, on the next Resolve.
func (c *Controller) Move(x, y float64) {
	if !finite(x, y) {
		return
	}
	c.pointer.PhysX, c.pointer.PhysY = x, y
	c.pointer.Present = true
	c.updateWorld()
	if c.pointer.Down {
		c.pointer.Dragging = true
		return
	}
	c.pointer.Target = c.nearestNode(c.pointer.X, c.pointer.Y)
}

// Leave handles the pointer leaving the drawing area. A held pointer keeps
// its drag.
func (c *Controller) Leave() {
	if c.pointer.Down {
		return
	}
	c.pointer.Present = false
	c.pointer.Target = nil
}

// Press handles the primary button going down.
func (c *Controller) Press() {
	if c.pointer.Down || !c.pointer.Present {
		return
	}
	c.pointer.Down = true
	c.pointer.Dragging = false
	if n := c.pointer.Target; n != nil {
		if c.sim != nil {
			c.sim.SetAlphaTarget(c.opts.AlphaDrag)
		}
		n.Pin(n.X, n.Y)
		c.pointer.DX = c.pointer.X - n.X
		c.pointer.DY = c.pointer.Y - n.Y
		return
	}
	c.pointer.DX, c.pointer.DY = c.pointer.X, c.pointer.Y
}

// Release handles the primary button going up.
func (c *Controller) Release() {
	if !c.pointer.Down {
		return
	}
	if c.sim != nil {
		c.sim.SetAlphaTarget(c.opts.AlphaTarget)
	}
	click := !c.pointer.Dragging
	if n := c.pointer.Target; n != nil {
		n.Unpin()
		if click {
			c.setSelection(c.selection.Toggle(n, c.graph.Connected))
		}
	} else if click {
		c.clickCanvas()
	}
	c.pointer.Down = false
	c.pointer.Dragging = false
	c.pointer.DX, c.pointer.DY = 0, 0
}

// Resolve applies the current drag against the latest layout: a held node
// is re-pinned under the pointer, a pan keeps the grabbed point in place.
func (c *Controller) Resolve() {
	if !c.pointer.Present {
		return
	}
	if c.pointer.Down && c.pointer.Target == nil {
		c.view.X = (c.pointer.PhysX-c.width/2)/c.view.K - c.pointer.DX
		c.view.Y = (c.pointer.PhysY-c.height/2)/c.view.K - c.pointer.DY
	}
	c.updateWorld()
	if c.pointer.Down && c.pointer.Target != nil {
		c.pointer.Target.Pin(c.pointer.X-c.pointer.DX, c.pointer.Y-c.pointer.DY)
	}
}

// Select replaces the selection by clicking each node in order, applying
// the same rules as pointer clicks. Nil nodes are skipped.
func (c *Controller) Select(nodes ...*Node) {
	var s Selection
	for _, n := range nodes {
		if n == nil || s.Contains(n) {
			continue
		}
		s = s.Toggle(n, c.graph.Connected)
	}
	c.setSelection(s)
}

// ClearSelection empties the selection.
func (c *Controller) ClearSelection() { c.setSelection(nil) }

// Revalidate drops a selected pair that no visible edge joins anymore,
// e.g. after the weight filter changed.
func (c *Controller) Revalidate() {
	if len(c.selection) == 2 && !c.graph.Connected(c.selection[0], c.selection[1]) {
		c.setSelection(nil)
	}
}

func (c *Controller) setSelection(s Selection) {
	if c.selection.Equal(s) {
		return
	}
	c.selection = s
	if c.OnSelect != nil {
		c.OnSelect(s)
	}
}

func (c *Controller) updateWorld() {
	c.pointer.X, c.pointer.Y = c.view.ToWorld(c.pointer.PhysX, c.pointer.PhysY, c.width, c.height)
}

// nearestNode returns the node closest to (x, y) within the outer radius.
func (c *Controller) nearestNode(x, y float64) *Node {
	var best *Node
	bestR := c.opts.NodeRadiusOuter
	for _, n := range c.graph.Nodes {
		if r := math.Hypot(x-n.X, y-n.Y); r < bestR {
			best, bestR = n, r
		}
	}
	return best
}

// clickCanvas selects the ends of the nearest visible edge under the
// pointer, or clears the selection.
func (c *Controller) clickCanvas() {
	e := c.nearestEdge(c.pointer.X, c.pointer.Y)
	switch {
	case e == nil:
		c.setSelection(nil)
	case e.Source == e.Target:
		c.setSelection(Selection{e.Source})
	default:
		c.setSelection(Selection{e.Source, e.Target})
	}
}

func (c *Controller) nearestEdge(x, y float64) *model.Edge {
	var best *model.Edge
	bestR := c.opts.NodeRadiusOuter
	for _, e := range c.graph.Edges {
		if !e.Visible {
			continue
		}
		px, py := closestOnSegment(e.Source.X, e.Source.Y, e.Target.X, e.Target.Y, x, y)
		if r := math.Hypot(x-px, y-py); r < bestR {
			best, bestR = e, r
		}
	}
	return best
}

// closestOnSegment projects (x, y) onto the segment (x0, y0)-(x1, y1),
// clamped to its ends.
func closestOnSegment(x0, y0, x1, y1, x, y float64) (float64, float64) {
	dx, dy := x1-x0, y1-y0
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return x0, y0
	}
	t := ((x-x0)*dx + (y-y0)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return x0 + t*dx, y0 + t*dy
}
