package model

import (
	"slices"
)

// NoGroup is the group id of a node that no clustering entry has claimed yet.
// A successfully built graph never contains it.
const NoGroup = -1

// Point is a position or vector in world units.
type Point struct {
	X, Y float64
}

// Node is a variable of the dependency matrix.
//
// X/Y and VX/VY are owned by the force simulation unless the node is pinned.
// While pinned, the simulation copies the pinned position into X/Y on every
// tick and keeps the velocity at zero; the drag handler is the only writer.
type Node struct {
	Index int    // Position in the matrix variable list
	Name  string // Variable name as given in the matrix
	Group int    // Group id assigned from the clustering

	X, Y   float64 // Position (world units)
	VX, VY float64 // Velocity (world units per tick)

	pin *Point
}

// Pin fixes the node at (x, y), taking it away from the simulation.
func (n *Node) Pin(x, y float64) {
	n.pin = &Point{X: x, Y: y}
}

// Unpin returns the node to the simulation.
func (n *Node) Unpin() {
	n.pin = nil
}

// Pinned returns the pinned position, if any.
func (n *Node) Pinned() (Point, bool) {
	if n.pin == nil {
		return Point{}, false
	}
	return *n.pin, true
}

// IsPinned reports whether the node is currently pinned.
func (n *Node) IsPinned() bool { return n.pin != nil }

// Position returns the node position as a Point.
func (n *Node) Position() Point { return Point{X: n.X, Y: n.Y} }

// Weight is a named dependency strength on an edge, e.g. {"Call", 3}.
type Weight struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Edge is a directed dependency Source → Target.
type Edge struct {
	Source  *Node
	Target  *Node
	Weights []Weight

	// Visible is recomputed by Graph.SetEnabledWeights.
	Visible bool

	// Reverse is the Target → Source edge when the input has both directions.
	// Reverse links are always symmetric.
	Reverse *Edge
}

// HasWeight reports whether the edge carries a weight with the given name.
func (e *Edge) HasWeight(name string) bool {
	for _, w := range e.Weights {
		if w.Name == name {
			return true
		}
	}
	return false
}

// Connects reports whether a and b are the two endpoints of e, in either order.
func (e *Edge) Connects(a, b *Node) bool {
	return (e.Source == a && e.Target == b) || (e.Source == b && e.Target == a)
}

// Touches reports whether n is an endpoint of e.
func (e *Edge) Touches(n *Node) bool {
	return e.Source == n || e.Target == n
}

// Group is a cluster from the clustering input.
type Group struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Graph is the explorable dependency graph.
type Graph struct {
	Nodes  []*Node
	Edges  []*Edge
	Groups []Group

	weightNames []string
	enabled     map[string]bool
	byName      map[string]*Node
}

// WeightNames returns every weight name observed in the input, in first-seen order.
func (g *Graph) WeightNames() []string {
	return slices.Clone(g.weightNames)
}

// Node returns the node with the given variable name.
func (g *Graph) Node(name string) (*Node, bool) {
	n, ok := g.byName[name]
	return n, ok
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges, visible or not.
func (g *Graph) EdgeCount() int { return len(g.Edges) }

// GroupCount returns the number of groups.
func (g *Graph) GroupCount() int { return len(g.Groups) }
