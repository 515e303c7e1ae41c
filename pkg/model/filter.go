package model

import (
	"slices"
)

// SetEnabledWeights enables exactly the given weight names and recomputes
// every edge's visibility: an edge is visible iff at least one of its
// weights is enabled. Names never observed in the input are kept in the
// enabled set but match no edge.
//
// The result depends only on the set of names, so applying the same set
// twice yields the same visibility both times.
func (g *Graph) SetEnabledWeights(names []string) {
	g.enabled = make(map[string]bool, len(names))
	for _, name := range names {
		g.enabled[name] = true
	}
	for _, e := range g.Edges {
		e.Visible = slices.ContainsFunc(e.Weights, func(w Weight) bool {
			return g.enabled[w.Name]
		})
	}
}

// EnabledWeights returns the enabled weight names, observed names first in
// first-seen order, then any extra names sorted.
func (g *Graph) EnabledWeights() []string {
	out := make([]string, 0, len(g.enabled))
	for _, name := range g.weightNames {
		if g.enabled[name] {
			out = append(out, name)
		}
	}
	var extra []string
	for name := range g.enabled {
		if !slices.Contains(g.weightNames, name) {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}

// IsWeightEnabled reports whether the named weight is enabled.
func (g *Graph) IsWeightEnabled(name string) bool {
	return g.enabled[name]
}

// EdgeBetween returns the visible edge from → to, if any.
func (g *Graph) EdgeBetween(from, to *Node) (*Edge, bool) {
	for i := len(g.Edges) - 1; i >= 0; i-- {
		e := g.Edges[i]
		if e.Visible && e.Source == from && e.Target == to {
			return e, true
		}
	}
	return nil, false
}

// Connected reports whether a visible edge joins a and b in either direction.
func (g *Graph) Connected(a, b *Node) bool {
	if _, ok := g.EdgeBetween(a, b); ok {
		return true
	}
	_, ok := g.EdgeBetween(b, a)
	return ok
}

// Outbound returns the visible edges whose source is n.
func (g *Graph) Outbound(n *Node) []*Edge {
	var out []*Edge
	for _, e := range g.Edges {
		if e.Visible && e.Source == n {
			out = append(out, e)
		}
	}
	return out
}

// Inbound returns the visible edges whose target is n.
func (g *Graph) Inbound(n *Node) []*Edge {
	var out []*Edge
	for _, e := range g.Edges {
		if e.Visible && e.Target == n {
			out = append(out, e)
		}
	}
	return out
}
