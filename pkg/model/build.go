package model

import (
	"maps"
	"slices"

	derrors "github.com/matzehuels/depweb/pkg/errors"
)

// Clustering entry types.
const (
	EntryGroup = "group"
	EntryItem  = "item"
)

// Cell is one non-empty cell of the dependency matrix: Src depends on Dest
// with the given named weights.
type Cell struct {
	Src    int
	Dest   int
	Values map[string]float64
}

// Matrix is a dependency structure matrix.
type Matrix struct {
	Variables []string
	Cells     []Cell
}

// ClusterEntry is a node of the clustering tree. Groups carry nested entries;
// items name a matrix variable.
type ClusterEntry struct {
	Type   string
	Name   string
	Nested []ClusterEntry
}

// Clustering is the hierarchical grouping of matrix variables.
type Clustering struct {
	Structure []ClusterEntry
}

// Build converts a dependency matrix and its clustering into a Graph.
//
// Node order follows m.Variables. Edge order follows m.Cells; weights within
// an edge are sorted by name so repeated builds are identical. All weights
// start enabled.
//
// Build returns an *IntegrityError if the input is inconsistent; it never
// returns a partially built graph.
func Build(m Matrix, c Clustering) (*Graph, error) {
	g := &Graph{
		Nodes:  make([]*Node, 0, len(m.Variables)),
		Edges:  make([]*Edge, 0, len(m.Cells)),
		byName: make(map[string]*Node, len(m.Variables)),
	}

	for i, name := range m.Variables {
		if err := derrors.ValidateVariableName(name); err != nil {
			return nil, &IntegrityError{Violation: InvalidName, Name: name, Index: i, Cell: -1, Cause: err}
		}
		if _, dup := g.byName[name]; dup {
			return nil, &IntegrityError{Violation: DuplicateVariable, Name: name, Index: i, Cell: -1}
		}
		n := &Node{Index: i, Name: name, Group: NoGroup}
		g.Nodes = append(g.Nodes, n)
		g.byName[name] = n
	}

	if err := g.addEdges(m.Cells); err != nil {
		return nil, err
	}

	b := groupBuilder{g: g, claimed: make(map[*Node]bool, len(g.Nodes))}
	for _, entry := range c.Structure {
		if entry.Type != EntryGroup {
			continue
		}
		if err := b.addGroup(entry); err != nil {
			return nil, err
		}
	}
	for _, n := range g.Nodes {
		if n.Group == NoGroup {
			return nil, &IntegrityError{Violation: Ungrouped, Name: n.Name, Index: n.Index, Cell: -1}
		}
	}

	g.SetEnabledWeights(g.weightNames)
	return g, nil
}

func (g *Graph) addEdges(cells []Cell) error {
	type pair struct{ src, dest int }
	seen := make(map[pair]*Edge, len(cells))
	names := make(map[string]bool)

	for ci, cell := range cells {
		for _, idx := range []int{cell.Src, cell.Dest} {
			if idx < 0 || idx >= len(g.Nodes) {
				return &IntegrityError{Violation: IndexOutOfRange, Index: idx, Cell: ci}
			}
		}
		if _, dup := seen[pair{cell.Src, cell.Dest}]; dup {
			name := g.Nodes[cell.Src].Name + " -> " + g.Nodes[cell.Dest].Name
			return &IntegrityError{Violation: DuplicateCell, Name: name, Index: cell.Src, Cell: ci}
		}

		weights := make([]Weight, 0, len(cell.Values))
		for _, name := range slices.Sorted(maps.Keys(cell.Values)) {
			if err := derrors.ValidateWeightName(name); err != nil {
				return &IntegrityError{Violation: InvalidName, Name: name, Cell: ci, Cause: err}
			}
			weights = append(weights, Weight{Name: name, Value: cell.Values[name]})
			if !names[name] {
				names[name] = true
				g.weightNames = append(g.weightNames, name)
			}
		}

		e := &Edge{
			Source:  g.Nodes[cell.Src],
			Target:  g.Nodes[cell.Dest],
			Weights: weights,
			Visible: true,
		}
		if rev, ok := seen[pair{cell.Dest, cell.Src}]; ok {
			rev.Reverse = e
			e.Reverse = rev
		}
		seen[pair{cell.Src, cell.Dest}] = e
		g.Edges = append(g.Edges, e)
	}
	return nil
}

type groupBuilder struct {
	g       *Graph
	claimed map[*Node]bool
}

// addGroup assigns the next group id to entry and walks its children in
// preorder. Recursion depth is bounded by the authored clustering depth.
func (b *groupBuilder) addGroup(entry ClusterEntry) error {
	id := len(b.g.Groups)
	b.g.Groups = append(b.g.Groups, Group{ID: id, Name: entry.Name})

	for _, child := range entry.Nested {
		switch child.Type {
		case EntryGroup:
			if err := b.addGroup(child); err != nil {
				return err
			}
		case EntryItem:
			n, ok := b.g.byName[child.Name]
			if !ok {
				return &IntegrityError{Violation: UnknownVariable, Name: child.Name, Index: -1, Cell: -1}
			}
			if b.claimed[n] {
				return &IntegrityError{Violation: DuplicateItem, Name: child.Name, Index: n.Index, Cell: -1}
			}
			b.claimed[n] = true
			n.Group = id
		}
	}
	return nil
}
