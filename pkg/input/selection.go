package input

import (
	"slices"

	"github.com/matzehuels/depweb/pkg/model"
)

// Node aliases the model node so callers of this package rarely need to
// import model.
type Node = model.Node

// MaxSelection is the largest number of nodes that can be selected.
const MaxSelection = 2

// Selection is an ordered set of at most MaxSelection nodes, oldest first.
type Selection []*Node

// Contains reports whether n is selected.
func (s Selection) Contains(n *Node) bool {
	return slices.Contains(s, n)
}

// Names returns the names of the selected nodes in selection order.
func (s Selection) Names() []string {
	names := make([]string, len(s))
	for i, n := range s {
		names[i] = n.Name
	}
	return names
}

// Toggle returns the selection after clicking n. A selected node is
// removed. Otherwise n is appended; a third node pushes out the oldest, and
// a pair that connected does not join collapses to n alone.
func (s Selection) Toggle(n *Node, connected func(a, b *Node) bool) Selection {
	if i := slices.Index(s, n); i >= 0 {
		return slices.Delete(slices.Clone(s), i, i+1)
	}
	next := append(slices.Clone(s), n)
	if len(next) > MaxSelection {
		next = next[len(next)-MaxSelection:]
	}
	if len(next) == 2 && !connected(next[0], next[1]) {
		next = Selection{n}
	}
	return next
}

// Equal reports whether both selections hold the same nodes in the same order.
func (s Selection) Equal(other Selection) bool {
	return slices.Equal(s, other)
}
