package render

import (
	"slices"

	"github.com/matzehuels/depweb/pkg/model"
)

// EdgeClass is the emphasis of an edge for the current selection.
type EdgeClass int

const (
	EdgeLight EdgeClass = iota
	EdgeNormal
	EdgeDark
)

// passes is the paint order: emphasized edges are drawn last, on top.
var passes = []EdgeClass{EdgeLight, EdgeNormal, EdgeDark}

func (c EdgeClass) String() string {
	switch c {
	case EdgeLight:
		return "light"
	case EdgeDark:
		return "dark"
	default:
		return "normal"
	}
}

// Classify returns the class of e for the given selection.
func Classify(e *model.Edge, selection []*model.Node) EdgeClass {
	if len(selection) == 0 {
		return EdgeNormal
	}
	for _, n := range selection {
		if !e.Touches(n) {
			return EdgeLight
		}
	}
	return EdgeDark
}

// Dashed reports whether edges are drawn dashed and without arrowheads:
// the enabled filter is non-empty and made only of undirected weight names.
func Dashed(enabled, undirected []string) bool {
	if len(enabled) == 0 {
		return false
	}
	for _, name := range enabled {
		if !slices.Contains(undirected, name) {
			return false
		}
	}
	return true
}
