// Package model provides the in-memory dependency graph explored by depweb.
//
// # Overview
//
// A [Graph] is built once per session from two inputs: a dependency matrix
// (variables plus weighted cells) and a hierarchical clustering. After
// construction the graph is never replaced. It is mutated in place by the
// rest of the system:
//
//   - node positions and velocities by the force simulation ([force])
//   - node pins by the input controller while a node is dragged ([input])
//   - edge visibility whenever the enabled weight filter changes
//
// # Building
//
// [Build] converts the raw input into a graph:
//
//	g, err := model.Build(matrix, clustering)
//	if err != nil {
//	    var ie *model.IntegrityError
//	    if errors.As(err, &ie) {
//	        // the input references a node that does not exist
//	    }
//	}
//
// Construction fails fast on malformed input. A clustering item naming an
// unknown variable, a cell pointing outside the variable list, a duplicate
// variable or a variable that no group claims all abort with an
// [IntegrityError]. A silently patched model would corrupt grouping and
// coloring downstream without any visible symptom.
//
// # Groups
//
// Groups are numbered by a preorder walk of the clustering tree, so a
// parent group always has a smaller id than its nested groups. Each item
// leaf assigns its variable to the innermost enclosing group.
//
// # Visibility
//
// Edge visibility is a pure function of the enabled weight set: an edge is
// visible iff at least one of its weight names is enabled. See
// [Graph.SetEnabledWeights].
//
// # Concurrency
//
// Graph is not safe for concurrent use. The whole explorer runs on a single
// callback goroutine and ownership of a node position is handed between the
// simulation and the drag handler through [Node.Pin] and [Node.Unpin].
//
// [force]: github.com/matzehuels/depweb/pkg/force
// [input]: github.com/matzehuels/depweb/pkg/input
package model
