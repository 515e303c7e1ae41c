package force

import (
	"math"

	"github.com/matzehuels/depweb/pkg/model"
)

// Force is one contribution to the layout. Initialize is called once with
// the simulated nodes before the first Apply; Apply is called once per tick
// with the current alpha and mutates node velocities or positions.
type Force interface {
	Initialize(nodes []*model.Node)
	Apply(alpha float64)
}

// finite reports whether v is neither NaN nor infinite.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
