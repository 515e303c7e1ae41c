package force

import (
	"math"

	"github.com/matzehuels/depweb/pkg/model"
)

// Collide pushes apart nodes whose circles of radius Radius overlap. Each
// iteration resolves Strength of the remaining overlap on predicted
// positions (position plus velocity), so overlap introduced by earlier
// forces in the same tick is corrected before integration.
type Collide struct {
	Radius     float64
	Strength   float64
	Iterations int

	nodes  []*model.Node
	xs, ys []float64
}

// NewCollide returns a collision force with a uniform node radius.
func NewCollide(radius, strength float64, iterations int) *Collide {
	return &Collide{Radius: radius, Strength: strength, Iterations: max(iterations, 1)}
}

func (c *Collide) Initialize(nodes []*model.Node) {
	c.nodes = nodes
	c.xs = make([]float64, len(nodes))
	c.ys = make([]float64, len(nodes))
}

func (c *Collide) Apply(float64) {
	if len(c.nodes) < 2 || c.Radius <= 0 {
		return
	}
	ri := c.Radius
	r := 2 * ri
	for range c.Iterations {
		for i, n := range c.nodes {
			c.xs[i], c.ys[i] = n.X+n.VX, n.Y+n.VY
		}
		tree := newQuadtree(c.xs, c.ys)

		for i, n := range c.nodes {
			xi, yi := c.xs[i], c.ys[i]
			tree.visit(func(q *quad) bool {
				if q.x0 > xi+r || q.x1 < xi-r || q.y0 > yi+r || q.y1 < yi-r {
					return true
				}
				if !q.leaf() {
					return false
				}
				for _, j := range q.items {
					if j <= i {
						continue
					}
					m := c.nodes[j]
					x := xi - m.X - m.VX
					y := yi - m.Y - m.VY
					l := x*x + y*y
					if l >= r*r || l == 0 {
						continue
					}
					l = math.Sqrt(l)
					k := (r - l) / l * c.Strength
					x *= k
					y *= k
					// Equal radii split the correction evenly.
					n.VX += x / 2
					n.VY += y / 2
					m.VX -= x / 2
					m.VY -= y / 2
				}
				return true
			})
		}
	}
}
