package force

import (
	"math"

	"github.com/matzehuels/depweb/pkg/model"
)

// Charge applies pairwise inverse-distance forces between all nodes. A
// negative strength repels. Far-away clusters are approximated by their
// aggregate (Barnes-Hut) once a quadtree cell of width w at distance d
// satisfies w/d < Theta; Theta 0 computes every pair exactly.
type Charge struct {
	Strength    float64
	Theta       float64
	DistanceMin float64
	DistanceMax float64 // 0 means unbounded

	nodes  []*model.Node
	xs, ys []float64
}

// NewCharge returns a many-body force.
func NewCharge(strength, theta, distanceMin, distanceMax float64) *Charge {
	return &Charge{Strength: strength, Theta: theta, DistanceMin: distanceMin, DistanceMax: distanceMax}
}

func (c *Charge) Initialize(nodes []*model.Node) {
	c.nodes = nodes
	c.xs = make([]float64, len(nodes))
	c.ys = make([]float64, len(nodes))
}

func (c *Charge) Apply(alpha float64) {
	if c.Strength == 0 || alpha == 0 || len(c.nodes) < 2 {
		return
	}
	for i, n := range c.nodes {
		c.xs[i], c.ys[i] = n.X, n.Y
	}
	tree := newQuadtree(c.xs, c.ys)
	tree.visitAfter(c.accumulate)

	theta2 := c.Theta * c.Theta
	min2 := c.DistanceMin * c.DistanceMin
	max2 := math.Inf(1)
	if c.DistanceMax > 0 {
		max2 = c.DistanceMax * c.DistanceMax
	}

	for i, n := range c.nodes {
		xi, yi := c.xs[i], c.ys[i]
		tree.visit(func(q *quad) bool {
			if q.value == 0 {
				return true
			}
			if !q.leaf() {
				dx, dy := q.cx-xi, q.cy-yi
				l := dx*dx + dy*dy
				w := q.width()
				if theta2 > 0 && w*w/theta2 < l {
					if l < max2 {
						if l < min2 {
							l = math.Sqrt(min2 * l)
						}
						n.VX += dx * q.value * alpha / l
						n.VY += dy * q.value * alpha / l
					}
					return true
				}
				return false
			}
			for _, j := range q.items {
				if j == i {
					continue
				}
				dx, dy := c.xs[j]-xi, c.ys[j]-yi
				l := dx*dx + dy*dy
				if l == 0 || l >= max2 {
					continue
				}
				if l < min2 {
					l = math.Sqrt(min2 * l)
				}
				n.VX += dx * c.Strength * alpha / l
				n.VY += dy * c.Strength * alpha / l
			}
			return true
		})
	}
}

// accumulate fills the strength sum and the strength-weighted center of q.
func (c *Charge) accumulate(q *quad) {
	var value, weight, x, y float64
	if q.leaf() {
		for _, j := range q.items {
			value += c.Strength
			weight += math.Abs(c.Strength)
			x += math.Abs(c.Strength) * c.xs[j]
			y += math.Abs(c.Strength) * c.ys[j]
		}
	} else {
		for _, child := range q.children {
			if child == nil || child.value == 0 {
				continue
			}
			w := math.Abs(child.value)
			value += child.value
			weight += w
			x += w * child.cx
			y += w * child.cy
		}
	}
	q.value = value
	if weight > 0 {
		q.cx, q.cy = x/weight, y/weight
	}
}
