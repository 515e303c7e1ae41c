package force

import "math"

// maxQuadDepth bounds subdivision so nearly coincident points end up
// sharing a leaf instead of recursing until float precision runs out.
const maxQuadDepth = 32

// quad is a node of a point quadtree. Leaves hold point indexes; internal
// nodes hold up to four children. Aggregates are filled by the force that
// builds the tree.
type quad struct {
	x0, y0, x1, y1 float64
	children       [4]*quad
	items          []int

	// Barnes-Hut aggregates, filled by Charge.
	value  float64 // Sum of strengths
	cx, cy float64 // Strength-weighted center
}

func (q *quad) leaf() bool {
	return q.children == [4]*quad{}
}

func (q *quad) width() float64 { return q.x1 - q.x0 }

// newQuadtree indexes the points (xs[i], ys[i]). Returns nil for no points.
func newQuadtree(xs, ys []float64) *quad {
	if len(xs) == 0 {
		return nil
	}
	x0, y0 := math.Inf(1), math.Inf(1)
	x1, y1 := math.Inf(-1), math.Inf(-1)
	for i := range xs {
		x0, x1 = math.Min(x0, xs[i]), math.Max(x1, xs[i])
		y0, y1 = math.Min(y0, ys[i]), math.Max(y1, ys[i])
	}
	size := math.Max(x1-x0, y1-y0)
	if size <= 0 {
		size = 1
	}
	// Pad so points on the far edge fall strictly inside the square.
	size *= 1 + 1e-9

	root := &quad{x0: x0, y0: y0, x1: x0 + size, y1: y0 + size}
	for i := range xs {
		root.insert(xs, ys, i, 0)
	}
	return root
}

func (q *quad) insert(xs, ys []float64, i, depth int) {
	if q.leaf() {
		if len(q.items) == 0 || depth >= maxQuadDepth ||
			(xs[q.items[0]] == xs[i] && ys[q.items[0]] == ys[i]) {
			q.items = append(q.items, i)
			return
		}
		old := q.items
		q.items = nil
		for _, j := range old {
			q.child(xs[j], ys[j]).insert(xs, ys, j, depth+1)
		}
	}
	q.child(xs[i], ys[i]).insert(xs, ys, i, depth+1)
}

// child returns the quadrant containing (x, y), creating it if needed.
func (q *quad) child(x, y float64) *quad {
	mx, my := (q.x0+q.x1)/2, (q.y0+q.y1)/2
	idx := 0
	if x >= mx {
		idx |= 1
	}
	if y >= my {
		idx |= 2
	}
	if q.children[idx] == nil {
		c := &quad{x0: q.x0, y0: q.y0, x1: mx, y1: my}
		if idx&1 != 0 {
			c.x0, c.x1 = mx, q.x1
		}
		if idx&2 != 0 {
			c.y0, c.y1 = my, q.y1
		}
		q.children[idx] = c
	}
	return q.children[idx]
}

// visit walks the tree depth-first. Children are skipped when fn returns true.
func (q *quad) visit(fn func(*quad) bool) {
	if q == nil || fn(q) {
		return
	}
	for _, c := range q.children {
		c.visit(fn)
	}
}

// visitAfter walks the tree in postorder, used to accumulate aggregates.
func (q *quad) visitAfter(fn func(*quad)) {
	if q == nil {
		return
	}
	for _, c := range q.children {
		c.visitAfter(fn)
	}
	fn(q)
}
