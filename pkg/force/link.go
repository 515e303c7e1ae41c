package force

import (
	"math"

	"github.com/matzehuels/depweb/pkg/model"
)

// Link treats every edge, visible or not, as a spring of rest length
// Distance. Springs between nodes of the same group are LikeStrength,
// others UnlikeStrength, so clusters stay tight while cross-cluster edges
// only loosely attract.
//
// The correction of each spring is split between its endpoints by degree:
// the endpoint with more links moves less.
type Link struct {
	LikeStrength   float64
	UnlikeStrength float64
	Distance       float64
	Iterations     int

	edges []*model.Edge
	bias  []float64
}

// NewLink returns a link force over edges.
func NewLink(edges []*model.Edge, like, unlike, distance float64, iterations int) *Link {
	return &Link{
		LikeStrength:   like,
		UnlikeStrength: unlike,
		Distance:       distance,
		Iterations:     max(iterations, 1),
		edges:          edges,
	}
}

// Strength returns the spring strength used for e.
func (l *Link) Strength(e *model.Edge) float64 {
	if e.Source.Group == e.Target.Group {
		return l.LikeStrength
	}
	return l.UnlikeStrength
}

func (l *Link) Initialize(nodes []*model.Node) {
	degree := make(map[*model.Node]int, len(nodes))
	for _, e := range l.edges {
		degree[e.Source]++
		degree[e.Target]++
	}
	l.bias = make([]float64, len(l.edges))
	for i, e := range l.edges {
		s, t := degree[e.Source], degree[e.Target]
		l.bias[i] = float64(s) / float64(s+t)
	}
}

func (l *Link) Apply(alpha float64) {
	for range l.Iterations {
		for i, e := range l.edges {
			s, t := e.Source, e.Target
			x := t.X + t.VX - s.X - s.VX
			y := t.Y + t.VY - s.Y - s.VY
			d := math.Sqrt(x*x + y*y)
			if d == 0 {
				continue
			}
			k := (d - l.Distance) / d * alpha * l.Strength(e)
			x *= k
			y *= k
			b := l.bias[i]
			t.VX -= x * b
			t.VY -= y * b
			s.VX += x * (1 - b)
			s.VY += y * (1 - b)
		}
	}
}
