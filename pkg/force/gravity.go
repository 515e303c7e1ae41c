package force

import "github.com/matzehuels/depweb/pkg/model"

// Gravity pulls each unpinned node toward the centroid of its group by
// strength*alpha of the remaining distance per tick. The centroid includes
// pinned members so a held node drags its cluster along.
type Gravity struct {
	Strength float64
	groups   [][]*model.Node
}

// NewGravity returns a group gravity force with the given strength.
func NewGravity(strength float64) *Gravity {
	return &Gravity{Strength: strength}
}

func (g *Gravity) Initialize(nodes []*model.Node) {
	byGroup := make(map[int]int)
	g.groups = g.groups[:0]
	for _, n := range nodes {
		i, ok := byGroup[n.Group]
		if !ok {
			i = len(g.groups)
			byGroup[n.Group] = i
			g.groups = append(g.groups, nil)
		}
		g.groups[i] = append(g.groups[i], n)
	}
}

func (g *Gravity) Apply(alpha float64) {
	k := g.Strength * alpha
	if k == 0 {
		return
	}
	for _, members := range g.groups {
		if len(members) < 2 {
			continue
		}
		var cx, cy float64
		for _, n := range members {
			cx += n.X
			cy += n.Y
		}
		cx /= float64(len(members))
		cy /= float64(len(members))
		for _, n := range members {
			if n.IsPinned() {
				continue
			}
			n.X += (cx - n.X) * k
			n.Y += (cy - n.Y) * k
		}
	}
}
