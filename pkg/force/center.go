package force

import "github.com/matzehuels/depweb/pkg/model"

// Center scales every unpinned position toward the origin by
// 1 - strength*alpha per tick. It keeps a disconnected graph from drifting
// out of view.
type Center struct {
	Strength float64
	nodes    []*model.Node
}

// NewCenter returns a center force with the given strength.
func NewCenter(strength float64) *Center {
	return &Center{Strength: strength}
}

func (c *Center) Initialize(nodes []*model.Node) { c.nodes = nodes }

func (c *Center) Apply(alpha float64) {
	k := 1 - c.Strength*alpha
	if k == 1 {
		return
	}
	for _, n := range c.nodes {
		if n.IsPinned() {
			continue
		}
		n.X *= k
		n.Y *= k
	}
}
