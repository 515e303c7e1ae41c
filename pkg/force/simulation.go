package force

import (
	"math"

	"github.com/matzehuels/depweb/pkg/config"
	"github.com/matzehuels/depweb/pkg/model"
)

// Seed layout constants: nodes start on a phyllotaxis spiral so no two
// share a position and charge has a direction to push along.
const initialRadius = 10

var initialAngle = math.Pi * (3 - math.Sqrt(5))

// Simulation advances node positions one tick at a time.
//
// A Simulation is not safe for concurrent use; the scheduler and the input
// controller share it from a single goroutine.
type Simulation struct {
	nodes  []*model.Node
	forces []Force

	alpha         float64
	alphaTarget   float64
	alphaDecay    float64
	velocityDecay float64

	genesis genesisParams
	ticks   int

	link *Link
}

type genesisParams struct {
	ticks   int
	alpha   float64
	initial float64
	target  float64
}

// New builds the standard simulation for g from opts: center, gravity,
// link, charge and collide, applied in that order. Nodes that sit at the
// origin are seeded on a spiral first.
//
// The simulation starts at alpha = opts.AlphaGenesis. Call Genesis before
// the first paint.
func New(g *model.Graph, opts config.Options) *Simulation {
	s := &Simulation{
		nodes:         g.Nodes,
		alpha:         opts.AlphaGenesis,
		alphaTarget:   opts.AlphaGenesis,
		alphaDecay:    opts.AlphaDecay,
		velocityDecay: opts.VelocityDecay,
		genesis: genesisParams{
			ticks:   opts.GenesisTicks,
			alpha:   opts.AlphaGenesis,
			initial: opts.AlphaInitial,
			target:  opts.AlphaTarget,
		},
	}
	s.link = NewLink(g.Edges, opts.Link.LikeStrength, opts.Link.UnlikeStrength, opts.Link.Distance, opts.Link.Iterations)
	s.seed()
	s.AddForce(NewCenter(opts.Center.Strength))
	s.AddForce(NewGravity(opts.Gravity.Strength))
	s.AddForce(s.link)
	s.AddForce(NewCharge(opts.Charge.Strength, opts.Charge.Theta, opts.Charge.DistanceMin, opts.Charge.DistanceMax))
	s.AddForce(NewCollide(opts.NodeRadiusOuter, opts.Collide.Strength, opts.Collide.Iterations))
	return s
}

// NewEmpty returns a simulation over nodes with no forces, for composing a
// custom force set with AddForce.
func NewEmpty(nodes []*model.Node, alpha, alphaDecay, velocityDecay float64) *Simulation {
	s := &Simulation{
		nodes:         nodes,
		alpha:         alpha,
		alphaTarget:   alpha,
		alphaDecay:    alphaDecay,
		velocityDecay: velocityDecay,
	}
	s.seed()
	return s
}

func (s *Simulation) seed() {
	for i, n := range s.nodes {
		if n.X != 0 || n.Y != 0 {
			continue
		}
		r := initialRadius * math.Sqrt(0.5+float64(i))
		a := float64(i) * initialAngle
		n.X, n.Y = r*math.Cos(a), r*math.Sin(a)
	}
}

// AddForce appends f to the force chain and initializes it.
func (s *Simulation) AddForce(f Force) {
	f.Initialize(s.nodes)
	s.forces = append(s.forces, f)
}

// Nodes returns the simulated nodes.
func (s *Simulation) Nodes() []*model.Node { return s.nodes }

// Link returns the link force of a standard simulation, or nil.
func (s *Simulation) Link() *Link { return s.link }

// Alpha returns the current temperature.
func (s *Simulation) Alpha() float64 { return s.alpha }

// SetAlpha sets the current temperature.
func (s *Simulation) SetAlpha(a float64) { s.alpha = a }

// AlphaTarget returns the temperature alpha decays toward.
func (s *Simulation) AlphaTarget() float64 { return s.alphaTarget }

// SetAlphaTarget changes the temperature alpha decays toward. The drag
// handler raises it while a node is held and restores it on release.
func (s *Simulation) SetAlphaTarget(a float64) { s.alphaTarget = a }

// Ticks returns the number of ticks stepped so far, genesis included.
func (s *Simulation) Ticks() int { return s.ticks }

// Step advances the simulation by one tick.
func (s *Simulation) Step() {
	s.alpha += (s.alphaTarget - s.alpha) * s.alphaDecay
	for _, f := range s.forces {
		f.Apply(s.alpha)
	}
	keep := 1 - s.velocityDecay
	for _, n := range s.nodes {
		if p, ok := n.Pinned(); ok {
			n.X, n.Y = p.X, p.Y
			n.VX, n.VY = 0, 0
			continue
		}
		if !finite(n.VX) || !finite(n.VY) {
			n.VX, n.VY = 0, 0
		}
		if !finite(n.X) || !finite(n.Y) {
			n.X, n.Y = 0, 0
		}
		n.VX *= keep
		n.VY *= keep
		n.X += n.VX
		n.Y += n.VY
	}
	s.ticks++
}

// Tick steps the simulation n times.
func (s *Simulation) Tick(n int) {
	for range n {
		s.Step()
	}
}

// Genesis runs the synchronous warm-up: GenesisTicks steps at
// AlphaGenesis, then alpha drops to AlphaInitial and decays toward the
// steady AlphaTarget from there.
func (s *Simulation) Genesis() {
	s.alpha = s.genesis.alpha
	s.alphaTarget = s.genesis.alpha
	s.Tick(s.genesis.ticks)
	s.alpha = s.genesis.initial
	s.alphaTarget = s.genesis.target
}
