// Package session wires the explorer together for one graph.
//
// A [Session] owns the force simulation, the tick scheduler, the input
// controller and the renderer of a single graph, and exposes what a host
// reads and writes:
//
//   - Outputs: [Session.Selection], [Session.DependsOn],
//     [Session.DependedOnBy], [Session.Zoom], [Session.EnabledWeights]
//   - Inputs: [Session.SetZoom], [Session.SetEnabledWeights], pointer and
//     keyboard events through [Session.Controller], the drawing surface
//
// # Frame Loop
//
// Hosts call [Session.Frame] from their update callback with the time
// elapsed since the session started. Each call steps the simulation to
// catch up with wall time, resolves pending drags and draws exactly once:
//
//	sess, err := session.New(g, opts, session.WithSurface(raster))
//	...
//	start := time.Now()
//	for range ticker.C {
//	    sess.Frame(time.Since(start))
//	}
//
// A Session is not safe for concurrent use. Hosts marshal their events onto
// the goroutine that calls Frame.
package session

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/depweb/pkg/config"
	derrors "github.com/matzehuels/depweb/pkg/errors"
	"github.com/matzehuels/depweb/pkg/force"
	"github.com/matzehuels/depweb/pkg/input"
	pkgio "github.com/matzehuels/depweb/pkg/io"
	"github.com/matzehuels/depweb/pkg/model"
	"github.com/matzehuels/depweb/pkg/observability"
	"github.com/matzehuels/depweb/pkg/render"
	"github.com/matzehuels/depweb/pkg/scheduler"
)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger for session events. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSurface sets the surface drawn on every frame. Without a surface
// frames still step and resolve but draw nothing.
func WithSurface(surface render.Surface) Option {
	return func(s *Session) { s.surface = surface }
}

// WithSize sets the logical drawing size and device pixel ratio.
func WithSize(w, h, dpr float64) Option {
	return func(s *Session) { s.width, s.height, s.dpr = w, h, dpr }
}

// Session is one explorable graph.
type Session struct {
	ID        string
	CreatedAt time.Time

	graph    *model.Graph
	opts     config.Options
	sim      *force.Simulation
	ctl      *input.Controller
	renderer *render.Renderer
	sched    *scheduler.Scheduler

	surface            render.Surface
	width, height, dpr float64

	logger *log.Logger
}

// New starts a session over g: it seeds the layout, runs genesis and
// returns a session ready for its first Frame.
func New(g *model.Graph, opts config.Options, options ...Option) (*Session, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	r, err := render.New(opts)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		graph:     g,
		opts:      opts,
		renderer:  r,
		width:     800,
		height:    600,
		dpr:       1,
		logger:    log.New(io.Discard),
	}
	for _, o := range options {
		o(s)
	}

	s.sim = force.New(g, opts)
	s.ctl = input.NewController(g, s.sim, opts)
	s.ctl.Resize(s.width, s.height)
	s.ctl.OnSelect = s.onSelect
	s.sched = scheduler.New(opts.TicksPerSecond, s.sim, s.ctl, s)

	s.logger.Debug("session started", "session", s.ID,
		"nodes", g.NodeCount(), "edges", g.EdgeCount(), "groups", g.GroupCount())
	s.genesis()
	return s, nil
}

func (s *Session) genesis() {
	start := time.Now()
	s.sim.Genesis()
	d := time.Since(start)
	observability.Simulation().OnGenesis(s.opts.GenesisTicks, d)
	s.logger.Debug("genesis", "session", s.ID, "ticks", s.opts.GenesisTicks, "alpha", s.sim.Alpha(), "took", d.Round(time.Microsecond))
}

// Frame handles one host callback. elapsed is the time since the session
// started. It returns the number of ticks stepped.
func (s *Session) Frame(elapsed time.Duration) int {
	start := time.Now()
	batch := s.sched.Frame(elapsed)
	observability.Simulation().OnFrame(batch, s.sched.Ticks(), s.sim.Alpha(), time.Since(start))
	return batch
}

// Draw paints the current state onto the session surface. The scheduler
// calls it once per Frame.
func (s *Session) Draw() {
	if s.surface == nil {
		return
	}
	s.renderer.Draw(s.surface, s.RenderFrame())
}

// RenderFrame returns what the next paint would read.
func (s *Session) RenderFrame() render.Frame {
	return render.Frame{
		Graph:     s.graph,
		Selection: s.ctl.Selection(),
		Hover:     s.ctl.Hover(),
		View:      s.ctl.View(),
		Width:     s.width,
		Height:    s.height,
		DPR:       s.dpr,
		Dashed:    s.Dashed(),
	}
}

// Resize changes the logical drawing size and device pixel ratio.
// Non-positive or non-finite values are ignored.
func (s *Session) Resize(w, h, dpr float64) {
	if w > 0 && h > 0 && !math.IsInf(w+h, 0) {
		s.width, s.height = w, h
		s.ctl.Resize(w, h)
	}
	if dpr > 0 && !math.IsInf(dpr, 0) {
		s.dpr = dpr
	}
}

// Stop halts the frame loop. Later Frame calls do nothing.
func (s *Session) Stop() {
	s.sched.Stop()
	s.logger.Debug("session stopped", "session", s.ID, "ticks", s.sched.Ticks())
}

// Graph returns the session graph.
func (s *Session) Graph() *model.Graph { return s.graph }

// Options returns the session options.
func (s *Session) Options() config.Options { return s.opts }

// Controller returns the input controller hosts forward events to.
func (s *Session) Controller() *input.Controller { return s.ctl }

// Renderer returns the session renderer.
func (s *Session) Renderer() *render.Renderer { return s.renderer }

// Ticks returns the number of scheduled ticks, genesis excluded.
func (s *Session) Ticks() int { return s.sched.Ticks() }

// Alpha returns the current simulation temperature.
func (s *Session) Alpha() float64 { return s.sim.Alpha() }

// Dashed reports whether edges are drawn in the arrowless dashed mode.
func (s *Session) Dashed() bool {
	return render.Dashed(s.graph.EnabledWeights(), s.opts.UndirectedWeights)
}

// Layout returns a JSON-ready snapshot of the current state.
func (s *Session) Layout() pkgio.Layout {
	l := pkgio.NewLayout(s.graph, s.ctl.Selection())
	l.Session = s.ID
	l.Ticks = s.sched.Ticks()
	l.Alpha = s.sim.Alpha()
	l.Zoom = s.ctl.Zoom()
	return l
}

// Zoom returns the zoom level in percent.
func (s *Session) Zoom() float64 { return s.ctl.Zoom() }

// SetZoom sets the zoom level in percent, clamped to the configured range.
func (s *Session) SetZoom(percent float64) { s.ctl.SetZoom(percent) }

// ResetView recenters the view and restores the default zoom.
func (s *Session) ResetView() { s.ctl.ResetView() }

// EnabledWeights returns the enabled weight names.
func (s *Session) EnabledWeights() []string { return s.graph.EnabledWeights() }

// SetEnabledWeights changes the weight filter. A selected pair that no
// visible edge joins anymore is cleared.
func (s *Session) SetEnabledWeights(names []string) {
	s.graph.SetEnabledWeights(names)
	s.ctl.Revalidate()
	s.logger.Debug("weights", "session", s.ID, "enabled", names, "dashed", s.Dashed())
}

// Selection returns the selected nodes, oldest first.
func (s *Session) Selection() []*model.Node { return s.ctl.Selection() }

// Select replaces the selection by name, applying the click rules in
// order. Unknown names fail with NODE_NOT_FOUND and leave the selection
// unchanged.
func (s *Session) Select(names ...string) error {
	nodes := make([]*model.Node, 0, len(names))
	for _, name := range names {
		n, ok := s.graph.Node(name)
		if !ok {
			return derrors.New(derrors.ErrCodeNodeNotFound, "no variable named %q", name)
		}
		nodes = append(nodes, n)
	}
	s.ctl.Select(nodes...)
	return nil
}

// SelectedEdge returns the visible edge joining a selected pair, trying
// first → second before the reverse.
func (s *Session) SelectedEdge() (*model.Edge, bool) {
	sel := s.ctl.Selection()
	if len(sel) != 2 {
		return nil, false
	}
	if e, ok := s.graph.EdgeBetween(sel[0], sel[1]); ok {
		return e, true
	}
	return s.graph.EdgeBetween(sel[1], sel[0])
}

// DependsOn returns the visible outbound edges of a single selected node,
// or the visible edges first → second of a selected pair.
func (s *Session) DependsOn() []*model.Edge {
	sel := s.ctl.Selection()
	switch len(sel) {
	case 1:
		return s.graph.Outbound(sel[0])
	case 2:
		return s.between(sel[0], sel[1])
	}
	return nil
}

// DependedOnBy returns the visible inbound edges of a single selected
// node, or the visible edges second → first of a selected pair.
func (s *Session) DependedOnBy() []*model.Edge {
	sel := s.ctl.Selection()
	switch len(sel) {
	case 1:
		return s.graph.Inbound(sel[0])
	case 2:
		return s.between(sel[1], sel[0])
	}
	return nil
}

func (s *Session) between(from, to *model.Node) []*model.Edge {
	var out []*model.Edge
	for _, e := range s.graph.Outbound(from) {
		if e.Target == to {
			out = append(out, e)
		}
	}
	return out
}

func (s *Session) onSelect(sel input.Selection) {
	names := sel.Names()
	observability.Simulation().OnSelection(names)
	s.logger.Debug("selection", "session", s.ID, "nodes", names)
}
