// Package scheduler converts wall-clock time into simulation ticks.
//
// The simulation runs at a fixed rate independent of how often the host
// paints. On every host callback the scheduler computes how many ticks
// should have happened since the session started, steps the simulation by
// the difference, resolves pending input once and draws once:
//
//	expected = ceil(elapsed / msPerTick)
//	batch    = max(expected - ticks, 0)
//
// A slow host therefore sees larger batches, never a slower layout. Given
// the same sequence of elapsed times the tick sequence is identical.
package scheduler

import (
	"math"
	"time"
)

// Stepper advances the simulation by one tick.
type Stepper interface {
	Step()
}

// Resolver applies input that depends on the latest positions.
type Resolver interface {
	Resolve()
}

// Drawer paints one frame.
type Drawer interface {
	Draw()
}

// Scheduler drives a Stepper from host callbacks. It is not safe for
// concurrent use; hosts call Frame from their single update goroutine.
type Scheduler struct {
	msPerTick float64
	stepper   Stepper
	resolver  Resolver
	drawer    Drawer

	ticks   int
	stopped bool
}

// New returns a scheduler running at ticksPerSecond. Resolver and drawer
// may be nil.
func New(ticksPerSecond float64, s Stepper, r Resolver, d Drawer) *Scheduler {
	return &Scheduler{
		msPerTick: 1000 / ticksPerSecond,
		stepper:   s,
		resolver:  r,
		drawer:    d,
	}
}

// Frame handles one host callback. elapsed is the time since the session
// started. It returns the number of ticks stepped.
func (s *Scheduler) Frame(elapsed time.Duration) int {
	if s.stopped {
		return 0
	}
	batch := s.Due(elapsed)
	for range batch {
		s.stepper.Step()
	}
	s.ticks += batch
	if s.resolver != nil {
		s.resolver.Resolve()
	}
	if s.drawer != nil {
		s.drawer.Draw()
	}
	return batch
}

// Due returns how many ticks Frame(elapsed) would step, without stepping.
func (s *Scheduler) Due(elapsed time.Duration) int {
	ms := float64(elapsed) / float64(time.Millisecond)
	expected := math.Ceil(ms / s.msPerTick)
	if math.IsNaN(expected) || expected <= float64(s.ticks) {
		return 0
	}
	if expected > math.MaxInt32 {
		expected = math.MaxInt32
	}
	return int(expected) - s.ticks
}

// Ticks returns the number of ticks stepped so far. It never decreases.
func (s *Scheduler) Ticks() int { return s.ticks }

// Stop halts the scheduler. Later Frame calls do nothing.
func (s *Scheduler) Stop() { s.stopped = true }

// Stopped reports whether Stop was called.
func (s *Scheduler) Stopped() bool { return s.stopped }
