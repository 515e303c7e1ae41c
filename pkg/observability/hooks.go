// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about graph construction, the simulation loop, selection
// changes and file exports.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Simulation hooks run on the frame callback and take no context: they must
// return quickly. Export hooks run in the headless commands and receive the
// command context.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSimulationHooks(&mySimulationHooks{})
//	    observability.SetExportHooks(&myExportHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Simulation().OnFrame(batch, ticks, alpha, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Simulation Hooks
// =============================================================================

// SimulationHooks receives events from a running session.
type SimulationHooks interface {
	// OnBuild records a successful graph build.
	OnBuild(nodes, edges, groups int, duration time.Duration)

	// OnGenesis records the synchronous warm-up before the first frame.
	OnGenesis(ticks int, duration time.Duration)

	// OnFrame records one host callback: ticks stepped in this batch, total
	// ticks, the current alpha and the time spent in the callback.
	OnFrame(batch, ticks int, alpha float64, duration time.Duration)

	// OnSelection records a selection change.
	OnSelection(names []string)
}

// =============================================================================
// Export Hooks
// =============================================================================

// ExportHooks receives events from snapshot exports.
type ExportHooks interface {
	OnExportStart(ctx context.Context, formats []string)
	OnExportComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSimulationHooks is a no-op implementation of SimulationHooks.
type NoopSimulationHooks struct{}

func (NoopSimulationHooks) OnBuild(int, int, int, time.Duration)     {}
func (NoopSimulationHooks) OnGenesis(int, time.Duration)             {}
func (NoopSimulationHooks) OnFrame(int, int, float64, time.Duration) {}
func (NoopSimulationHooks) OnSelection([]string)                     {}

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnExportStart(context.Context, []string)                            {}
func (NoopExportHooks) OnExportComplete(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	simulationHooks SimulationHooks = NoopSimulationHooks{}
	exportHooks     ExportHooks     = NoopExportHooks{}
	hooksMu         sync.RWMutex
)

// SetSimulationHooks registers custom simulation hooks.
// This should be called once at application startup before any session starts.
func SetSimulationHooks(h SimulationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		simulationHooks = h
	}
}

// SetExportHooks registers custom export hooks.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// Simulation returns the registered simulation hooks.
func Simulation() SimulationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return simulationHooks
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	simulationHooks = NoopSimulationHooks{}
	exportHooks = NoopExportHooks{}
}
