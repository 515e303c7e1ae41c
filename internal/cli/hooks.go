package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depweb/pkg/observability"
)

// logHooks reports simulation and export events at debug level.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.SimulationHooks = logHooks{}
	_ observability.ExportHooks     = logHooks{}
)

func (h logHooks) OnBuild(nodes, edges, groups int, d time.Duration) {
	h.logger.Debug("graph built", "nodes", nodes, "edges", edges, "groups", groups, "took", d.Round(time.Microsecond))
}

func (h logHooks) OnGenesis(ticks int, d time.Duration) {
	h.logger.Debug("genesis done", "ticks", ticks, "took", d.Round(time.Microsecond))
}

// OnFrame only reports catch-up frames; a steady host steps one tick per
// frame and would flood the log.
func (h logHooks) OnFrame(batch, ticks int, alpha float64, d time.Duration) {
	if batch > 1 {
		h.logger.Debug("frame behind", "batch", batch, "ticks", ticks, "alpha", alpha, "took", d.Round(time.Microsecond))
	}
}

func (h logHooks) OnSelection(names []string) {
	h.logger.Debug("selection changed", "nodes", names)
}

func (h logHooks) OnExportStart(_ context.Context, formats []string) {
	h.logger.Debug("export started", "formats", formats)
}

func (h logHooks) OnExportComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("export failed", "format", format, "err", err)
		return
	}
	h.logger.Debug("export done", "format", format, "bytes", size, "took", d.Round(time.Millisecond))
}

// registerHooks routes observability events to logger.
func registerHooks(logger *log.Logger) {
	h := logHooks{logger: logger}
	observability.SetSimulationHooks(h)
	observability.SetExportHooks(h)
}
