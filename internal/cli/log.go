// Package cli implements the depweb command-line interface.
//
// Every command takes a dependency matrix and its clustering, builds the
// graph and runs a force-directed layout session over it. The CLI is built
// using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - layout: Simulate headlessly and write the layout as JSON
//   - render: Simulate headlessly and draw PNG, SVG, DOT or JSON snapshots
//   - explore: Interactive explorer in the terminal
//   - window: Interactive explorer in a desktop window
//
// # Logging
//
// --verbose (-v) turns on debug logs, including the simulation and export
// hooks. Headless commands log a timing line per step with structured
// fields. The terminal explorer owns the screen, so it sends logs to
// --log-file or discards them.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger on w at level with centisecond timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one step of a command.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with keyvals and the elapsed wall time,
// e.g. "Simulated ticks=330 alpha=0.0051 elapsed=1.234s".
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

type ctxKey struct{}

// withLogger attaches l to ctx for the command's run.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() when commands run without the root pre-run.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
