// Package cli implements the chartcore command-line interface.
//
// This package provides commands for binding chart roles, laying out panel
// trees, drawing both as Graphviz diagrams, browsing results interactively,
// serving the HTTP API and managing the report cache. The CLI is built using
// cobra and logs via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - bind: Resolve roles and print the binding table
//   - layout: Bind and lay out a chart, writing a JSON report
//   - dot: Draw the role graph or the panel tree (DOT, SVG, PDF, PNG)
//   - inspect: Browse roles and panels in the terminal
//   - serve: Run the HTTP API
//   - cache: Manage the report cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Bound 4 roles (12ms)"
func (p *progress) done(msg string) {
	p.logger.Debugf("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
