// Package cli implements the layoutkit command-line interface.
//
// The commands read scene documents (TOML, YAML or JSON), run them through
// the layout pipeline and report or render the resulting geometry. The CLI is
// built using cobra and logs via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - apply: Lay out scenes and write their geometry or a wireframe
//   - preview: Resize a scene interactively in the terminal
//   - diagram: Render the laid-out item tree with Graphviz
//   - measure: Estimate the box needed for lines of text
//   - serve: Run the HTTP API
//   - cache: Inspect and clear the layout cache
//
// # Configuration
//
// Defaults come from $XDG_CONFIG_HOME/layoutkit/config.toml, then from the
// LAYOUTKIT_CACHE_BACKEND and LAYOUTKIT_CACHE_URL environment variables, then
// from flags.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger writes level-filtered, timestamped ("15:04:05.00") records to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one command. Intermediate phases are logged at debug
// level with their own duration; done logs the total at info level.
type progress struct {
	logger *log.Logger
	start  time.Time
	last   time.Time
}

func newProgress(l *log.Logger) *progress {
	now := time.Now()
	return &progress{logger: l, start: now, last: now}
}

// step logs the end of a phase.
func (p *progress) step(phase string, keyvals ...any) {
	now := time.Now()
	p.logger.Debug(phase, append(keyvals, "took", now.Sub(p.last).Round(time.Microsecond))...)
	p.last = now
}

// done logs msg with the time since the progress was created, e.g.
// "Laid out 3 scene(s) (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the command logger, or log.Default() when none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
