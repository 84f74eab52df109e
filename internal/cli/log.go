// Package cli implements the graphstat command-line interface.
//
// This package provides commands for computing graph statistics from edge
// list files, querying single-origin distances, converting between edge
// list formats, rendering the stripped core and serving the HTTP API. The
// CLI is built using cobra and logs via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - stats: Node, edge and degree statistics plus the diameter
//   - distance: Distances from one origin
//   - convert: Rewrite an edge list as CSV, tab or JSON
//   - render: DOT or SVG drawing with stripped and core nodes colored
//   - serve: Run the HTTP API
//   - cache: Manage the result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so helpers can log without a CLI handle.
//
// # Example
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger. Lines carry a "graphstat" prefix and a
// wall-clock timestamp; messages below level are dropped.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          "graphstat",
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           level,
	})
}

// stageTimer measures one named step of a command, such as reading or
// converting an edge list. Not safe for concurrent use.
type stageTimer struct {
	logger *log.Logger
	stage  string
	start  time.Time
}

func startStage(l *log.Logger, stage string) *stageTimer {
	l.Debug("stage started", "stage", stage)
	return &stageTimer{logger: l, stage: stage, start: time.Now()}
}

// done logs msg at info level with the stage, its elapsed time and the
// extra key/value pairs.
func (t *stageTimer) done(msg string, keyvals ...any) {
	kv := make([]any, 0, 4+len(keyvals))
	kv = append(kv, "stage", t.stage, "elapsed", time.Since(t.start).Round(time.Millisecond))
	t.logger.Info(msg, append(kv, keyvals...)...)
}

type loggerKey struct{}

// contextWithLogger attaches l so helpers without a CLI handle can log.
func contextWithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFrom returns the logger attached to ctx, or log.Default().
func loggerFrom(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
