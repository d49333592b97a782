// Package extensions provides optional, decoupled observability hooks
// for a flux graph -- structured logging around the compute/publish
// barrier and diagnostic dumps when a calculation panics. The core
// engine itself never logs; these are opt-in wrappers a caller adds at
// the edges of its own Compute/Publish loop.
package extensions

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	flux "github.com/flux-engine/flux"
)

// ComputeLogger wraps a graph's compute/publish barrier with structured
// logging of each wave: how long the wave took and whether compute work
// is still pending. It does not participate in computation itself.
type ComputeLogger struct {
	graph  *flux.Graph
	logger *slog.Logger
}

// NewComputeLogger creates a logger for graph using logger for output.
func NewComputeLogger(graph *flux.Graph, logger *slog.Logger) *ComputeLogger {
	return &ComputeLogger{graph: graph, logger: logger}
}

// Compute runs one compute wave, logging its duration and whether
// further waves remain.
func (l *ComputeLogger) Compute() {
	start := time.Now()
	l.graph.Compute()
	l.logger.Debug("compute wave",
		"duration", time.Since(start),
		"more_pending", l.graph.IsComputeRequired(),
	)
}

// Publish drains the publish queue, logging its duration.
func (l *ComputeLogger) Publish() {
	start := time.Now()
	l.graph.Publish()
	l.logger.Debug("publish wave", "duration", time.Since(start))
}

// Settle runs Compute repeatedly until no domain has pending compute
// tasks, then Publish, logging the total wave count. This is the
// common driver loop recommended in the package documentation, wrapped
// with timing.
func (l *ComputeLogger) Settle() {
	start := time.Now()
	waves := 0
	for l.graph.IsComputeRequired() {
		l.graph.Compute()
		waves++
	}
	l.logger.Info("graph settled", "waves", waves, "duration", time.Since(start))
	l.Publish()
}

// SilentHandler is a slog.Handler that discards all log output. Useful
// in tests that wire a ComputeLogger but don't want log noise.
type SilentHandler struct{}

// NewSilentHandler creates a new silent log handler.
func NewSilentHandler() *SilentHandler {
	return &SilentHandler{}
}

func (h *SilentHandler) Enabled(ctx context.Context, level slog.Level) bool { return false }
func (h *SilentHandler) Handle(ctx context.Context, record slog.Record) error { return nil }
func (h *SilentHandler) WithAttrs(attrs []slog.Attr) slog.Handler             { return h }
func (h *SilentHandler) WithGroup(name string) slog.Handler                  { return h }

// HumanHandler is a slog.Handler that formats records for readable
// terminal output rather than slog's default structured form.
type HumanHandler struct {
	writer io.Writer
	level  slog.Level
}

// NewHumanHandler creates a human-readable log handler writing to w at
// the given minimum level.
func NewHumanHandler(w io.Writer, level slog.Level) *HumanHandler {
	return &HumanHandler{writer: w, level: level}
}

func (h *HumanHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *HumanHandler) Handle(ctx context.Context, record slog.Record) error {
	if _, err := fmt.Fprintf(h.writer, "[%s] %s\n", record.Level, record.Message); err != nil {
		return err
	}
	var writeErr error
	record.Attrs(func(a slog.Attr) bool {
		if _, err := fmt.Fprintf(h.writer, "  %s: %v\n", a.Key, a.Value); err != nil {
			writeErr = err
			return false
		}
		return true
	})
	return writeErr
}

func (h *HumanHandler) WithAttrs(attrs []slog.Attr) slog.Handler { return h }
func (h *HumanHandler) WithGroup(name string) slog.Handler       { return h }
