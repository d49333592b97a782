package extensions

import (
	"fmt"
	"log/slog"
	"strings"

	flux "github.com/flux-engine/flux"
)

// DumpOnPanic runs fn (typically a graph.Compute/Publish settle loop)
// and, if it panics -- the only way a flux computation signals a
// structural bug, such as a *flux.TypeMismatchError from a
// miswired dependency -- logs a snapshot of every domain's fields
// before re-panicking. It never suppresses the panic; it exists to
// make the dependency graph visible in the log right before the crash,
// since a bare stack trace rarely shows which field held which value.
func DumpOnPanic(logger *slog.Logger, graph *flux.Graph, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("flux computation panicked",
				"panic", fmt.Sprintf("%v", r),
				"graph", formatGraph(graph),
			)
			panic(r)
		}
	}()
	fn()
}

func formatGraph(graph *flux.Graph) string {
	var sb strings.Builder
	for _, d := range graph.Domains() {
		sb.WriteString(d.Name())
		sb.WriteString(":\n")
		for _, f := range d.Fields() {
			fmt.Fprintf(&sb, "  %s (%d values)\n", f.Name(), fieldCount(f))
		}
	}
	return sb.String()
}

// fieldCount reports how many keys a field holds, without needing to
// know its concrete K/V instantiation. Fielder itself does not expose
// Count, so fieldCount asserts for a Count method, which every field
// created by flux has, and returns -1 for a field without one.
func fieldCount(f flux.Fielder) int {
	type counter interface{ Count() int }
	if c, ok := f.(counter); ok {
		return c.Count()
	}
	return -1
}
