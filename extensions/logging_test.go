package extensions

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	flux "github.com/flux-engine/flux"
)

func TestComputeLoggerSettleDrivesGraphToCompletion(t *testing.T) {
	graph := flux.NewGraph()
	d := flux.AddDomain[int](graph, "d")
	base := flux.CreateField[float64](d, "base")
	stage1 := flux.Compute[float64](d, "stage1", []flux.Fielder{base}, func(p *flux.Params) float64 {
		return flux.ParamValue[float64](p, base) * 2
	})
	stage2 := flux.Compute[float64](d, "stage2", []flux.Fielder{stage1}, func(p *flux.Params) float64 {
		return flux.ParamValue[float64](p, stage1) + 1
	})

	var published int
	cancel := stage2.Subscribe(func(int, float64) { published++ })
	defer cancel()

	base.SetValue(1, 10.0)

	logger := slog.New(NewSilentHandler())
	NewComputeLogger(graph, logger).Settle()

	if graph.IsComputeRequired() || graph.IsPublishRequired() {
		t.Fatalf("Settle should drive the graph to completion")
	}
	got, ok := stage2.Find(1)
	if !ok || got != 21.0 {
		t.Fatalf("stage2[1] = %v, %v; want 21.0, true", got, ok)
	}
	if published != 1 {
		t.Fatalf("published = %d, want 1", published)
	}
}

func TestHumanHandlerFormatsRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHumanHandler(&buf, slog.LevelInfo))
	logger.Info("graph settled", "waves", 2)

	out := buf.String()
	if !strings.Contains(out, "graph settled") || !strings.Contains(out, "waves") {
		t.Fatalf("HumanHandler output missing expected fields: %q", out)
	}
}

func TestSilentHandlerDiscardsEverything(t *testing.T) {
	var buf bytes.Buffer
	h := NewSilentHandler()
	if h.Enabled(nil, slog.LevelError) {
		t.Fatalf("SilentHandler should never be enabled")
	}
	logger := slog.New(h)
	logger.Error("should not appear")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestDumpOnPanicLogsThenRepanics(t *testing.T) {
	graph := flux.NewGraph()
	d := flux.AddDomain[int](graph, "d")
	flux.CreateField[float64](d, "f")

	var buf bytes.Buffer
	logger := slog.New(NewHumanHandler(&buf, slog.LevelError))

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected the original panic to propagate")
		}
		if !strings.Contains(buf.String(), "panicked") {
			t.Fatalf("expected a diagnostic log before the panic, got %q", buf.String())
		}
	}()

	DumpOnPanic(logger, graph, func() {
		panic("boom")
	})
}
