// Command fluxdemo builds a two-domain instrument/trade graph, with a
// trade return computed across the trade->instrument relation, and
// drives it through the compute/publish barrier with flag-configured
// input values. It has no currency domain.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	flux "github.com/flux-engine/flux"
	"github.com/flux-engine/flux/extensions"
	"github.com/google/uuid"
)

func main() {
	var (
		lastPx   = flag.Float64("last-px", 150.0, "instrument last traded price")
		usdRate  = flag.Float64("usd-rate", 1.0, "instrument USD conversion rate")
		avgPx    = flag.Float64("avg-px", 145.0, "trade average price")
		cumQty   = flag.Float64("cum-qty", 10.0, "trade cumulative quantity")
		showDot  = flag.Bool("dot", false, "print the DOT dependency graph before settling")
		showTree = flag.Bool("tree", false, "print an ASCII tree of the trade domain before settling")
	)
	flag.Parse()

	graph := flux.NewGraph()

	instrument := flux.AddDomain[string](graph, "instrument")
	instrumentLastPx := flux.CreateField[float64](instrument, "lastPx")
	instrumentUsdRate := flux.CreateField[float64](instrument, "usdRate")

	trade := flux.AddDomain[uuid.UUID](graph, "trade")
	tradeCumQty := flux.CreateField[float64](trade, "cumQty")
	tradeAvgPx := flux.CreateField[float64](trade, "avgPx")
	tradeToInstrument := flux.CreateRelationTo(trade, instrument)

	tradeReturn := flux.Compute[float64](trade, "tradeReturn",
		[]flux.Fielder{tradeCumQty, instrumentLastPx, tradeAvgPx, instrumentUsdRate},
		func(p *flux.Params) float64 {
			return flux.ParamValue[float64](p, tradeCumQty) *
				(flux.ParamValue[float64](p, instrumentLastPx) - flux.ParamValue[float64](p, tradeAvgPx)) *
				flux.ParamValue[float64](p, instrumentUsdRate)
		},
	)

	cancel := tradeReturn.Subscribe(func(id uuid.UUID, value float64) {
		fmt.Printf("trade %s: tradeReturn = %.4f\n", id, value)
	})
	defer cancel()

	if *showDot {
		if err := graph.ToDot(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, "dot:", err)
			os.Exit(1)
		}
	}
	if *showTree {
		if err := flux.PrintTree(os.Stdout, trade); err != nil {
			fmt.Fprintln(os.Stderr, "tree:", err)
			os.Exit(1)
		}
	}

	tradeID := uuid.New()

	instrumentLastPx.SetValue("AAPL", *lastPx)
	instrumentUsdRate.SetValue("AAPL", *usdRate)
	tradeCumQty.SetValue(tradeID, *cumQty)
	tradeAvgPx.SetValue(tradeID, *avgPx)
	tradeToInstrument.SetValue(tradeID, "AAPL")

	logger := slog.New(extensions.NewHumanHandler(os.Stdout, slog.LevelInfo))
	settler := extensions.NewComputeLogger(graph, logger)
	settler.Settle()
}
