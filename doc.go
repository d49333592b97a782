// Package flux provides an in-process reactive computation graph for
// tabular, keyed data.
//
// # Overview
//
// Flux organizes code around four core concepts:
//
//  1. Domains: entity types indexed by a distinct key type
//  2. Fields: per-key attributes within a domain, plain or derived
//  3. Relations: foreign-key fields linking one domain's keys to another
//  4. The Graph: the container that drives the compute/publish barrier
//
// # Basic Usage
//
// Create a graph, add domains, and declare fields:
//
//	graph := flux.NewGraph()
//	accounts := flux.AddDomain[int](graph, "account")
//
//	balance := flux.CreateField[float64](accounts, "balance")
//	balance.SetValue(1, 100.0)
//
//	v, ok := balance.Find(1) // 100.0, true
//
// # Computed Fields
//
// A computed field's value is a pure function of other fields' values,
// resolved through declared dependencies:
//
//	fee := flux.CreateField[float64](accounts, "fee")
//
//	net := flux.Compute[float64](accounts, "net", []flux.Fielder{balance, fee},
//	    func(p *flux.Params) float64 {
//	        return flux.ParamValue[float64](p, balance) - flux.ParamValue[float64](p, fee)
//	    },
//	)
//
//	fee.SetValue(1, 5.0)
//	graph.Compute() // net[1] == 95.0, once balance[1] is also set
//
// # Relations
//
// A relation field's value is a key in a remote domain. Computed
// fields may depend on fields across a relation; the engine resolves
// the related key automatically and re-registers the relation itself
// as a trigger, so that populating the relation later also triggers
// recomputation:
//
//	trades := flux.AddDomain[uuid.UUID](graph, "trade")
//	tradeToAccount := flux.CreateRelationTo(trades, accounts)
//
//	qty := flux.CreateField[float64](trades, "qty")
//
//	tradeReturn := flux.Compute[float64](trades, "tradeReturn",
//	    []flux.Fielder{qty, net},
//	    func(p *flux.Params) float64 {
//	        return flux.ParamValue[float64](p, qty) * flux.ParamValue[float64](p, net)
//	    },
//	)
//
// # The Compute/Publish Barrier
//
// Writes take effect immediately for reads, but computed-field
// recalculation and subscriber notification are deferred until the
// caller explicitly advances the graph:
//
//	for graph.IsComputeRequired() {
//	    graph.Compute()
//	}
//	graph.Publish()
//
// Each Compute call drains every domain's pending recompute tasks
// exactly once, in domain declaration order -- a single "wave". A
// cascade that lands on a domain already drained in this call waits
// for the next call, which is why multi-hop cascades may need more
// than one Compute call to settle; IsComputeRequired reports whether
// any remain.
//
// # Subscriptions
//
// Any field -- plain, relation, or computed -- can be subscribed to.
// Notifications are queued at SetValue time and delivered on Publish:
//
//	cancel := net.Subscribe(func(key int, value float64) {
//	    fmt.Printf("account %d net changed to %v\n", key, value)
//	})
//	defer cancel()
//
// # Introspection
//
// Graph.ToDot emits a DOT-format dependency graph for visualization
// with any Graphviz-compatible renderer; PrintTree renders a single
// domain's fields as an ASCII tree for quick terminal inspection.
//
// # Concurrency
//
// Flux is single-threaded and cooperative: all mutating operations
// (SetValue, Compute, Publish, Subscribe) must be called from the same
// goroutine. There is no internal locking.
package flux
