package flux

import "testing"

func newSumFixture() (*Graph, *Domain[int], *Field[int, float64], *Field[int, float64], *ComputedField[int, float64]) {
	g := NewGraph()
	d := AddDomain[int](g, "d")
	f1 := CreateField[float64](d, "f1")
	f2 := CreateField[float64](d, "f2")
	sum := Compute[float64](d, "sum", []Fielder{f1, f2}, func(p *Params) float64 {
		return ParamValue[float64](p, f1) + ParamValue[float64](p, f2)
	})
	return g, d, f1, f2, sum
}

// Scenario 4: sum computed.
func TestComputedSum(t *testing.T) {
	g, _, f1, f2, sum := newSumFixture()

	var calls int
	var lastKey int
	var lastVal float64
	cancel := sum.Subscribe(func(k int, v float64) {
		calls++
		lastKey, lastVal = k, v
	})
	defer cancel()

	f1.SetValue(123, 1.1)
	f2.SetValue(123, 2.2)

	if _, ok := sum.Find(123); ok {
		t.Fatalf("sum should not be computed before compute()")
	}
	if !g.IsComputeRequired() {
		t.Fatalf("IsComputeRequired should be true")
	}

	g.Compute()

	if g.IsComputeRequired() {
		t.Fatalf("IsComputeRequired should be false after compute()")
	}
	if !g.IsPublishRequired() {
		t.Fatalf("IsPublishRequired should be true after compute()")
	}
	if calls != 0 {
		t.Fatalf("observer must not fire until publish()")
	}
	if calls2, _ := sum.Find(123); calls2 != 3.3 {
		t.Fatalf("sum[123] = %v, want 3.3", calls2)
	}

	g.Publish()

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if lastKey != 123 || lastVal != 3.3 {
		t.Fatalf("observer saw (%v, %v), want (123, 3.3)", lastKey, lastVal)
	}
}

// Scenario 5: distinct keys never complete the dependency set.
func TestComputedDistinctKeysNeverResolve(t *testing.T) {
	g, _, f1, f2, sum := newSumFixture()

	var calls int
	cancel := sum.Subscribe(func(int, float64) { calls++ })
	defer cancel()

	f1.SetValue(123, 1.1)
	f2.SetValue(321, 2.2)

	g.Compute()
	g.Publish()

	if calls != 0 {
		t.Fatalf("calls = %d, want 0", calls)
	}
	if g.IsComputeRequired() || g.IsPublishRequired() {
		t.Fatalf("both flags should be false")
	}
	if _, ok := sum.Find(123); ok {
		t.Fatalf("sum[123] should remain unresolved")
	}
}

// Boundary: a computed field with an unresolved dependency never
// enqueues a compute task -- the attempt to recalculate is silently
// abandoned, not deferred.
func TestComputedMissingDependencyNoTask(t *testing.T) {
	g, _, f1, _, sum := newSumFixture()

	f1.SetValue(1, 1.0)

	if g.IsComputeRequired() {
		t.Fatalf("an incomplete dependency set should never enqueue a compute task")
	}
	g.Compute()
	if g.IsPublishRequired() {
		t.Fatalf("publish should not be required: calculation never resolved")
	}
	if _, ok := sum.Find(1); ok {
		t.Fatalf("sum[1] should remain unresolved")
	}
}

// Scenario 7: order independence across all write permutations.
func TestComputedOrderIndependence(t *testing.T) {
	type write struct {
		apply func(iField *Field[int, int], dField *Field[int, float64], rel *RelationField[int, int])
	}

	permutations := [][]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}

	for _, perm := range permutations {
		g := NewGraph()
		d := AddDomain[int](g, "d")
		iField := CreateField[int](d, "i")
		dField := CreateField[float64](d, "dval")
		target := AddDomain[int](g, "target")
		CreateField[int](target, "unused")
		rel := CreateRelationTo(d, target)

		var calls int
		calc := Compute[int](d, "calc", []Fielder{iField, dField, rel}, func(p *Params) int {
			calls++
			return ParamValue[int](p, iField) + int(ParamValue[float64](p, dField))
		})

		actions := []func(){
			func() { iField.SetValue(1, 10) },
			func() { dField.SetValue(1, 5.0) },
			func() { rel.SetValue(1, 99) },
		}

		for _, idx := range perm {
			actions[idx]()
		}

		g.Compute()

		if calls != 1 {
			t.Fatalf("perm %v: calls = %d, want 1", perm, calls)
		}
		got, ok := calc.Find(1)
		if !ok || got != 15 {
			t.Fatalf("perm %v: calc[1] = %v, %v; want 15, true", perm, got, ok)
		}
	}
}

// Boundary: relation-path memoization is stable.
func TestRelationPathMemoized(t *testing.T) {
	g := NewGraph()
	a := AddDomain[int](g, "a")
	b := AddDomain[int](g, "b")
	CreateRelationTo(a, b)

	p1 := a.GetRelationPathTo(b)
	p2 := a.GetRelationPathTo(b)

	if len(p1) != 1 || len(p2) != 1 {
		t.Fatalf("expected a direct 1-hop path both times")
	}
	if p1[0] != p2[0] {
		t.Fatalf("memoized path should return the same relation field")
	}
}
