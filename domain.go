package flux

// domainBase is the type-erased surface a domain presents to the
// graph, the propagation engine, and other domains during relation-path
// resolution -- all of which must operate across domains of different
// key types K.
type domainBase interface {
	Name() string
	Fields() []fieldBase
	ForeignKeys() []relationFieldBase
	FindField(name string) (fieldBase, bool)

	getRelationPathTo(target domainBase) []relationFieldBase
	getRelatedKeyAny(key Value, target domainBase) Value
	onInputChanged(changed fieldBase, key Value)
	addComputeTask(fn func())
	addPublishTask(fn func())

	isComputeRequired() bool
	isPublishRequired() bool
	drainCompute()
	drainPublish()
}

// Domain is an entity type indexed by a distinct key type K. It owns
// its fields, its pending compute/publish task queues, and memoizes
// relation paths to other domains.
type Domain[K comparable] struct {
	name string

	fields      []fieldBase
	fieldByName map[string]fieldBase

	foreignKeys      map[domainBase]relationFieldBase
	foreignKeysOrder []relationFieldBase

	relationPaths map[domainBase][]relationFieldBase

	computeQueue []func()
	publishQueue []func()
}

func newDomain[K comparable](name string) *Domain[K] {
	return &Domain[K]{
		name:          name,
		fieldByName:   make(map[string]fieldBase),
		foreignKeys:   make(map[domainBase]relationFieldBase),
		relationPaths: make(map[domainBase][]relationFieldBase),
	}
}

// Name returns the domain's name, unique within its graph.
func (d *Domain[K]) Name() string { return d.name }

func (d *Domain[K]) addField(f fieldBase) {
	if _, exists := d.fieldByName[f.Name()]; exists {
		panic(&DuplicateNameError{Kind: "field", Name: f.Name()})
	}
	d.fields = append(d.fields, f)
	d.fieldByName[f.Name()] = f
}

// CreateField creates a new plain field of value type V in domain d.
// Go methods cannot introduce their own type parameters, so field
// creation is a free function parameterized over both the domain's key
// type and the field's value type, taking the domain explicitly --
// the direct translation of the original's member template
// Domain<TKey>::createField<TValue>.
func CreateField[V any, K comparable](d *Domain[K], name string) *Field[K, V] {
	f := newField[K, V](name, d)
	d.addField(f)
	return f
}

// CreateRelationTo creates a relation (foreign key) field in this
// domain, whose values are keys in remote. The field is auto-named
// "<local>-><remote>". The first relation declared toward a given
// remote domain is the canonical foreign key used for path-finding. A
// later relation toward the same remote shares the auto-generated name:
// it is kept as a field of the domain (listed by Fields), but FindField
// returns the first one and it takes no part in path-finding.
func CreateRelationTo[KLocal comparable, KRemote comparable](local *Domain[KLocal], remote *Domain[KRemote]) *RelationField[KLocal, KRemote] {
	name := local.name + "->" + remote.name
	rf := newRelationField[KLocal, KRemote](name, local, remote)

	if _, exists := local.foreignKeys[remote]; exists {
		local.fields = append(local.fields, rf)
		return rf
	}

	local.addField(rf)
	local.foreignKeys[remote] = rf
	local.foreignKeysOrder = append(local.foreignKeysOrder, rf)

	return rf
}

// Compute creates a new computed field named name in this domain, whose
// value at a key is calc invoked with the resolved values of deps. As
// part of creation, the computed field is registered as a dependant of
// every field in deps, and -- critically -- of every relation field
// lying on a path between any two of the domains involved (the owning
// domain and each dependency's domain). This ensures that establishing
// or changing a foreign-key link itself triggers recomputation, not
// just a direct write to one of deps.
func Compute[V any, K comparable](d *Domain[K], name string, deps []Fielder, calc func(*Params) V) *ComputedField[K, V] {
	depBases := make([]fieldBase, len(deps))
	for i, dep := range deps {
		depBases[i] = asFieldBase(dep)
	}

	cf := newComputedField[K, V](name, d, depBases, calc)
	d.addField(cf)

	for _, dep := range depBases {
		dep.addDependant(cf)
	}

	involvedDomains := []domainBase{domainBase(d)}
	seen := map[domainBase]bool{domainBase(d): true}
	for _, dep := range depBases {
		dm := dep.Domain()
		if !seen[dm] {
			seen[dm] = true
			involvedDomains = append(involvedDomains, dm)
		}
	}

	for _, d1 := range involvedDomains {
		for _, d2 := range involvedDomains {
			if d1 == d2 {
				continue
			}
			for _, fk := range d1.getRelationPathTo(d2) {
				fk.addDependant(cf)
			}
		}
	}

	return cf
}

// FindField looks up a field by name within this domain.
func (d *Domain[K]) FindField(name string) (fieldBase, bool) {
	f, ok := d.fieldByName[name]
	return f, ok
}

// Fields returns the domain's fields in declaration order.
func (d *Domain[K]) Fields() []fieldBase {
	return d.fields
}

// ForeignKeys returns the canonical foreign-key relation fields (one
// per target domain: the first relation declared toward that target),
// in declaration order.
func (d *Domain[K]) ForeignKeys() []relationFieldBase {
	return d.foreignKeysOrder
}

// GetRelationPathTo returns the ordered sequence of relation fields
// that may be followed, in this domain, to reach relatedDomain. The
// result is memoized: repeated queries for the same target return the
// same (reused) slice. An empty result means no path exists.
func (d *Domain[K]) GetRelationPathTo(relatedDomain domainBase) []relationFieldBase {
	return d.getRelationPathTo(relatedDomain)
}

func (d *Domain[K]) getRelationPathTo(target domainBase) []relationFieldBase {
	if cached, ok := d.relationPaths[target]; ok {
		return cached
	}

	if direct, ok := d.foreignKeys[target]; ok {
		path := []relationFieldBase{direct}
		d.relationPaths[target] = path
		return path
	}

	path := d.bfsRelationPath(target)
	d.relationPaths[target] = path
	return path
}

// bfsRelationPath performs a breadth-first search over domains, where
// each domain's outbound edges are its canonical foreign keys. Ties
// among equal-length paths are broken by BFS enqueue order, which is
// the insertion order of foreign keys at each hop.
func (d *Domain[K]) bfsRelationPath(target domainBase) []relationFieldBase {
	type frontierEntry struct {
		domain domainBase
		path   []relationFieldBase
	}

	visited := map[domainBase]bool{domainBase(d): true}
	queue := []frontierEntry{{domain: domainBase(d), path: nil}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, fk := range cur.domain.ForeignKeys() {
			remote := fk.remoteDomainAny()
			if visited[remote] {
				continue
			}
			visited[remote] = true

			nextPath := make([]relationFieldBase, len(cur.path), len(cur.path)+1)
			copy(nextPath, cur.path)
			nextPath = append(nextPath, fk)

			if remote == target {
				return nextPath
			}
			queue = append(queue, frontierEntry{domain: remote, path: nextPath})
		}
	}

	return nil
}

// GetRelatedKey resolves the key in relatedDomain reachable from k via
// this domain's relation path, or the empty Value if no path exists or
// any hop is unresolved.
func (d *Domain[K]) GetRelatedKey(k K, relatedDomain domainBase) Value {
	return d.getRelatedKeyAny(NewValue(k), relatedDomain)
}

func (d *Domain[K]) getRelatedKeyAny(key Value, target domainBase) Value {
	path := d.getRelationPathTo(target)
	if len(path) == 0 {
		return EmptyValue()
	}

	current := key
	for _, fk := range path {
		current = fk.getValueAny(current)
		if current.IsEmpty() {
			return EmptyValue()
		}
	}
	return current
}

// onInputChanged is invoked when a field owned by this domain changes
// at key, with at least one dependant computed field. It enumerates
// every affected (computed field, key) pair and recalculates each.
func (d *Domain[K]) onInputChanged(changed fieldBase, key Value) {
	for _, c := range changed.dependants() {
		if c.Domain() == domainBase(d) {
			c.recalculate(key)
			continue
		}

		remote := c.Domain()
		path := remote.getRelationPathTo(domainBase(d))
		if len(path) == 0 {
			// Invariant violation: a computed field in another domain
			// depending on a field here implies a path back must
			// exist. Nothing to recompute without one.
			continue
		}

		if len(path) == 1 {
			for _, relatedKey := range path[0].localKeysForAny(key) {
				c.recalculate(relatedKey)
			}
			continue
		}

		// path runs from c's domain toward this one, so its reverse
		// indices are walked from the last hop back to the first.
		frontier := []Value{key}
		for i := len(path) - 1; i >= 0; i-- {
			var next []Value
			for _, fkey := range frontier {
				next = append(next, path[i].localKeysForAny(fkey)...)
			}
			frontier = next
		}
		for _, relatedKey := range frontier {
			c.recalculate(relatedKey)
		}
	}
}

func (d *Domain[K]) addComputeTask(fn func()) {
	d.computeQueue = append(d.computeQueue, fn)
}

func (d *Domain[K]) addPublishTask(fn func()) {
	d.publishQueue = append(d.publishQueue, fn)
}

func (d *Domain[K]) isComputeRequired() bool { return len(d.computeQueue) > 0 }
func (d *Domain[K]) isPublishRequired() bool { return len(d.publishQueue) > 0 }

// drainCompute executes each compute task enqueued before this call
// began, in FIFO order, then clears the queue. A task may, by writing
// its computed field's value, cascade into further recalculation --
// but the resulting tasks land in the now-cleared queue and are not
// part of the snapshot already being run, so a cascade never resolves
// within the same drain pass that triggered it, even onto its own
// domain. It waits for the next Graph.Compute() call, which is why a
// multi-stage dependency chain may need several calls to fully settle.
func (d *Domain[K]) drainCompute() {
	queue := d.computeQueue
	d.computeQueue = nil
	for _, task := range queue {
		task()
	}
}

// drainPublish executes each enqueued publish task once, in FIFO
// order, then clears the queue.
func (d *Domain[K]) drainPublish() {
	queue := d.publishQueue
	d.publishQueue = nil
	for _, task := range queue {
		task()
	}
}
