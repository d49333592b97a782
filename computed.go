package flux

// ComputedField is a field whose value at a key is produced by a
// user-supplied pure calculation of declared dependency fields'
// values, resolved through relations where necessary.
type ComputedField[K comparable, V any] struct {
	*Field[K, V]

	deps        []fieldBase
	calculation func(*Params) V
}

func newComputedField[K comparable, V any](
	name string,
	domain *Domain[K],
	deps []fieldBase,
	calc func(*Params) V,
) *ComputedField[K, V] {
	return &ComputedField[K, V]{
		Field:       newField[K, V](name, domain),
		deps:        deps,
		calculation: calc,
	}
}

// Dependencies returns the computed field's fixed dependency set.
func (c *ComputedField[K, V]) Dependencies() []Fielder {
	out := make([]Fielder, len(c.deps))
	for i, d := range c.deps {
		out[i] = d
	}
	return out
}

func (c *ComputedField[K, V]) dependencies() []fieldBase {
	return c.deps
}

// recalculate attempts to build a Params for evaluating the calculation
// at key k (a key in the computed field's own domain). If every
// dependency resolves to a key with a stored value, a compute task is
// enqueued on the owning domain and recalculate returns true. If any
// dependency is unresolvable -- no related key, or no value at that key
// -- the attempt is silently abandoned and recalculate returns false;
// a later write that completes the dependency set will retrigger
// propagation.
func (c *ComputedField[K, V]) recalculate(key Value) bool {
	k, ok := ValueAs[K](key)
	if !ok {
		return false
	}

	owner := c.OwnerDomain()
	keyByDomain := map[domainBase]Value{owner: key}
	valueByField := make(map[fieldBase]Value, len(c.deps))

	for _, dep := range c.deps {
		depDomain := dep.Domain()

		depKey, haveKey := keyByDomain[depDomain]
		if !haveKey {
			depKey = owner.getRelatedKeyAny(key, depDomain)
			if depKey.IsEmpty() {
				return false
			}
			keyByDomain[depDomain] = depKey
		}

		depValue := dep.getValueAny(depKey)
		if depValue.IsEmpty() {
			return false
		}

		valueByField[dep] = depValue
	}

	params := &Params{keyByDomain: keyByDomain, valueByField: valueByField}

	owner.addComputeTask(func() {
		result := c.calculation(params)
		c.Field.SetValue(k, result)
	})

	return true
}
