package flux

// RelationField is a specialization of Field whose value type is a key
// in a remote domain -- a foreign key. It additionally maintains a
// reverse index (remote key -> set of local keys) used by the
// propagation engine to walk from a remote-domain change back to every
// local key that references it.
type RelationField[KLocal comparable, KRemote comparable] struct {
	*Field[KLocal, KRemote]

	remoteDomain      *Domain[KRemote]
	localKeysByRemote map[KRemote][]KLocal
}

func newRelationField[KLocal comparable, KRemote comparable](
	name string,
	local *Domain[KLocal],
	remote *Domain[KRemote],
) *RelationField[KLocal, KRemote] {
	rf := &RelationField[KLocal, KRemote]{
		Field:             newField[KLocal, KRemote](name, local),
		remoteDomain:      remote,
		localKeysByRemote: make(map[KRemote][]KLocal),
	}
	rf.Field.setHook = func(key KLocal, value KRemote) {
		rf.localKeysByRemote[value] = append(rf.localKeysByRemote[value], key)
	}
	return rf
}

// RemoteDomain returns the domain this relation field's values are keys
// into.
func (r *RelationField[KLocal, KRemote]) RemoteDomain() *Domain[KRemote] {
	return r.remoteDomain
}

func (r *RelationField[KLocal, KRemote]) remoteDomainAny() domainBase {
	return r.remoteDomain
}

// LocalKeysFor returns every local key whose value is remoteKey, in the
// order those pairs were established. Duplicates are never removed, so
// the slice may contain a local key more than once if it was set to
// remoteKey, changed, and set back.
func (r *RelationField[KLocal, KRemote]) LocalKeysFor(remoteKey KRemote) []KLocal {
	return r.localKeysByRemote[remoteKey]
}

func (r *RelationField[KLocal, KRemote]) localKeysForAny(remoteKey Value) []Value {
	rk, ok := ValueAs[KRemote](remoteKey)
	if !ok {
		return nil
	}
	locals := r.localKeysByRemote[rk]
	out := make([]Value, len(locals))
	for i, lk := range locals {
		out[i] = NewValue(lk)
	}
	return out
}
