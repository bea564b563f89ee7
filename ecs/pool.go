package ecs

import "slices"

// Pool hands out entity identifiers and recycles the indices of destroyed
// ones. Each destruction bumps the version stored for the index, so
// identifiers kept around after Destroy are recognised as stale.
type Pool[E Identifier] struct {
	// entities[i] is the live identifier with index i, or a record with a
	// null index field holding the version the next occupant will get.
	entities []E
	free     []E
	alive    int
}

// NewPool creates an empty identifier pool.
func NewPool[E Identifier]() *Pool[E] {
	return &Pool[E]{}
}

func released[E Identifier](version E) E {
	return Compose(IndexMask[E](), version)
}

// nextVersion increments version, skipping the tombstone value.
func nextVersion[E Identifier](version E) E {
	version = (version + 1) & VersionMask[E]()
	if version == VersionMask[E]() {
		return 0
	}
	return version
}

// Create returns a new identifier, reusing the most recently released index
// when there is one.
func (p *Pool[E]) Create() (E, error) {
	if n := len(p.free); n > 0 {
		idx := p.free[n-1]
		p.free = p.free[:n-1]
		e := Compose(idx, VersionOf(p.entities[idx]))
		p.entities[idx] = e
		p.alive++
		return e, nil
	}

	idx := E(len(p.entities))
	if idx >= IndexMask[E]() {
		return Null[E](), contractError("create", idx, ErrIndexSpaceExhausted)
	}
	e := Compose(idx, 0)
	p.entities = append(p.entities, e)
	p.alive++
	return e, nil
}

// CreateFrom creates the identifier given as hint, index and version
// included. Indices below the hint that were never used become free.
func (p *Pool[E]) CreateFrom(hint E) (E, error) {
	switch {
	case IsNull(hint):
		return Null[E](), contractError("create", hint, ErrNullEntity)
	case IsTombstone(hint):
		return Null[E](), contractError("create", hint, ErrTombstoneVersion)
	}

	idx := IndexOf(hint)
	for E(len(p.entities)) <= idx {
		p.free = append(p.free, E(len(p.entities)))
		p.entities = append(p.entities, released(E(0)))
	}
	if !IsNull(p.entities[idx]) {
		return Null[E](), contractError("create", hint, ErrAlreadyContained)
	}

	if at := slices.Index(p.free, idx); at >= 0 {
		p.free = slices.Delete(p.free, at, at+1)
	}
	p.entities[idx] = hint
	p.alive++
	return hint, nil
}

// Destroy releases e and bumps the version of its index.
func (p *Pool[E]) Destroy(e E) error {
	return p.DestroyWithVersion(e, nextVersion(VersionOf(e)))
}

// DestroyWithVersion releases e; the next identifier created on its index
// gets version. The tombstone version is refused.
func (p *Pool[E]) DestroyWithVersion(e E, version E) error {
	if !p.Valid(e) {
		return contractError("destroy", e, ErrStaleEntity)
	}
	if version&VersionMask[E]() == VersionMask[E]() {
		return contractError("destroy", e, ErrTombstoneVersion)
	}

	idx := IndexOf(e)
	p.entities[idx] = released(version)
	p.free = append(p.free, idx)
	p.alive--
	return nil
}

// Valid reports whether e is alive with this exact version.
func (p *Pool[E]) Valid(e E) bool {
	idx := IndexOf(e)
	return !IsNull(e) && idx < E(len(p.entities)) && p.entities[idx] == e
}

// Current returns the version in use for the index of e, alive or not.
func (p *Pool[E]) Current(e E) (E, bool) {
	idx := IndexOf(e)
	if IsNull(e) || idx >= E(len(p.entities)) {
		return Tombstone[E](), false
	}
	return VersionOf(p.entities[idx]), true
}

// Alive returns the number of live identifiers.
func (p *Pool[E]) Alive() int {
	return p.alive
}

// Size returns the number of indices ever handed out.
func (p *Pool[E]) Size() int {
	return len(p.entities)
}

// Each yields the live identifiers in index order.
func (p *Pool[E]) Each(yield func(E) bool) {
	for _, e := range p.entities {
		if IsNull(e) {
			continue
		}
		if !yield(e) {
			return
		}
	}
}
