package ecs

import "iter"

// Iterator is a random access cursor over a SparseSet in iteration order,
// that is from the last packed entity to the first one. It stores a count
// of remaining entities rather than a position, so Begin is Size and End
// is zero. Iterators stay usable across reallocation of the packed array
// but are invalidated by erasure.
type Iterator[E Identifier] struct {
	set   *SparseSet[E]
	index int
}

// Begin returns an iterator to the first entity in iteration order.
func (s *SparseSet[E]) Begin() Iterator[E] {
	return Iterator[E]{set: s, index: s.count}
}

// End returns the past-the-end iterator.
func (s *SparseSet[E]) End() Iterator[E] {
	return Iterator[E]{set: s}
}

// Find returns an iterator to e, or End if e is not contained.
func (s *SparseSet[E]) Find(e E) Iterator[E] {
	pos, ok := s.sparse.lookup(e)
	if !ok {
		return s.End()
	}
	return Iterator[E]{set: s, index: pos + 1}
}

// Next advances one step.
func (it Iterator[E]) Next() Iterator[E] {
	it.index--
	return it
}

// Prev steps back once.
func (it Iterator[E]) Prev() Iterator[E] {
	it.index++
	return it
}

// Add advances n steps.
func (it Iterator[E]) Add(n int) Iterator[E] {
	it.index -= n
	return it
}

// Sub steps back n times.
func (it Iterator[E]) Sub(n int) Iterator[E] {
	return it.Add(-n)
}

// Distance returns the number of steps from it to other.
func (it Iterator[E]) Distance(other Iterator[E]) int {
	return it.index - other.index
}

// Valid reports whether the iterator can be dereferenced.
func (it Iterator[E]) Valid() bool {
	return it.set != nil && it.index > 0 && it.index <= it.set.count
}

// Entity dereferences the iterator. It panics on End.
func (it Iterator[E]) Entity() E {
	return it.At(0)
}

// At returns the entity n steps ahead of the iterator.
func (it Iterator[E]) At(n int) E {
	pos := it.index - n - 1
	if it.set == nil || pos < 0 || pos >= it.set.count {
		panic(&ContractError{Op: "iterator", Entity: uint64(pos), Err: ErrOutOfBounds})
	}
	return it.set.packed[pos]
}

// Position returns the dense position the iterator refers to.
func (it Iterator[E]) Position() int {
	return it.index - 1
}

func (it Iterator[E]) Equal(other Iterator[E]) bool {
	return it.index == other.index
}

// Less reports whether it comes before other in iteration order.
func (it Iterator[E]) Less(other Iterator[E]) bool {
	return it.index > other.index
}

// All yields the entities in iteration order.
func (s *SparseSet[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		for it := s.Begin(); it.index > 0; it = it.Next() {
			if !yield(s.packed[it.index-1]) {
				return
			}
		}
	}
}

// Entries yields dense positions and entities in iteration order.
func (s *SparseSet[E]) Entries() iter.Seq2[int, E] {
	return func(yield func(int, E) bool) {
		for pos := s.count - 1; pos >= 0; pos-- {
			if !yield(pos, s.packed[pos]) {
				return
			}
		}
	}
}

// Backward yields the entities in storage order, the reverse of All.
func (s *SparseSet[E]) Backward() iter.Seq[E] {
	return func(yield func(E) bool) {
		for pos := 0; pos < s.count; pos++ {
			if !yield(s.packed[pos]) {
				return
			}
		}
	}
}
