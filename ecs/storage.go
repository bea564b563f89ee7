package ecs

import "iter"

// Storage keeps one value of type T per entity. Values live in a slice kept
// index-for-index with the packed array of an internal SparseSet, through
// the set's hooks, so every erase, swap, sort and respect applied to the
// set is mirrored on the values.
type Storage[E Identifier, T any] struct {
	set    *SparseSet[E]
	values []T

	// OnErase, when set, is called with the value of an entity right
	// before it is erased. ud is the user data given to the erase call.
	OnErase func(entity E, value *T, ud any)
}

// storageHooks forwards set notifications to the storage without exposing
// them as Storage methods.
type storageHooks[E Identifier, T any] struct {
	s *Storage[E, T]
}

func (h storageHooks[E, T]) SwapAt(lhs, rhs int) {
	v := h.s.values
	v[lhs], v[rhs] = v[rhs], v[lhs]
}

func (h storageHooks[E, T]) SwapAndPop(pos int) {
	last := len(h.s.values) - 1
	h.s.values[pos] = h.s.values[last]

	var zero T
	h.s.values[last] = zero
	h.s.values = h.s.values[:last]
}

func (h storageHooks[E, T]) AboutToErase(entity E, ud any) {
	if h.s.OnErase == nil {
		return
	}
	pos, _ := h.s.set.sparse.lookup(entity)
	h.s.OnErase(entity, &h.s.values[pos], ud)
}

// NewStorage creates an empty storage. Any hooks passed in opts are
// replaced by the storage's own.
func NewStorage[E Identifier, T any](opts ...Option[E]) *Storage[E, T] {
	st := &Storage[E, T]{}
	opts = append(opts, WithHooks[E](storageHooks[E, T]{s: st}))
	st.set = NewSparseSet(opts...)
	return st
}

// Set returns the underlying set. It can be read, used as the master of a
// Respect call, or erased from; insertions must go through the storage.
func (s *Storage[E, T]) Set() *SparseSet[E] {
	return s.set
}

// Emplace assigns value to entity.
func (s *Storage[E, T]) Emplace(entity E, value T) error {
	if err := s.set.Emplace(entity); err != nil {
		return err
	}
	s.values = append(s.values, value)
	return nil
}

// Insert assigns values[i] to entities[i]. Both slices must have the same
// length.
func (s *Storage[E, T]) Insert(entities []E, values []T) error {
	if len(entities) != len(values) {
		panic("storage insert: entities and values differ in length")
	}
	if err := s.set.Insert(entities...); err != nil {
		return err
	}
	s.values = append(s.values, values...)
	return nil
}

// Get returns a pointer to the value of entity. The pointer is invalidated
// by the next structural change of the storage.
func (s *Storage[E, T]) Get(entity E) (*T, bool) {
	pos, ok := s.set.sparse.lookup(entity)
	if !ok {
		return nil, false
	}
	return &s.values[pos], true
}

// Values returns the values in storage order, aligned with Set().Data().
func (s *Storage[E, T]) Values() []T {
	return s.values
}

// Each yields entities and pointers to their values in iteration order.
func (s *Storage[E, T]) Each() iter.Seq2[E, *T] {
	return func(yield func(E, *T) bool) {
		for pos, e := range s.set.Entries() {
			if !yield(e, &s.values[pos]) {
				return
			}
		}
	}
}

func (s *Storage[E, T]) Contains(entity E) bool {
	return s.set.Contains(entity)
}

func (s *Storage[E, T]) Size() int {
	return s.set.Size()
}

// Erase removes entity and its value.
func (s *Storage[E, T]) Erase(entity E, ud any) error {
	return s.set.Erase(entity, ud)
}

// Remove erases entity if present.
func (s *Storage[E, T]) Remove(entity E, ud any) bool {
	return s.set.Remove(entity, ud)
}

// Clear erases every entity, calling OnErase for each.
func (s *Storage[E, T]) Clear(ud any) {
	s.set.Clear(ud)
}

// Reserve grows both the packed array and the value slice to n.
func (s *Storage[E, T]) Reserve(n int) {
	s.set.Reserve(n)
	if n > cap(s.values) {
		grown := make([]T, len(s.values), n)
		copy(grown, s.values)
		s.values = grown
	}
}

// ShrinkToFit trims both the set and the value slice.
func (s *Storage[E, T]) ShrinkToFit() {
	s.set.ShrinkToFit()
	if cap(s.values) != len(s.values) {
		shrunk := make([]T, len(s.values))
		copy(shrunk, s.values)
		s.values = shrunk
	}
}

// Sort orders entities by their identifiers, see SparseSet.SortN.
func (s *Storage[E, T]) Sort(less func(a, b E) bool, algo Algorithm) {
	s.set.Sort(less, algo)
}

// SortByValue orders entities by their values.
func (s *Storage[E, T]) SortByValue(less func(a, b *T) bool, algo Algorithm) {
	// While algo runs only the packed array moves; the sparse table and the
	// values still agree on the former positions.
	s.set.Sort(func(a, b E) bool {
		return less(&s.values[s.set.mustIndex(a)], &s.values[s.set.mustIndex(b)])
	}, algo)
}

// Respect orders the shared entities like other.
func (s *Storage[E, T]) Respect(other *SparseSet[E]) {
	s.set.Respect(other)
}

// Swap exchanges the positions of two entities and their values.
func (s *Storage[E, T]) Swap(lhs, rhs E) error {
	return s.set.Swap(lhs, rhs)
}

// Move transfers every entity and value into a new storage; s is left
// empty and reusable.
func (s *Storage[E, T]) Move() *Storage[E, T] {
	moved := &Storage[E, T]{
		values:  s.values,
		OnErase: s.OnErase,
	}
	moved.set = s.set.Move()
	moved.set.hooks = storageHooks[E, T]{s: moved}
	s.values = nil
	return moved
}
