package ecs

import "sort"

// Algorithm sorts data in place. StdSort, StableSort and InsertionSort are
// provided; any function with the same contract can be used.
type Algorithm func(data sort.Interface)

// StdSort is the unstable sort of the standard library.
func StdSort(data sort.Interface) {
	sort.Sort(data)
}

// StableSort keeps equal entities in their current relative order.
func StableSort(data sort.Interface) {
	sort.Stable(data)
}

// InsertionSort is stable and fast on small or nearly sorted inputs.
func InsertionSort(data sort.Interface) {
	for i := 1; i < data.Len(); i++ {
		for j := i; j > 0 && data.Less(j, j-1); j-- {
			data.Swap(j, j-1)
		}
	}
}

// reversed exposes packed[:n] back to front, which is iteration order.
type reversed[E Identifier] struct {
	packed []E
	less   func(a, b E) bool
}

func (r reversed[E]) Len() int { return len(r.packed) }

func (r reversed[E]) Less(i, j int) bool {
	n := len(r.packed) - 1
	return r.less(r.packed[n-i], r.packed[n-j])
}

func (r reversed[E]) Swap(i, j int) {
	n := len(r.packed) - 1
	r.packed[n-i], r.packed[n-j] = r.packed[n-j], r.packed[n-i]
}

// SortN sorts the first length packed entities so that iterating them
// yields an order consistent with less, a strict weak ordering. A nil algo
// means StdSort.
//
// Only the packed array is permuted by algo. The sparse table still holds
// the former positions afterwards and is used to walk each permutation
// cycle once, notifying Hooks.SwapAt so collaborators apply the same
// permutation, then recording the final positions.
func (s *SparseSet[E]) SortN(length int, less func(a, b E) bool, algo Algorithm) error {
	if length < 0 || length > s.count {
		return &ContractError{Op: "sort", Entity: uint64(length), Err: ErrOutOfBounds}
	}
	if algo == nil {
		algo = StdSort
	}
	algo(reversed[E]{packed: s.packed[:length], less: less})

	for pos := range length {
		curr := pos
		next := s.mustIndex(s.packed[curr])

		for curr != next {
			idx := s.mustIndex(s.packed[next])
			entity := s.packed[curr]

			s.hooks.SwapAt(next, idx)
			*s.sparse.ref(entity) = Compose(E(curr), 0)

			curr = next
			next = idx
		}
	}
	return nil
}

// Sort sorts every entity, see SortN.
func (s *SparseSet[E]) Sort(less func(a, b E) bool, algo Algorithm) {
	_ = s.SortN(s.count, less, algo)
}

// Respect reorders s so that the entities it shares with other are iterated
// in the same relative order as in other. The remaining entities are moved
// after them in unspecified order.
func (s *SparseSet[E]) Respect(other *SparseSet[E]) {
	if s.count == 0 {
		return
	}
	pos := s.count - 1
	for from := other.Begin(); pos > 0 && from.index > 0; from = from.Next() {
		e := other.packed[from.index-1]
		at, ok := s.sparse.lookup(e)
		if !ok {
			continue
		}
		if curr := s.packed[pos]; curr != e {
			s.swapPositions(curr, e, pos, at)
		}
		pos--
	}
}

func (s *SparseSet[E]) mustIndex(e E) int {
	return int(IndexOf(*s.sparse.ref(e)))
}
