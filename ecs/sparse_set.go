package ecs

// GrowthFactor is applied to the packed array size when it runs out of room.
const GrowthFactor = 1.5

// SparseSet maps entity identifiers to positions in a contiguous packed
// array. Membership, lookup, insertion and removal are O(1); iteration walks
// the packed array. Removal moves the last entity into the freed position,
// so no ordering is preserved unless imposed with Sort or Respect.
//
// Iteration order is the reverse of storage order: iterators start at the
// last packed entity and finish at the first one. Data returns storage order.
//
// A SparseSet is not safe for concurrent mutation.
type SparseSet[E Identifier] struct {
	sparse sparseTable[E]
	packed []E
	count  int
	hooks  Hooks[E]
	alloc  Allocator[E]
}

type setConfig[E Identifier] struct {
	pageSize int
	hooks    Hooks[E]
	alloc    Allocator[E]
}

// Option configures a SparseSet at construction.
type Option[E Identifier] func(*setConfig[E])

// WithPageSize sets the number of slots in a sparse page. n must be a power
// of two.
func WithPageSize[E Identifier](n int) Option[E] {
	return func(c *setConfig[E]) { c.pageSize = n }
}

// WithHooks installs the collaborator notified of erase and swap events.
func WithHooks[E Identifier](h Hooks[E]) Option[E] {
	return func(c *setConfig[E]) { c.hooks = h }
}

// WithAllocator sets the allocator used for both the packed array and the
// sparse pages.
func WithAllocator[E Identifier](a Allocator[E]) Option[E] {
	return func(c *setConfig[E]) { c.alloc = a }
}

// NewSparseSet creates an empty sparse set. Nothing is allocated until the
// first insertion.
func NewSparseSet[E Identifier](opts ...Option[E]) *SparseSet[E] {
	cfg := setConfig[E]{
		pageSize: DefaultPageSize,
		hooks:    NopHooks[E]{},
		alloc:    HeapAllocator[E]{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &SparseSet[E]{
		sparse: newSparseTable(cfg.pageSize, cfg.alloc),
		hooks:  cfg.hooks,
		alloc:  cfg.alloc,
	}
}

func (s *SparseSet[E]) growPackedIfRequired(req int) {
	if len(s.packed) < req {
		sz := int(float64(s.count) * GrowthFactor)
		s.resizePacked(max(sz, req))
	}
}

func (s *SparseSet[E]) resizePacked(req int) {
	tracer().Debugf("packed array resized from %d to %d", len(s.packed), req)
	var mem []E
	if req > 0 {
		mem = s.alloc.Allocate(req)
	}
	sz := min(req, s.count)
	copy(mem, s.packed[:sz])
	if len(s.packed) > 0 {
		s.alloc.Deallocate(s.packed)
	}
	s.packed = mem
	s.count = sz
}

func (s *SparseSet[E]) push(e E) {
	*s.sparse.assure(e) = Compose(E(s.count), 0)
	s.packed[s.count] = e
	s.count++
}

// pop undoes the last push.
func (s *SparseSet[E]) pop() {
	s.count--
	e := s.packed[s.count]
	*s.sparse.ref(e) = Null[E]()
	s.packed[s.count] = Null[E]()
}

func (s *SparseSet[E]) checkInsertable(op string, e E) error {
	switch {
	case IsNull(e):
		return contractError(op, e, ErrNullEntity)
	case s.Contains(e):
		return contractError(op, e, ErrAlreadyContained)
	case s.count >= int(IndexMask[E]()):
		// a position equal to the index mask would read back as null
		return contractError(op, e, ErrIndexSpaceExhausted)
	}
	return nil
}

// Reserve grows the packed capacity to at least n. It never shrinks.
func (s *SparseSet[E]) Reserve(n int) {
	if n > len(s.packed) {
		s.resizePacked(n)
	}
}

// Capacity returns the number of entities the packed array has room for.
func (s *SparseSet[E]) Capacity() int {
	return len(s.packed)
}

// ShrinkToFit reallocates the packed array to the current size. Sparse pages
// are released only when the set is empty; partially used pages are kept.
func (s *SparseSet[E]) ShrinkToFit() {
	if len(s.packed) != s.count {
		s.resizePacked(s.count)
	}
	if s.count == 0 {
		s.sparse.release()
	}
}

// Extent returns the number of identifier indices covered by the current
// sparse page table.
func (s *SparseSet[E]) Extent() int {
	return s.sparse.extent()
}

// PageSize returns the number of slots per sparse page.
func (s *SparseSet[E]) PageSize() int {
	return s.sparse.pageSize
}

// Size returns the number of entities in the set.
func (s *SparseSet[E]) Size() int {
	return s.count
}

// Empty reports whether the set holds no entity.
func (s *SparseSet[E]) Empty() bool {
	return s.count == 0
}

// Data returns the packed array in storage order. The slice aliases the
// set's memory and must not be modified.
func (s *SparseSet[E]) Data() []E {
	return s.packed[:s.count:s.count]
}

// Contains reports whether e belongs to the set. Only the sparse table is
// consulted.
func (s *SparseSet[E]) Contains(e E) bool {
	_, ok := s.sparse.lookup(e)
	return ok
}

// Index returns the dense position of e.
func (s *SparseSet[E]) Index(e E) (int, error) {
	pos, ok := s.sparse.lookup(e)
	if !ok {
		return 0, contractError("index", e, ErrNotContained)
	}
	return pos, nil
}

// At returns the entity at pos, or null if pos is out of range.
func (s *SparseSet[E]) At(pos int) E {
	if pos < 0 || pos >= s.count {
		return Null[E]()
	}
	return s.packed[pos]
}

// Get returns the entity at pos. It panics if pos is out of range.
func (s *SparseSet[E]) Get(pos int) E {
	if pos < 0 || pos >= s.count {
		panic(&ContractError{Op: "get", Entity: uint64(pos), Err: ErrOutOfBounds})
	}
	return s.packed[pos]
}

// Emplace appends e to the set.
func (s *SparseSet[E]) Emplace(e E) error {
	if err := s.checkInsertable("emplace", e); err != nil {
		return err
	}
	s.growPackedIfRequired(s.count + 1)
	s.push(e)
	return nil
}

// Insert appends every entity in order, growing the packed array once. If
// any entity cannot be inserted the set is restored to its previous
// contents and the error is returned.
func (s *SparseSet[E]) Insert(entities ...E) error {
	s.growPackedIfRequired(s.count + len(entities))
	for i, e := range entities {
		if err := s.checkInsertable("insert", e); err != nil {
			for range i {
				s.pop()
			}
			return err
		}
		s.push(e)
	}
	return nil
}

// Erase removes e by moving the last packed entity into its position.
// ud is forwarded to Hooks.AboutToErase.
func (s *SparseSet[E]) Erase(e E, ud any) error {
	if !s.Contains(e) {
		return contractError("erase", e, ErrNotContained)
	}

	// last chance for the collaborator to use e
	s.hooks.AboutToErase(e, ud)

	ref := s.sparse.ref(e)
	pos := int(IndexOf(*ref))

	s.count--
	other := s.packed[s.count]
	*s.sparse.ref(other) = *ref
	*ref = Null[E]()

	s.packed[pos] = other
	s.packed[s.count] = Null[E]()

	s.hooks.SwapAndPop(pos)
	return nil
}

// EraseMany erases entities in order and stops at the first one that is not
// contained. Erasures done before the failure are kept.
func (s *SparseSet[E]) EraseMany(entities []E, ud any) error {
	for _, e := range entities {
		if err := s.Erase(e, ud); err != nil {
			return err
		}
	}
	return nil
}

// Remove erases e if it is contained and reports whether it was.
func (s *SparseSet[E]) Remove(e E, ud any) bool {
	if !s.Contains(e) {
		return false
	}
	_ = s.Erase(e, ud)
	return true
}

// RemoveMany removes the contained entities and returns how many there were.
func (s *SparseSet[E]) RemoveMany(entities []E, ud any) int {
	found := 0
	for _, e := range entities {
		if s.Remove(e, ud) {
			found++
		}
	}
	return found
}

// Swap exchanges the dense positions of lhs and rhs.
func (s *SparseSet[E]) Swap(lhs, rhs E) error {
	from, ok := s.sparse.lookup(lhs)
	if !ok {
		return contractError("swap", lhs, ErrNotContained)
	}
	to, ok := s.sparse.lookup(rhs)
	if !ok {
		return contractError("swap", rhs, ErrNotContained)
	}
	s.swapPositions(lhs, rhs, from, to)
	return nil
}

func (s *SparseSet[E]) swapPositions(lhs, rhs E, from, to int) {
	l, r := s.sparse.ref(lhs), s.sparse.ref(rhs)
	*l, *r = *r, *l
	s.packed[from], s.packed[to] = s.packed[to], s.packed[from]
	s.hooks.SwapAt(from, to)
}

// Clear erases every entity in iteration order, keeping the allocated
// capacity. ud is forwarded to Hooks.AboutToErase.
func (s *SparseSet[E]) Clear(ud any) {
	for s.count > 0 {
		_ = s.Erase(s.packed[s.count-1], ud)
	}
}

// Release clears the set and gives all memory back to the allocator.
func (s *SparseSet[E]) Release(ud any) {
	s.Clear(ud)
	s.ShrinkToFit()
}

// Move transfers the contents of s into a new set with the same page size
// and allocator. s is left empty and reusable. Hooks stay with s; the new
// set starts with none.
func (s *SparseSet[E]) Move() *SparseSet[E] {
	moved := &SparseSet[E]{
		sparse: s.sparse,
		packed: s.packed,
		count:  s.count,
		hooks:  NopHooks[E]{},
		alloc:  s.alloc,
	}
	s.sparse = newSparseTable(s.sparse.pageSize, s.alloc)
	s.packed = nil
	s.count = 0
	return moved
}
