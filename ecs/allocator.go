package ecs

import "sync"

// Allocator provides the memory backing a sparse set: the packed array and
// every sparse page. Blocks returned by Allocate have length n; their
// contents are unspecified, the set initializes what it reads.
type Allocator[E Identifier] interface {
	Allocate(n int) []E
	Deallocate(block []E)
}

// HeapAllocator allocates from the Go heap and leaves reclamation to the GC.
type HeapAllocator[E Identifier] struct{}

func (HeapAllocator[E]) Allocate(n int) []E {
	return make([]E, n)
}

func (HeapAllocator[E]) Deallocate([]E) {}

// PoolAllocator recycles blocks of one fixed size, typically the page size,
// so sets that repeatedly release and rebuild their sparse table reuse pages.
// Requests of any other size go straight to the heap.
// A PoolAllocator may be shared between sets.
type PoolAllocator[E Identifier] struct {
	blockSize int
	pool      sync.Pool
}

// NewPoolAllocator creates a pool for blocks of blockSize identifiers.
func NewPoolAllocator[E Identifier](blockSize int) *PoolAllocator[E] {
	return &PoolAllocator[E]{blockSize: blockSize}
}

func (p *PoolAllocator[E]) Allocate(n int) []E {
	if n == p.blockSize {
		if block, ok := p.pool.Get().(*[]E); ok {
			return *block
		}
	}
	return make([]E, n)
}

func (p *PoolAllocator[E]) Deallocate(block []E) {
	if len(block) != p.blockSize {
		return
	}
	p.pool.Put(&block)
}
