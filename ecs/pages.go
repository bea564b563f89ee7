package ecs

import "math/bits"

// DefaultPageSize is the number of slots in a sparse page.
const DefaultPageSize = 4096

// sparseTable maps an identifier's index field to a slot holding the dense
// position of that identifier, or null. Pages are allocated on first write.
type sparseTable[E Identifier] struct {
	pages    [][]E
	pageSize int
	shift    int
	alloc    Allocator[E]
}

func newSparseTable[E Identifier](pageSize int, alloc Allocator[E]) sparseTable[E] {
	if pageSize <= 0 || pageSize&(pageSize-1) != 0 {
		panic("sparse page size must be a power of two")
	}
	return sparseTable[E]{
		pageSize: pageSize,
		shift:    bits.TrailingZeros(uint(pageSize)),
		alloc:    alloc,
	}
}

func (t *sparseTable[E]) page(e E) int {
	return int(IndexOf(e) >> t.shift)
}

func (t *sparseTable[E]) offset(e E) int {
	return int(IndexOf(e)) & (t.pageSize - 1)
}

// lookup returns the dense position recorded for e.
func (t *sparseTable[E]) lookup(e E) (int, bool) {
	p := t.page(e)
	if p >= len(t.pages) || t.pages[p] == nil {
		return 0, false
	}
	slot := t.pages[p][t.offset(e)]
	if IsNull(slot) {
		return 0, false
	}
	return int(IndexOf(slot)), true
}

// ref returns the slot of e. The page must already exist.
func (t *sparseTable[E]) ref(e E) *E {
	return &t.pages[t.page(e)][t.offset(e)]
}

// assure returns the slot of e, growing the page table and allocating the
// page as needed.
func (t *sparseTable[E]) assure(e E) *E {
	p := t.page(e)
	if p >= len(t.pages) {
		tracer().Debugf("sparse table grows from %d to %d pages", len(t.pages), p+1)
		t.pages = append(t.pages, make([][]E, p+1-len(t.pages))...)
	}
	if t.pages[p] == nil {
		page := t.alloc.Allocate(t.pageSize)
		null := Null[E]()
		for i := range page {
			page[i] = null
		}
		t.pages[p] = page
	}
	return &t.pages[p][t.offset(e)]
}

// release hands every page back to the allocator and drops the page table.
func (t *sparseTable[E]) release() {
	if len(t.pages) == 0 {
		return
	}
	tracer().Debugf("releasing %d sparse pages", t.allocated())
	for i, page := range t.pages {
		if page != nil {
			t.alloc.Deallocate(page)
			t.pages[i] = nil
		}
	}
	t.pages = nil
}

func (t *sparseTable[E]) buckets() int {
	return len(t.pages)
}

func (t *sparseTable[E]) allocated() int {
	n := 0
	for _, page := range t.pages {
		if page != nil {
			n++
		}
	}
	return n
}

func (t *sparseTable[E]) extent() int {
	return len(t.pages) * t.pageSize
}
