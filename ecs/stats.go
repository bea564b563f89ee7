package ecs

// Stats describes the memory held by a SparseSet.
type Stats struct {
	Size           int
	Capacity       int
	PageSize       int
	Pages          int // length of the page table
	AllocatedPages int
	Extent         int
}

// FillRatio is the share of allocated sparse slots that refer to an entity.
func (st Stats) FillRatio() float64 {
	slots := st.AllocatedPages * st.PageSize
	if slots == 0 {
		return 0
	}
	return float64(st.Size) / float64(slots)
}

// Stats returns the current statistics of s.
func (s *SparseSet[E]) Stats() Stats {
	return Stats{
		Size:           s.count,
		Capacity:       len(s.packed),
		PageSize:       s.sparse.pageSize,
		Pages:          s.sparse.buckets(),
		AllocatedPages: s.sparse.allocated(),
		Extent:         s.sparse.extent(),
	}
}
