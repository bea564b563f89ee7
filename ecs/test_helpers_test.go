package ecs_test

import (
	"fmt"
	"testing"

	"github.com/plus3/sparse/ecs"
	"github.com/stretchr/testify/require"
)

func ent(index uint32) ecs.Entity {
	return ecs.NewEntity(index, 0)
}

func ents(indices ...uint32) []ecs.Entity {
	out := make([]ecs.Entity, len(indices))
	for i, index := range indices {
		out[i] = ent(index)
	}
	return out
}

// recordingHooks logs every notification it receives.
type recordingHooks struct {
	events []string
}

func (h *recordingHooks) SwapAt(lhs, rhs int) {
	h.events = append(h.events, fmt.Sprintf("swap_at %d %d", lhs, rhs))
}

func (h *recordingHooks) SwapAndPop(pos int) {
	h.events = append(h.events, fmt.Sprintf("swap_and_pop %d", pos))
}

func (h *recordingHooks) AboutToErase(entity ecs.Entity, ud any) {
	h.events = append(h.events, fmt.Sprintf("about_to_erase %s %v", entity, ud))
}

// requireCoherent checks that the sparse table and the packed array agree.
func requireCoherent[E ecs.Identifier](t *testing.T, s *ecs.SparseSet[E]) {
	t.Helper()
	data := s.Data()
	require.Len(t, data, s.Size())
	for pos, e := range data {
		require.True(t, s.Contains(e), "entity at %d not contained", pos)
		idx, err := s.Index(e)
		require.NoError(t, err)
		require.Equal(t, pos, idx)
	}
}
