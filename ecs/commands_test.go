package ecs_test

import (
	"testing"

	"github.com/plus3/sparse/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsFlushOrder(t *testing.T) {
	set := ecs.NewSparseSet[ecs.Entity]()
	require.NoError(t, set.Insert(ents(1, 2, 3)...))

	cmds := ecs.NewCommands[ecs.Entity]()
	var sizeAtDefer int

	cmds.Defer(func() { sizeAtDefer = set.Size() })
	cmds.Emplace(ent(10))
	cmds.Remove(ent(2), nil)
	cmds.Emplace(ent(11))
	assert.Equal(t, 4, cmds.Pending())

	require.NoError(t, cmds.Flush(set))

	assert.ElementsMatch(t, ents(1, 3, 10, 11), set.Data())
	assert.Equal(t, 4, sizeAtDefer)
	assert.Equal(t, 0, cmds.Pending())
}

func TestCommandsDuringIteration(t *testing.T) {
	set := ecs.NewSparseSet[ecs.Entity]()
	require.NoError(t, set.Insert(ents(1, 2, 3, 4, 5, 6)...))

	cmds := ecs.NewCommands[ecs.Entity]()
	for e := range set.All() {
		if e.Index()%2 == 0 {
			cmds.Remove(e, nil)
			cmds.Emplace(ent(e.Index() + 100))
		}
	}
	assert.Equal(t, 6, set.Size())

	require.NoError(t, cmds.Flush(set))
	assert.ElementsMatch(t, ents(1, 3, 5, 102, 104, 106), set.Data())
	requireCoherent(t, set)
}

func TestCommandsSkipEmplaceOfRemoved(t *testing.T) {
	set := ecs.NewSparseSet[ecs.Entity]()
	require.NoError(t, set.Emplace(ent(1)))

	cmds := ecs.NewCommands[ecs.Entity]()
	cmds.Emplace(ent(7))
	cmds.Remove(ent(7), nil)
	cmds.Remove(ent(1), nil)

	require.NoError(t, cmds.Flush(set))
	assert.True(t, set.Empty())
}

func TestCommandsReportEmplaceErrors(t *testing.T) {
	set := ecs.NewSparseSet[ecs.Entity]()
	require.NoError(t, set.Emplace(ent(1)))

	cmds := ecs.NewCommands[ecs.Entity]()
	cmds.Emplace(ent(1))
	cmds.Emplace(ecs.NullEntity)
	cmds.Emplace(ent(2))

	err := cmds.Flush(set)
	assert.ErrorIs(t, err, ecs.ErrAlreadyContained)
	assert.ErrorIs(t, err, ecs.ErrNullEntity)
	assert.True(t, set.Contains(ent(2)))
	assert.Equal(t, 0, cmds.Pending())
}

func TestCommandsFlushIntoStorage(t *testing.T) {
	st := newHealthStorage(t, ents(1, 2)...)

	// a storage needs values, so insertions are deferred as closures
	cmds := ecs.NewCommands[ecs.Entity]()
	cmds.Remove(ent(1), nil)
	cmds.Defer(func() { require.NoError(t, st.Emplace(ent(5), healthOf(ent(5)))) })

	require.NoError(t, cmds.Flush(st.Set()))
	requireAligned(t, st)
	assert.ElementsMatch(t, ents(2, 5), st.Set().Data())
}
