package ecs_test

import (
	"math/rand/v2"
	"testing"

	"github.com/plus3/sparse/ecs"
)

const benchEntities = 10000

func benchSet(b *testing.B, n int) *ecs.SparseSet[ecs.Entity] {
	b.Helper()
	set := ecs.NewSparseSet[ecs.Entity]()
	set.Reserve(n)
	for i := range n {
		if err := set.Emplace(ent(uint32(i))); err != nil {
			b.Fatal(err)
		}
	}
	return set
}

func BenchmarkEmplace(b *testing.B) {
	set := ecs.NewSparseSet[ecs.Entity]()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if set.Size() == benchEntities {
			set.Clear(nil)
		}
		_ = set.Emplace(ent(uint32(set.Size())))
	}
}

func BenchmarkInsertBatch(b *testing.B) {
	batch := make([]ecs.Entity, benchEntities)
	for i := range batch {
		batch[i] = ent(uint32(i))
	}
	set := ecs.NewSparseSet[ecs.Entity]()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = set.Insert(batch...)
		set.Clear(nil)
	}
}

func BenchmarkErase(b *testing.B) {
	set := benchSet(b, benchEntities)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e := ent(uint32(i % benchEntities))
		_ = set.Erase(e, nil)
		_ = set.Emplace(e)
	}
}

func BenchmarkContains(b *testing.B) {
	set := benchSet(b, benchEntities)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = set.Contains(ent(uint32(i % (2 * benchEntities))))
	}
}

func BenchmarkIterate(b *testing.B) {
	set := benchSet(b, benchEntities)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var sum uint32
		for e := range set.All() {
			sum += e.Index()
		}
		_ = sum
	}
}

func BenchmarkIterator(b *testing.B) {
	set := benchSet(b, benchEntities)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var sum uint32
		for it, end := set.Begin(), set.End(); !it.Equal(end); it = it.Next() {
			sum += it.Entity().Index()
		}
		_ = sum
	}
}

func BenchmarkSort(b *testing.B) {
	rng := rand.New(rand.NewPCG(1, 2))
	set := benchSet(b, benchEntities)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		set.Sort(func(a, b ecs.Entity) bool { return a.Index() > b.Index() }, nil)
		for range 100 {
			_ = set.Swap(ent(rng.Uint32N(benchEntities)), ent(rng.Uint32N(benchEntities)))
		}
		b.StartTimer()

		set.Sort(ascending, nil)
	}
}

func BenchmarkRespect(b *testing.B) {
	rng := rand.New(rand.NewPCG(3, 4))
	master := ecs.NewSparseSet[ecs.Entity]()
	for _, idx := range rng.Perm(benchEntities) {
		_ = master.Emplace(ent(uint32(idx)))
	}
	set := benchSet(b, benchEntities)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		set.Respect(master)
	}
}

func BenchmarkStorageSortByValue(b *testing.B) {
	st := ecs.NewStorage[ecs.Entity, Health]()
	for i := range benchEntities {
		e := ent(uint32(i))
		_ = st.Emplace(e, healthOf(e))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%2 == 0 {
			st.SortByValue(func(a, b *Health) bool { return a.Current < b.Current }, nil)
		} else {
			st.SortByValue(func(a, b *Health) bool { return a.Current > b.Current }, nil)
		}
	}
}
