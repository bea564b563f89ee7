package ecs_test

import (
	"fmt"

	"github.com/plus3/sparse/ecs"
)

func ExampleSparseSet() {
	set := ecs.NewSparseSet[ecs.Entity]()
	for i := uint32(1); i <= 3; i++ {
		_ = set.Emplace(ecs.NewEntity(i, 0))
	}
	fmt.Println(set.Size(), set.Contains(ecs.NewEntity(2, 0)))

	// the last entity takes the place of the erased one
	_ = set.Erase(ecs.NewEntity(1, 0), nil)
	fmt.Println(set.Data())

	for e := range set.All() {
		fmt.Println(e)
	}

	// Output:
	// 3 true
	// [3v0 2v0]
	// 2v0
	// 3v0
}

func ExampleSparseSet_Sort() {
	set := ecs.NewSparseSet[ecs.Entity]()
	_ = set.Insert(ecs.NewEntity(3, 0), ecs.NewEntity(1, 0), ecs.NewEntity(2, 0))

	set.Sort(func(a, b ecs.Entity) bool { return a.Index() < b.Index() }, nil)
	for e := range set.All() {
		fmt.Println(e)
	}
	fmt.Println(set.Data())

	// Output:
	// 1v0
	// 2v0
	// 3v0
	// [3v0 2v0 1v0]
}

func ExampleSparseSet_Respect() {
	master := ecs.NewSparseSet[ecs.Entity]()
	_ = master.Insert(ecs.NewEntity(1, 0), ecs.NewEntity(2, 0), ecs.NewEntity(3, 0))

	set := ecs.NewSparseSet[ecs.Entity]()
	_ = set.Insert(ecs.NewEntity(1, 0), ecs.NewEntity(2, 0), ecs.NewEntity(5, 0))

	set.Respect(master)
	for e := range set.All() {
		fmt.Println(e)
	}

	// Output:
	// 2v0
	// 1v0
	// 5v0
}

func ExampleStorage() {
	names := ecs.NewStorage[ecs.Entity, string]()
	_ = names.Emplace(ecs.NewEntity(1, 0), "a")
	_ = names.Emplace(ecs.NewEntity(2, 0), "b")
	_ = names.Emplace(ecs.NewEntity(3, 0), "c")

	_ = names.Erase(ecs.NewEntity(1, 0), nil)
	for e, name := range names.Each() {
		fmt.Println(e, *name)
	}

	// Output:
	// 2v0 b
	// 3v0 c
}

func ExamplePool() {
	pool := ecs.NewPool[ecs.Entity]()
	first, _ := pool.Create()
	second, _ := pool.Create()

	_ = pool.Destroy(first)
	recycled, _ := pool.Create()

	fmt.Println(first, second, recycled, pool.Valid(first))

	// Output:
	// 0v0 1v0 0v1 false
}

func ExampleCommands() {
	set := ecs.NewSparseSet[ecs.Entity]()
	_ = set.Insert(ecs.NewEntity(1, 0), ecs.NewEntity(2, 0), ecs.NewEntity(3, 0))

	cmds := ecs.NewCommands[ecs.Entity]()
	for e := range set.All() {
		if e.Index() == 2 {
			cmds.Remove(e, nil)
			cmds.Emplace(ecs.NewEntity(7, 0))
		}
	}

	if err := cmds.Flush(set); err != nil {
		fmt.Println(err)
	}
	fmt.Println(set.Size(), set.Contains(ecs.NewEntity(2, 0)), set.Contains(ecs.NewEntity(7, 0)))

	// Output:
	// 3 false true
}
