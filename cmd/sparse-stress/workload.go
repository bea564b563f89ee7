package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/kamstrup/intmap"
	"github.com/plus3/sparse/ecs"
)

// runner applies a random workload to a storage and mirrors every change in
// a plain hash map, so the storage can be checked against it at any time.
type runner struct {
	w     Workload
	rng   *rand.Rand
	pool  *ecs.Pool[ecs.Entity]
	store *ecs.Storage[ecs.Entity, uint64]
	model *intmap.Map[ecs.Entity, uint64]
	live  []ecs.Entity

	ops    OpCounts
	checks int
}

type OpCounts struct {
	Emplace int64
	Erase   int64
	Sort    int64
	Respect int64
	Shrink  int64
}

func newRunner(w Workload) *runner {
	return &runner{
		w:     w,
		rng:   rand.New(rand.NewPCG(w.Seed, w.Seed^0x9e3779b97f4a7c15)),
		pool:  ecs.NewPool[ecs.Entity](),
		store: ecs.NewStorage[ecs.Entity, uint64](ecs.WithPageSize[ecs.Entity](w.PageSize)),
		model: intmap.New[ecs.Entity, uint64](w.Entities),
		live:  make([]ecs.Entity, 0, w.Entities),
	}
}

// populate creates the initial entities.
func (r *runner) populate() error {
	for len(r.live) < r.w.Entities {
		if err := r.emplace(); err != nil {
			return err
		}
	}
	return r.check()
}

// step applies one operation chosen by weight.
func (r *runner) step() error {
	weights := r.w.Weights
	n := r.rng.IntN(weights.total())

	switch {
	case n < weights.Emplace:
		if len(r.live) >= r.w.Entities {
			return r.erase()
		}
		return r.emplace()
	case n < weights.Emplace+weights.Erase:
		if len(r.live) == 0 {
			return r.emplace()
		}
		return r.erase()
	case n < weights.Emplace+weights.Erase+weights.Sort:
		r.sort()
	case n < weights.Emplace+weights.Erase+weights.Sort+weights.Respect:
		return r.respect()
	default:
		r.ops.Shrink++
		r.store.ShrinkToFit()
	}
	return nil
}

func (r *runner) emplace() error {
	e, err := r.pool.Create()
	if err != nil {
		return err
	}
	value := r.rng.Uint64()
	if err := r.store.Emplace(e, value); err != nil {
		return err
	}
	r.model.Put(e, value)
	r.live = append(r.live, e)
	r.ops.Emplace++
	return nil
}

func (r *runner) erase() error {
	i := r.rng.IntN(len(r.live))
	e := r.live[i]
	last := len(r.live) - 1
	r.live[i] = r.live[last]
	r.live = r.live[:last]

	if err := r.store.Erase(e, nil); err != nil {
		return err
	}
	if err := r.pool.Destroy(e); err != nil {
		return err
	}
	r.model.Del(e)
	r.ops.Erase++
	return nil
}

func (r *runner) sort() {
	r.ops.Sort++
	if r.rng.IntN(2) == 0 {
		r.store.SortByValue(func(a, b *uint64) bool { return *a < *b }, nil)
		return
	}
	r.store.Sort(func(a, b ecs.Entity) bool { return a.Index() < b.Index() }, ecs.StableSort)
}

// respect orders the storage after a random master set and checks that the
// shared entities come first, in the master's order.
func (r *runner) respect() error {
	r.ops.Respect++

	master := ecs.NewSparseSet[ecs.Entity](ecs.WithPageSize[ecs.Entity](r.w.PageSize))
	for range min(256, len(r.live)) {
		_ = master.Emplace(r.live[r.rng.IntN(len(r.live))])
	}
	// an entity unknown to the storage
	_ = master.Emplace(ecs.NewEntity(uint32(r.w.Entities)+1, 0))

	r.store.Respect(master)

	var shared []ecs.Entity
	for e := range master.All() {
		if r.store.Contains(e) {
			shared = append(shared, e)
		}
	}
	i := 0
	for e := range r.store.Set().All() {
		if i == len(shared) {
			break
		}
		if e != shared[i] {
			return fmt.Errorf("respect: entity %s at iteration step %d, want %s", e, i, shared[i])
		}
		i++
	}
	return nil
}

// check compares the storage against the model.
func (r *runner) check() error {
	r.checks++
	set := r.store.Set()

	if set.Size() != r.model.Len() {
		return fmt.Errorf("size %d, model has %d", set.Size(), r.model.Len())
	}
	values := r.store.Values()
	for pos, e := range set.Data() {
		idx, err := set.Index(e)
		if err != nil {
			return err
		}
		if idx != pos {
			return fmt.Errorf("entity %s stored at %d but indexed at %d", e, pos, idx)
		}
		want, ok := r.model.Get(e)
		if !ok {
			return fmt.Errorf("entity %s missing from model", e)
		}
		if values[pos] != want {
			return fmt.Errorf("entity %s has value %d, want %d", e, values[pos], want)
		}
	}

	var err error
	r.model.ForEach(func(e ecs.Entity, _ uint64) bool {
		if !set.Contains(e) || !r.pool.Valid(e) {
			err = fmt.Errorf("entity %s missing from storage", e)
			return false
		}
		return true
	})
	return err
}
