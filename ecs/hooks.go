package ecs

// Hooks lets a collaborator keep a parallel array aligned with the packed
// entity array of a SparseSet. Positions are dense positions.
type Hooks[E Identifier] interface {
	// SwapAt mirrors an exchange of the entities at lhs and rhs.
	SwapAt(lhs, rhs int)
	// SwapAndPop mirrors the compaction step of an erase: the last element
	// moves into pos and the array shrinks by one.
	SwapAndPop(pos int)
	// AboutToErase is called before entity leaves the set, while it can
	// still be looked up. ud is the user data passed to the erase call.
	AboutToErase(entity E, ud any)
}

// NopHooks ignores every notification.
type NopHooks[E Identifier] struct{}

func (NopHooks[E]) SwapAt(int, int)     {}
func (NopHooks[E]) SwapAndPop(int)      {}
func (NopHooks[E]) AboutToErase(E, any) {}
