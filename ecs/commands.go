package ecs

import (
	"errors"

	"github.com/kamstrup/intmap"
)

// CommandTarget is what a Commands buffer is flushed into. *SparseSet
// satisfies it.
type CommandTarget[E Identifier] interface {
	Emplace(entity E) error
	Remove(entity E, ud any) bool
}

// Commands buffers structural changes so they can be requested while a set
// is being iterated and applied once iteration is over.
type Commands[E Identifier] struct {
	emplaces []E
	removes  []removeCommand[E]
	defers   []func()
}

type removeCommand[E Identifier] struct {
	entity E
	ud     any
}

func NewCommands[E Identifier]() *Commands[E] {
	return &Commands[E]{}
}

// Emplace queues an insertion.
func (c *Commands[E]) Emplace(entity E) {
	c.emplaces = append(c.emplaces, entity)
}

// Remove queues a removal; ud is forwarded to the erase hooks.
func (c *Commands[E]) Remove(entity E, ud any) {
	c.removes = append(c.removes, removeCommand[E]{entity: entity, ud: ud})
}

// Defer queues a function to run after the structural changes.
func (c *Commands[E]) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending returns the number of queued operations.
func (c *Commands[E]) Pending() int {
	return len(c.emplaces) + len(c.removes) + len(c.defers)
}

// Flush applies removals, then insertions, then deferred functions, and
// resets the buffer. An insertion of an entity removed in the same flush is
// dropped. Failed insertions are reported together.
func (c *Commands[E]) Flush(target CommandTarget[E]) error {
	removed := intmap.New[E, struct{}](max(len(c.removes), 8))
	for _, cmd := range c.removes {
		target.Remove(cmd.entity, cmd.ud)
		removed.Put(cmd.entity, struct{}{})
	}

	var errs []error
	for _, e := range c.emplaces {
		if _, ok := removed.Get(e); ok {
			continue
		}
		if err := target.Emplace(e); err != nil {
			errs = append(errs, err)
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	c.emplaces = c.emplaces[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
	return errors.Join(errs...)
}
