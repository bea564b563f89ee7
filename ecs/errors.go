package ecs

import (
	"errors"
	"fmt"
)

// Contract violations. These signal programmer errors; the set is left
// unchanged when one is returned.
var (
	ErrAlreadyContained    = errors.New("entity already contained")
	ErrNotContained        = errors.New("entity not contained")
	ErrOutOfBounds         = errors.New("position out of bounds")
	ErrNullEntity          = errors.New("null entity")
	ErrIndexSpaceExhausted = errors.New("dense position space exhausted")
	ErrStaleEntity         = errors.New("stale entity version")
	ErrTombstoneVersion    = errors.New("tombstone version")
)

// ContractError reports which operation failed and on which identifier.
type ContractError struct {
	Op     string
	Entity uint64
	Err    error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s %d: %v", e.Op, e.Entity, e.Err)
}

func (e *ContractError) Unwrap() error {
	return e.Err
}

func contractError[E Identifier](op string, entity E, err error) error {
	return &ContractError{Op: op, Entity: uint64(entity), Err: err}
}
