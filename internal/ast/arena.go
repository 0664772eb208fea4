package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena is a compact, append-only, slice-backed store of T, addressed by
// 1-based index so that the zero value of the index type can serve as a
// "no value" sentinel.
type Arena[T any] struct {
	data []T
}

// NewArena creates an arena with an optional capacity hint.
func NewArena[T any](capacityHint uint) *Arena[T] {
	return &Arena[T]{data: make([]T, 0, capacityHint)}
}

// Allocate appends value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	idx, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("ast: arena overflow: %w", err))
	}
	a.data = append(a.data, value)
	return idx + 1
}

// Get returns a pointer to the element at the 1-based index, or nil if the
// index is zero or out of range.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || int(index) > len(a.data) {
		return nil
	}
	return &a.data[index-1]
}

// Len reports the number of allocated elements.
func (a *Arena[T]) Len() int { return len(a.data) }

// Slice exposes the underlying storage read-only; callers must not retain
// pointers derived from it across further Allocate calls.
func (a *Arena[T]) Slice() []T { return a.data }
