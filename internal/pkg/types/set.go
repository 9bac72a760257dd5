// Package types holds small generic containers shared across services.
package types

import (
	"iter"
	"maps"
	"slices"
)

// Set is a generic hash set over comparable types, backed by a
// map[T]struct{}. It is mutable: Add and Delete modify it in place.
type Set[T comparable] map[T]struct{}

// NewSet creates a Set optionally seeded with the given elements.
func NewSet[T comparable](data ...T) Set[T] {
	set := make(Set[T])
	set.Add(data...)
	return set
}

// Add inserts one or more elements into the set.
func (s Set[T]) Add(values ...T) {
	for _, val := range values {
		s[val] = struct{}{}
	}
}

// Delete removes one or more elements from the set.
func (s Set[T]) Delete(values ...T) {
	for _, val := range values {
		delete(s, val)
	}
}

// Contains reports whether v is a member of the set.
func (s Set[T]) Contains(v T) bool {
	_, ok := s[v]
	return ok
}

// IsEmpty reports whether the set has no elements.
func (s Set[T]) IsEmpty() bool {
	return len(s) == 0
}

// ToIter returns an iterator over all elements, in no particular order.
func (s Set[T]) ToIter() iter.Seq[T] {
	return maps.Keys(s)
}

// ToSlice returns all elements as a slice, in no particular order.
func (s Set[T]) ToSlice() []T {
	return slices.Collect(s.ToIter())
}
