/*
Copyright © 2024 the stockassess authors.
This file is part of stockassess.

stockassess is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

stockassess is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with stockassess.  If not, see <http://www.gnu.org/licenses/>.
*/

package stockassess

import (
	"fmt"

	"github.com/fisheriesmodel/stockassess/internal/diag"
)

// Dims describes the shape of one derived-quantity vector so downstream
// consumers can reshape it without re-deriving the axes themselves.
type Dims struct {
	Name     string
	Lengths  []int    // e.g. [Y, A] for a (year, age) quantity
	DimNames []string // e.g. ["year", "age"]
}

// DQStore is the per-evaluator derived-quantity store described in §4.4. It
// is owned by the evaluator rather than by Population or Fleet because two
// different evaluators (catch-at-age vs. surplus-production) expose
// different quantities for the same entities, and Prepare must reset only
// the quantities relevant to the evaluator that owns it.
type DQStore[T any] struct {
	values map[uint32]map[string]TypedVector[T]
	dims   map[uint32]map[string]Dims
	zero   T
}

// NewDQStore builds an empty store. zero is the type's zero value, used by
// Reset -- for a Scalar type this should be that Scalar's representation of
// the number 0.
func NewDQStore[T any](zero T) *DQStore[T] {
	return &DQStore[T]{
		values: make(map[uint32]map[string]TypedVector[T]),
		dims:   make(map[uint32]map[string]Dims),
		zero:   zero,
	}
}

// Register allocates (or re-allocates) the named vector for entityID with
// the given length and dimension metadata. Calling Register again for the
// same (entityID, name) replaces the vector, which is how Initialize is
// re-runnable.
func (s *DQStore[T]) Register(entityID uint32, name string, length int, dims Dims) {
	if s.values[entityID] == nil {
		s.values[entityID] = make(map[string]TypedVector[T])
		s.dims[entityID] = make(map[string]Dims)
	}
	s.values[entityID][name] = NewTypedVector[T](0, length)
	s.dims[entityID][name] = dims
}

// Get returns the named vector for entityID. Missing lookups are not a
// construction error (per §7): they emit a warning through the host
// channel and return an empty vector, so a Report pass over an unexpected
// key degrades gracefully instead of panicking.
func (s *DQStore[T]) Get(entityID uint32, name string) TypedVector[T] {
	m, ok := s.values[entityID]
	if !ok {
		diag.Warnf("derived-quantity store: unknown entity %d", entityID)
		return TypedVector[T]{}
	}
	v, ok := m[name]
	if !ok {
		diag.Warnf("derived-quantity store: entity %d has no quantity %q", entityID, name)
		return TypedVector[T]{}
	}
	return v
}

// GetAll returns every quantity registered for entityID.
func (s *DQStore[T]) GetAll(entityID uint32) map[string]TypedVector[T] {
	return s.values[entityID]
}

// Dims returns the dimension metadata for (entityID, name).
func (s *DQStore[T]) Dims(entityID uint32, name string) (Dims, bool) {
	m, ok := s.dims[entityID]
	if !ok {
		return Dims{}, false
	}
	d, ok := m[name]
	return d, ok
}

// ResetAll zeroes every quantity registered for entityID in place,
// preserving capacity, per the §3 invariant that every derived-quantity
// vector is reset to zero at the start of each Evaluate.
func (s *DQStore[T]) ResetAll(entityID uint32) {
	for _, v := range s.values[entityID] {
		v.Reset(s.zero)
	}
}

// ResetEverything resets every quantity for every entity the store knows
// about. The evaluators' Prepare methods reset per entity with ResetAll
// instead.
func (s *DQStore[T]) ResetEverything() {
	for id := range s.values {
		s.ResetAll(id)
	}
}

// Add accumulates delta into the element at index i of (entityID, name).
// The catch-at-age traversal does not use it: it accumulates directly on
// the vectors it fetched once with Get.
func (s *DQStore[T]) Add(entityID uint32, name string, i int, delta T, add func(T, T) T) {
	v := s.values[entityID][name]
	v.Set(i, add(v.At(i), delta))
}

// Entities returns the entity identities currently registered, for Report.
func (s *DQStore[T]) Entities() []uint32 {
	ids := make([]uint32, 0, len(s.values))
	for id := range s.values {
		ids = append(ids, id)
	}
	return ids
}

func missingEntityError(kind string, id uint32) error {
	return fmt.Errorf("stockassess: %s %d: not found", kind, id)
}
