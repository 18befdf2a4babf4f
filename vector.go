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

import "fmt"

// TypedVector is a contiguous, value-semantic sequence of T with a stable
// identity. Its ForceScalar accessor lets a length-1 vector stand in for a
// constant wherever a per-year or per-age value is expected -- the pattern
// that lets catchability, F multipliers, and similar series be written
// once whether or not the caller chose to estimate them as time series.
type TypedVector[T any] struct {
	id     uint32
	values []T
}

// NewTypedVector builds a vector of the given length, zero-valued.
func NewTypedVector[T any](id uint32, length int) TypedVector[T] {
	return TypedVector[T]{id: id, values: make([]T, length)}
}

// TypedVectorOf wraps an existing slice without copying.
func TypedVectorOf[T any](id uint32, values []T) TypedVector[T] {
	return TypedVector[T]{id: id, values: values}
}

// ID returns the vector's stable identity.
func (v TypedVector[T]) ID() uint32 { return v.id }

// Len returns the number of stored elements (not the broadcast length).
func (v TypedVector[T]) Len() int { return len(v.values) }

// At returns the element at index i with no broadcasting.
func (v TypedVector[T]) At(i int) T { return v.values[i] }

// Set assigns the element at index i.
func (v *TypedVector[T]) Set(i int, val T) { v.values[i] = val }

// Slice exposes the backing slice. Callers must not retain it across a
// Reset of the owning store.
func (v TypedVector[T]) Slice() []T { return v.values }

// ForceScalar returns element 0 when the vector has length 1 (broadcasting
// it as a constant for any index), and element i otherwise. This is the
// single mechanism by which a Parameter vector may be supplied as either a
// scalar or a full time series without branching call sites.
func (v TypedVector[T]) ForceScalar(i int) T {
	if len(v.values) == 1 {
		return v.values[0]
	}
	return v.values[i]
}

// Reset zeroes every element in place, preserving capacity. zero is the
// type's zero value for plain numeric T; callers needing a non-zero reset
// value (e.g. a Scalar whose zero value is meaningful) pass it explicitly.
func (v TypedVector[T]) Reset(zero T) {
	for i := range v.values {
		v.values[i] = zero
	}
}

// String renders the vector compactly for diagnostics.
func (v TypedVector[T]) String() string {
	return fmt.Sprintf("TypedVector(id=%d, len=%d)", v.id, len(v.values))
}
