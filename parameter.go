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

// EstimationMode records whether a Parameter is held fixed or estimated by
// the external optimizer, and if estimated, in which statistical sense.
type EstimationMode int

const (
	// Constant parameters are never registered with the optimizer; their
	// FinalValue (equal to InitialValue as NewParameter builds them) is used
	// unchanged for every Evaluate.
	Constant EstimationMode = iota
	// FixedEffects parameters are registered and estimated as ordinary
	// fixed effects.
	FixedEffects
	// RandomEffects parameters are registered and estimated as random
	// effects (e.g. recruitment process deviations).
	RandomEffects
)

// Estimated reports whether m should be appended to the parameter
// registration order at build time.
func (m EstimationMode) Estimated() bool {
	return m == FixedEffects || m == RandomEffects
}

func (m EstimationMode) String() string {
	switch m {
	case Constant:
		return "constant"
	case FixedEffects:
		return "fixed_effects"
	case RandomEffects:
		return "random_effects"
	default:
		return "unknown"
	}
}

// Parameter is a single scalar with an initial value, a final (current)
// value, and an estimation mode. T is the concrete Scalar implementation in
// use for this build (Float64 for a plain evaluation, adscalar.Dual for a
// differentiated one).
type Parameter[T any] struct {
	Identity      uint32
	InitialValue  T
	FinalValue    T
	EstimationMode EstimationMode
}

// NewParameter constructs a Constant parameter; callers needing a different
// estimation mode set the field directly or use WithEstimationMode.
func NewParameter[T any](id uint32, initial T) Parameter[T] {
	return Parameter[T]{Identity: id, InitialValue: initial, FinalValue: initial, EstimationMode: Constant}
}

// WithEstimationMode returns a copy of p with the estimation mode changed.
func (p Parameter[T]) WithEstimationMode(m EstimationMode) Parameter[T] {
	p.EstimationMode = m
	return p
}

// ParameterVector is a TypedVector of Parameters; it carries its own
// identity distinct from any one Parameter's identity, matching §3's
// "ParameterVector is a TypedVector of Parameters with its own identity."
type ParameterVector[T any] struct {
	TypedVector[Parameter[T]]
}

// NewParameterVector allocates a ParameterVector of the given length, all
// entries Constant and zero-valued; callers fill in values with Set.
func NewParameterVector[T any](id uint32, length int) ParameterVector[T] {
	return ParameterVector[T]{TypedVector: NewTypedVector[Parameter[T]](id, length)}
}

// ForceScalarValue returns the final (current) value at index i, applying
// the same length-1 broadcast rule as TypedVector.ForceScalar.
func (pv ParameterVector[T]) ForceScalarValue(i int) T {
	return pv.ForceScalar(i).FinalValue
}

// Registration is one entry in the order estimable parameters were
// appended to an optimizer's parameter vector at build time.
type Registration struct {
	// Owner names the entity (population, fleet, or submodule) and field
	// the parameter belongs to, for diagnostics only.
	Owner string
	Index int
}
