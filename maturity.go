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

// Maturity is the shape every maturity submodule variant implements.
// ProportionMature is the scalar (age- or length-based) form;
// ProportionMatureAtYear additionally allows the curve's parameters to
// vary by year via ForceScalar broadcasting.
type Maturity[T Scalar[T]] interface {
	ProportionMature(x T) T
	ProportionMatureAtYear(x T, yearIndex int) T
}

// LogisticMaturity is the only maturity variant required by spec.md: a
// scalar inflection point and slope, with the year-indexed form using
// TypedVector.ForceScalar so a single set of parameters can be either
// constant across years or vary by year without a code fork.
type LogisticMaturity[T Scalar[T]] struct {
	Inflection TypedVector[Parameter[T]]
	Slope      TypedVector[Parameter[T]]
}

// NewLogisticMaturity builds a LogisticMaturity from inflection and slope
// parameter vectors, each either length 1 (constant) or length Y
// (year-varying).
func NewLogisticMaturity[T Scalar[T]](inflection, slope TypedVector[Parameter[T]]) *LogisticMaturity[T] {
	return &LogisticMaturity[T]{Inflection: inflection, Slope: slope}
}

// ProportionMature evaluates the logistic curve using year index 0, i.e.
// treating the curve as constant across years.
func (m *LogisticMaturity[T]) ProportionMature(x T) T {
	return m.ProportionMatureAtYear(x, 0)
}

// ProportionMatureAtYear evaluates the logistic curve at x using the
// inflection/slope in effect for yearIndex (broadcast from a length-1
// vector if the curve does not vary by year).
func (m *LogisticMaturity[T]) ProportionMatureAtYear(x T, yearIndex int) T {
	inflection := m.Inflection.ForceScalar(yearIndex).FinalValue
	slope := m.Slope.ForceScalar(yearIndex).FinalValue
	return Logistic(inflection, slope, x)
}
