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

// Selectivity is the shape every selectivity submodule variant implements:
// the fraction of the population at a given age or length that is
// vulnerable to a fleet.
type Selectivity[T Scalar[T]] interface {
	Selectivity(x T) T
}

// LogisticSelectivity is a single ascending logistic curve.
type LogisticSelectivity[T Scalar[T]] struct {
	Inflection Parameter[T]
	Slope      Parameter[T]
}

// NewLogisticSelectivity builds a LogisticSelectivity.
func NewLogisticSelectivity[T Scalar[T]](inflection, slope Parameter[T]) *LogisticSelectivity[T] {
	return &LogisticSelectivity[T]{Inflection: inflection, Slope: slope}
}

// Selectivity evaluates the logistic curve at x.
func (s *LogisticSelectivity[T]) Selectivity(x T) T {
	return Logistic(s.Inflection.FinalValue, s.Slope.FinalValue, x)
}

// DoubleLogisticSelectivity is the product of an ascending logistic and one
// minus a descending logistic, giving a dome-shaped curve.
type DoubleLogisticSelectivity[T Scalar[T]] struct {
	InflectionAsc, SlopeAsc   Parameter[T]
	InflectionDesc, SlopeDesc Parameter[T]
}

// NewDoubleLogisticSelectivity builds a DoubleLogisticSelectivity.
func NewDoubleLogisticSelectivity[T Scalar[T]](inflectionAsc, slopeAsc, inflectionDesc, slopeDesc Parameter[T]) *DoubleLogisticSelectivity[T] {
	return &DoubleLogisticSelectivity[T]{
		InflectionAsc: inflectionAsc, SlopeAsc: slopeAsc,
		InflectionDesc: inflectionDesc, SlopeDesc: slopeDesc,
	}
}

// Selectivity evaluates asc(x) * (1 - desc(x)).
func (s *DoubleLogisticSelectivity[T]) Selectivity(x T) T {
	asc := Logistic(s.InflectionAsc.FinalValue, s.SlopeAsc.FinalValue, x)
	desc := Logistic(s.InflectionDesc.FinalValue, s.SlopeDesc.FinalValue, x)
	return asc.Mul(x.Const(1).Sub(desc))
}
