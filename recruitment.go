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

// Recruitment is the shape every recruitment submodule variant implements.
// EvaluateMean produces the mean recruitment on the stock-recruit curve;
// EvaluateProcess produces the log-scale expected recruitment for a given
// year including any process deviation.
type Recruitment[T Scalar[T]] interface {
	EvaluateMean(spawningBiomass, phi0 T) T
	EvaluateProcess(yearIndex int) T

	// R0 returns unfished recruitment on the natural scale, used by the
	// evaluator to seed unfished_numbers_at_age at every age-0 cell.
	R0() T

	// RecordLogExpectedRecruitment lets the evaluator write back the
	// log-scale mean recruitment for a non-terminal year so a later
	// EvaluateProcess call can read it without the submodule depending on
	// the evaluator's SSB/phi0 state.
	RecordLogExpectedRecruitment(yearIndex int, value T)
}

// BevertonHolt is the Beverton-Holt stock-recruit variant, parameterized by
// steepness h and unfished recruitment R0.
type BevertonHolt[T Scalar[T]] struct {
	LogR0     Parameter[T]
	Steepness Parameter[T]

	// RecruitDev is the log-scale recruitment process deviation, one entry
	// per non-terminal year (mirrors recruitment.hpp's recruit_deviations
	// field, per SPEC_FULL §5).
	RecruitDev TypedVector[Parameter[T]]

	// LogExpectedRecruitment is written by the evaluator for each
	// non-terminal year (spec.md §4.5.1) so EvaluateProcess can read it
	// back without the submodule needing to know about SSB or phi0.
	LogExpectedRecruitment TypedVector[Parameter[T]]
}

// NewBevertonHolt builds a BevertonHolt recruitment submodule.
func NewBevertonHolt[T Scalar[T]](logR0, steepness Parameter[T], recruitDev, logExpectedRecruitment TypedVector[Parameter[T]]) *BevertonHolt[T] {
	return &BevertonHolt[T]{LogR0: logR0, Steepness: steepness, RecruitDev: recruitDev, LogExpectedRecruitment: logExpectedRecruitment}
}

// EvaluateMean computes R(SB) = (0.8 R0 h SB) / (0.2 R0 phi0 (1-h) + SB(h-0.2)).
func (b *BevertonHolt[T]) EvaluateMean(spawningBiomass, phi0 T) T {
	r0 := b.LogR0.FinalValue.Exp()
	h := b.Steepness.FinalValue

	c08 := spawningBiomass.Const(0.8)
	c02 := spawningBiomass.Const(0.2)
	c1 := spawningBiomass.Const(1)

	numerator := c08.Mul(r0).Mul(h).Mul(spawningBiomass)
	denominator := c02.Mul(r0).Mul(phi0).Mul(c1.Sub(h)).
		Add(spawningBiomass.Mul(h.Sub(c02)))
	return numerator.Div(denominator)
}

// EvaluateProcess returns log_expected_recruitment[y] + process_deviation[y].
func (b *BevertonHolt[T]) EvaluateProcess(yearIndex int) T {
	logExpected := b.LogExpectedRecruitment.ForceScalar(yearIndex).FinalValue
	dev := b.RecruitDev.ForceScalar(yearIndex).FinalValue
	return logExpected.Add(dev)
}

// R0 returns unfished recruitment on the natural scale.
func (b *BevertonHolt[T]) R0() T {
	return b.LogR0.FinalValue.Exp()
}

// RecordLogExpectedRecruitment writes the log-scale mean recruitment for
// yearIndex into LogExpectedRecruitment, as a Constant-mode parameter since
// this value is derived, never estimated directly.
func (b *BevertonHolt[T]) RecordLogExpectedRecruitment(yearIndex int, value T) {
	b.LogExpectedRecruitment.Set(yearIndex, NewParameter(0, value))
}
