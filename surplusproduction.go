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

// SurplusProductionEvaluator is the biomass-dynamics (Pella-Tomlinson)
// evaluator: a simpler, age-free traversal over the same Population
// abstraction, with a single scalar per year (observed catch, depletion,
// biomass) instead of the catch-at-age engine's year x age state (spec.md
// §4.6). No harvest-rate series is computed.
type SurplusProductionEvaluator[T Scalar[T]] struct {
	store     *DQStore[T]
	zero      T
	finalized bool
}

// NewSurplusProductionEvaluator builds an evaluator backed by a fresh
// derived-quantity store.
func NewSurplusProductionEvaluator[T Scalar[T]](zero T) *SurplusProductionEvaluator[T] {
	return &SurplusProductionEvaluator[T]{store: NewDQStore[T](zero), zero: zero}
}

// Store exposes the derived-quantity store for Report.
func (e *SurplusProductionEvaluator[T]) Store() *DQStore[T] { return e.store }

var spPopSpecs = []string{
	"observed_catch", "log_expected_depletion", "expected_depletion", "biomass",
}

// Initialize allocates every population- and fleet-scoped derived-quantity
// vector this evaluator exposes.
func (e *SurplusProductionEvaluator[T]) Initialize(pop *Population[T]) error {
	if pop.Ages <= 0 || pop.Years <= 0 {
		return fmt.Errorf("stockassess: population %d: non-positive grid (A=%d, Y=%d)", pop.Identity, pop.Ages, pop.Years)
	}
	if pop.Depletion == nil {
		return fmt.Errorf("stockassess: population %d: missing depletion submodule", pop.Identity)
	}
	Y := pop.Years

	for _, name := range spPopSpecs {
		e.store.Register(pop.Identity, name, Y+1, Dims{Name: name, Lengths: []int{Y + 1}, DimNames: []string{"year"}})
	}

	for _, f := range pop.Fleets {
		if f.LogQ.Len() == 0 {
			f.LogQ = TypedVectorOf[Parameter[T]](0, []Parameter[T]{NewParameter(0, e.zero)})
		}
		e.store.Register(f.Identity, "q", f.LogQ.Len(), Dims{Name: "q", Lengths: []int{f.LogQ.Len()}, DimNames: []string{"year"}})
		e.store.Register(f.Identity, "index_expected", Y+1, Dims{Name: "index_expected", Lengths: []int{Y + 1}, DimNames: []string{"year"}})
	}
	return nil
}

// Prepare resets every derived-quantity vector and transforms log-scale
// catchability to natural scale.
func (e *SurplusProductionEvaluator[T]) Prepare(pop *Population[T]) {
	e.store.ResetAll(pop.Identity)
	for _, f := range pop.Fleets {
		e.store.ResetAll(f.Identity)
		q := e.store.Get(f.Identity, "q")
		for i := 0; i < f.LogQ.Len(); i++ {
			q.Set(i, f.LogQ.At(i).FinalValue.Exp())
		}
	}
}

// Evaluate runs the year loop described in spec.md §4.6, seeded by
// pop.LogInitDepletion (the biomass-dynamics analogue of log_init_naa).
func (e *SurplusProductionEvaluator[T]) Evaluate(pop *Population[T]) error {
	Y := pop.Years
	logInitDepletion := pop.LogInitDepletion.FinalValue

	observedCatch := e.store.Get(pop.Identity, "observed_catch")
	logDepletion := e.store.Get(pop.Identity, "log_expected_depletion")
	depletion := e.store.Get(pop.Identity, "expected_depletion")
	biomass := e.store.Get(pop.Identity, "biomass")

	pt, ok := pop.Depletion.(*PellaTomlinson[T])
	if !ok {
		return fmt.Errorf("stockassess: population %d: depletion submodule is not Pella-Tomlinson", pop.Identity)
	}
	k := pt.K()

	for y := 0; y <= Y; y++ {
		sum := e.zero.Const(0)
		for _, f := range pop.Fleets {
			if f.ObservedLandings != nil && y < len(f.ObservedLandings.Values) {
				v := f.ObservedLandings.Values[y]
				if !IsNA(v) {
					sum = sum.Add(e.zero.Const(v))
				}
			}
		}
		observedCatch.Set(y, sum)

		if y == 0 {
			logDepletion.Set(0, logInitDepletion)
		} else {
			step := pt.EvaluateMean(depletion.At(y-1), observedCatch.At(y-1))
			clamped := ClampDepletion(step)
			logDepletion.Set(y, clamped.Log())
		}
		depletion.Set(y, logDepletion.At(y).Exp())
		biomass.Set(y, depletion.At(y).Mul(k))

		for _, f := range pop.Fleets {
			q := e.store.Get(f.Identity, "q")
			idxExpected := e.store.Get(f.Identity, "index_expected")
			idxExpected.Set(y, logDepletion.At(y).Add(q.ForceScalar(y).Log()).Exp())
		}
	}
	return nil
}

// ReferencePoints computes the Pella-Tomlinson reference points F_msy,
// B_msy, and MSY for pop (spec.md §4.6).
func (e *SurplusProductionEvaluator[T]) ReferencePoints(pop *Population[T]) (fMsy, bMsy, msy T, err error) {
	pt, ok := pop.Depletion.(*PellaTomlinson[T])
	if !ok {
		var zero T
		return zero, zero, zero, fmt.Errorf("stockassess: population %d: depletion submodule is not Pella-Tomlinson", pop.Identity)
	}
	r, k, m := pt.R(), pt.K(), pt.M()
	one := m.Const(1)
	mMinus1 := m.Sub(one)

	fMsy = r.Div(mMinus1).Mul(one.Sub(one.Div(m)))
	bMsy = k.Mul(m.Pow(one.Neg().Div(mMinus1)))
	msy = fMsy.Mul(bMsy)
	return fMsy, bMsy, msy, nil
}

// Finalize may be called at most once per evaluator after Evaluate.
func (e *SurplusProductionEvaluator[T]) Finalize() {
	if e.finalized {
		diag.Warnf("surplus-production evaluator: Finalize called more than once")
		return
	}
	e.finalized = true
}
