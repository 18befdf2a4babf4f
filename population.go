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

// Population owns the biological state for one stock: its age and year
// axes, natural-mortality and initial-numbers-at-age parameters, and
// (non-owning) references to the growth/maturity/recruitment/depletion
// submodules and the fleets that harvest it. It is a plain data carrier --
// every algorithm that operates on a Population lives in the evaluator that
// was built with it (§4.3).
type Population[T Scalar[T]] struct {
	Identity uint32

	Years int // Y
	Ages  int // A

	AgeAxis  []float64 // length A, biological age at each index
	YearAxis []float64 // length Y

	// LogInitNAA is the initial log numbers-at-age, length A.
	LogInitNAA TypedVector[Parameter[T]]

	// LogM is log natural mortality, length Y*A, indexed y*A+a (the
	// row-major (year, age) convention fixed by §3's invariants).
	LogM TypedVector[Parameter[T]]

	// LogFMultiplier is the log annual F multiplier, length Y.
	LogFMultiplier TypedVector[Parameter[T]]

	// ProportionFemale is proportion-female by age, length A. A zero-length
	// vector is broadcast to 0.5 by Prepare (spec.md §4.5 Prepare step).
	ProportionFemale TypedVector[Parameter[T]]

	Growth      Growth[T]
	Maturity    Maturity[T]
	Recruitment Recruitment[T]

	// Depletion is only set for the biomass-dynamics (surplus-production)
	// variant of this population.
	Depletion Depletion[T]

	// LogInitDepletion is the log of the depletion state at year 0, only
	// set for the biomass-dynamics variant (the surplus-production
	// analogue of LogInitNAA).
	LogInitDepletion Parameter[T]

	// Fleets are the fleets participating in this population's catch-at-age
	// traversal, in the order parameters were registered at build time.
	Fleets []*Fleet[T]
}

// Validate checks the construction invariants described in spec.md §7:
// non-positive age grid, mismatched parameter-vector lengths, and a missing
// required submodule reference are all fatal construction errors.
func (p *Population[T]) Validate() error {
	if p.Ages <= 0 {
		return fmt.Errorf("stockassess: population %d: non-positive age grid (A=%d)", p.Identity, p.Ages)
	}
	if p.Years <= 0 {
		return fmt.Errorf("stockassess: population %d: non-positive year grid (Y=%d)", p.Identity, p.Years)
	}
	if len(p.AgeAxis) != p.Ages {
		return fmt.Errorf("stockassess: population %d: age axis has %d entries, want %d", p.Identity, len(p.AgeAxis), p.Ages)
	}
	if len(p.YearAxis) != p.Years {
		return fmt.Errorf("stockassess: population %d: year axis has %d entries, want %d", p.Identity, len(p.YearAxis), p.Years)
	}
	if p.LogInitNAA.Len() != p.Ages {
		return fmt.Errorf("stockassess: population %d: log_init_naa has %d entries, want %d", p.Identity, p.LogInitNAA.Len(), p.Ages)
	}
	if n := p.LogM.Len(); n != p.Years*p.Ages {
		return fmt.Errorf("stockassess: population %d: log_M has %d entries, want %d", p.Identity, n, p.Years*p.Ages)
	}
	if n := p.LogFMultiplier.Len(); n != p.Years {
		return fmt.Errorf("stockassess: population %d: log_f_multiplier has %d entries, want %d", p.Identity, n, p.Years)
	}
	if p.Growth == nil {
		return fmt.Errorf("stockassess: population %d: missing growth submodule", p.Identity)
	}
	if p.Maturity == nil {
		return fmt.Errorf("stockassess: population %d: missing maturity submodule", p.Identity)
	}
	if p.Recruitment == nil {
		return fmt.Errorf("stockassess: population %d: missing recruitment submodule", p.Identity)
	}
	return nil
}

// naaIndex returns the row-major (year, age) index y*A+a.
func (p *Population[T]) naaIndex(y, a int) int {
	return y*p.Ages + a
}
