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
	"github.com/fisheriesmodel/stockassess/internal/diag"
)

// CatchAtAgeEvaluator is the age-structured population-dynamics evaluator:
// the full year x age traversal that fills numbers-at-age, mortality,
// biomass, recruitment, and every per-fleet catch/index/composition
// quantity. Evaluate is pure with respect to its inputs and idempotent --
// Prepare fully overwrites every vector it touches before each traversal.
type CatchAtAgeEvaluator[T Scalar[T]] struct {
	store     *DQStore[T]
	zero      T
	finalized bool
}

// NewCatchAtAgeEvaluator builds an evaluator backed by a fresh
// derived-quantity store. zero is this build's representation of the
// number 0 (Float64(0), or adscalar.Constant(0) wrapped by the caller).
func NewCatchAtAgeEvaluator[T Scalar[T]](zero T) *CatchAtAgeEvaluator[T] {
	return &CatchAtAgeEvaluator[T]{store: NewDQStore[T](zero), zero: zero}
}

// Store exposes the derived-quantity store for Report.
func (e *CatchAtAgeEvaluator[T]) Store() *DQStore[T] { return e.store }

// dqSpec is one per-population derived-quantity allocation: name,
// per-year-axis length multiplier (A for per-age, 1 for per-year), and
// whether the year axis is Y or Y+1.
type dqSpec struct {
	name     string
	perAge   bool
	terminal bool // true => year axis is Y+1, false => Y
	dimNames []string
}

// popSpecs lists every per-population derived quantity from spec.md §3.
// proportion_mature_at_age and expected_recruitment are sized Y+1 (not Y)
// even though §3's literal exception list omits them: the traversal in
// §4.5 steps 2 and 4.5.1 writes both at the terminal year y == Y, so a
// length-Y allocation would be an out-of-bounds write. This reconciliation
// is recorded in DESIGN.md.
var popSpecs = []dqSpec{
	{"numbers_at_age", true, true, []string{"year", "age"}},
	{"unfished_numbers_at_age", true, true, []string{"year", "age"}},
	{"mortality_F", true, false, []string{"year", "age"}},
	{"mortality_M", true, false, []string{"year", "age"}},
	{"mortality_Z", true, false, []string{"year", "age"}},
	{"proportion_mature_at_age", true, true, []string{"year", "age"}},
	{"sum_selectivity", true, false, []string{"year", "age"}},
	{"biomass", false, true, []string{"year"}},
	{"unfished_biomass", false, true, []string{"year"}},
	{"spawning_biomass", false, true, []string{"year"}},
	{"unfished_spawning_biomass", false, true, []string{"year"}},
	{"spawning_biomass_ratio", false, true, []string{"year"}},
	{"expected_recruitment", false, true, []string{"year"}},
	{"total_landings_weight", false, false, []string{"year"}},
	{"total_landings_numbers", false, false, []string{"year"}},
	// Internal (unreported) natural-scale transforms from Prepare.
	{"M", true, false, []string{"year", "age"}},
	{"f_multiplier", false, false, []string{"year"}},
}

func (s dqSpec) length(y, a int) int {
	years := y
	if s.terminal {
		years++
	}
	if s.perAge {
		return years * a
	}
	return years
}

// fleetPerAgeSpecs lists every per-fleet, per-(year,age) derived quantity.
var fleetPerAgeSpecs = []string{
	"landings_numbers_at_age", "landings_weight_at_age",
	"index_numbers_at_age", "index_weight_at_age",
	"agecomp_expected", "agecomp_proportion",
}

// fleetPerYearSpecs lists every per-fleet, per-year derived quantity.
var fleetPerYearSpecs = []string{
	"landings_numbers", "landings_weight", "landings_expected", "log_landings_expected",
	"index_numbers", "index_weight", "index_expected", "log_index_expected",
}

// fleetPerLengthSpecs lists every per-fleet, per-(year,length) derived
// quantity, allocated only when the fleet has length bins.
var fleetPerLengthSpecs = []string{
	"lengthcomp_expected", "lengthcomp_proportion",
	"landings_numbers_at_length", "index_numbers_at_length",
}

// Initialize allocates every population- and fleet-scoped derived-quantity
// vector (spec.md §4.5 Initialize). It is re-runnable: calling it again
// reallocates (and so implicitly clears) every vector.
func (e *CatchAtAgeEvaluator[T]) Initialize(pop *Population[T]) error {
	if err := pop.Validate(); err != nil {
		return err
	}
	Y, A := pop.Years, pop.Ages

	for _, s := range popSpecs {
		e.store.Register(pop.Identity, s.name, s.length(Y, A), Dims{Name: s.name, Lengths: dims(s, Y, A), DimNames: s.dimNames})
	}

	// Per-sex numbers-at-age (original_source/.../subpopulation.hpp) is
	// registered only when the population supplies its own proportion-female
	// vector; a population that leaves it empty gets the uniform 0.5 default
	// broadcast in Prepare, for which the sex split carries no information
	// beyond numbers_at_age itself. The decision has to be made here, before
	// Prepare overwrites a caller-omitted ProportionFemale with that default.
	if pop.ProportionFemale.Len() > 0 {
		e.store.Register(pop.Identity, "numbers_at_age_female", (Y+1)*A, Dims{Name: "numbers_at_age_female", Lengths: []int{Y + 1, A}, DimNames: []string{"year", "age"}})
		e.store.Register(pop.Identity, "numbers_at_age_male", (Y+1)*A, Dims{Name: "numbers_at_age_male", Lengths: []int{Y + 1, A}, DimNames: []string{"year", "age"}})
	}

	for _, f := range pop.Fleets {
		// "ensure log_q has at least one element (default to 0 if none
		// provided)" -- applied before Validate, since a caller-supplied
		// zero-length log_q is exactly the case this default exists for,
		// not a construction error; mutate in place so Prepare's transform
		// below and Fleet.Validate's length-1-or-Y check both see it.
		if f.LogQ.Len() == 0 {
			f.LogQ = TypedVectorOf[Parameter[T]](0, []Parameter[T]{NewParameter(0, e.zero)})
		}
		if err := f.Validate(); err != nil {
			return err
		}

		e.store.Register(f.Identity, "q", f.LogQ.Len(), Dims{Name: "q", Lengths: []int{f.LogQ.Len()}, DimNames: []string{"year"}})
		e.store.Register(f.Identity, "Fmort", Y, Dims{Name: "Fmort", Lengths: []int{Y}, DimNames: []string{"year"}})

		for _, name := range fleetPerAgeSpecs {
			e.store.Register(f.Identity, name, Y*A, Dims{Name: name, Lengths: []int{Y, A}, DimNames: []string{"year", "age"}})
		}
		for _, name := range fleetPerYearSpecs {
			e.store.Register(f.Identity, name, Y, Dims{Name: name, Lengths: []int{Y}, DimNames: []string{"year"}})
		}
		if f.LengthBins > 0 {
			for _, name := range fleetPerLengthSpecs {
				e.store.Register(f.Identity, name, Y*f.LengthBins, Dims{Name: name, Lengths: []int{Y, f.LengthBins}, DimNames: []string{"year", "length"}})
			}
		}
	}
	return nil
}

func dims(s dqSpec, y, a int) []int {
	years := y
	if s.terminal {
		years++
	}
	if s.perAge {
		return []int{years, a}
	}
	return []int{years}
}

// Prepare resets every derived-quantity vector for pop and its fleets to
// zero, broadcasts an unspecified proportion-female to 0.5, and transforms
// every log-scale parameter to its natural scale (spec.md §4.5 Prepare).
func (e *CatchAtAgeEvaluator[T]) Prepare(pop *Population[T]) {
	e.store.ResetAll(pop.Identity)
	for _, f := range pop.Fleets {
		e.store.ResetAll(f.Identity)
	}

	// A VonBertalanffy growth submodule caches weight-at-age per age between
	// calls; growth parameters are ordinarily set once at construction, but
	// Prepare is the one lifecycle point that
	// precedes every Evaluate, so it is where the cache gets its chance to
	// rebuild if a caller did mutate the submodule's fields in place.
	if cached, ok := pop.Growth.(interface{ InvalidateCache() }); ok {
		cached.InvalidateCache()
	}

	if pop.ProportionFemale.Len() == 0 {
		half := NewParameter(0, e.zero.Const(0.5))
		vals := make([]Parameter[T], pop.Ages)
		for i := range vals {
			vals[i] = half
		}
		pop.ProportionFemale = TypedVectorOf[Parameter[T]](0, vals)
	}

	Y, A := pop.Years, pop.Ages
	M := e.store.Get(pop.Identity, "M")
	for i := 0; i < Y*A; i++ {
		M.Set(i, pop.LogM.At(i).FinalValue.Exp())
	}
	fMultiplier := e.store.Get(pop.Identity, "f_multiplier")
	for y := 0; y < Y; y++ {
		fMultiplier.Set(y, pop.LogFMultiplier.At(y).FinalValue.Exp())
	}

	for _, f := range pop.Fleets {
		q := e.store.Get(f.Identity, "q")
		for i := 0; i < f.LogQ.Len(); i++ {
			q.Set(i, f.LogQ.At(i).FinalValue.Exp())
		}
		Fmort := e.store.Get(f.Identity, "Fmort")
		for y := 0; y < Y; y++ {
			Fmort.Set(y, f.LogFmort.At(y).FinalValue.Exp())
		}
	}
}

// fleetWork bundles the per-fleet store vectors the traversal writes to, so
// they are fetched from the map-backed store once per Evaluate rather than
// once per (year, age) cell.
type fleetWork[T Scalar[T]] struct {
	fleet *Fleet[T]

	fmort, q TypedVector[T]

	landNAA, landWAA, landN, landW TypedVector[T]
	idxNAA, idxWAA, idxN, idxW     TypedVector[T]
}

// Evaluate runs the full year x age traversal for pop, described in
// spec.md §4.5.
func (e *CatchAtAgeEvaluator[T]) Evaluate(pop *Population[T]) error {
	Y, A := pop.Years, pop.Ages

	naa := e.store.Get(pop.Identity, "numbers_at_age")
	unaa := e.store.Get(pop.Identity, "unfished_numbers_at_age")
	mF := e.store.Get(pop.Identity, "mortality_F")
	mM := e.store.Get(pop.Identity, "mortality_M")
	mZ := e.store.Get(pop.Identity, "mortality_Z")
	propMat := e.store.Get(pop.Identity, "proportion_mature_at_age")
	sumSel := e.store.Get(pop.Identity, "sum_selectivity")
	biomass := e.store.Get(pop.Identity, "biomass")
	unfishedBiomass := e.store.Get(pop.Identity, "unfished_biomass")
	ssb := e.store.Get(pop.Identity, "spawning_biomass")
	unfishedSSB := e.store.Get(pop.Identity, "unfished_spawning_biomass")
	ssbRatio := e.store.Get(pop.Identity, "spawning_biomass_ratio")
	expRecruit := e.store.Get(pop.Identity, "expected_recruitment")
	totalLandN := e.store.Get(pop.Identity, "total_landings_numbers")
	totalLandW := e.store.Get(pop.Identity, "total_landings_weight")
	Mnat := e.store.Get(pop.Identity, "M")
	fMult := e.store.Get(pop.Identity, "f_multiplier")

	var femaleNAA, maleNAA TypedVector[T]
	sexSplit := false
	if _, ok := e.store.Dims(pop.Identity, "numbers_at_age_female"); ok {
		sexSplit = true
		femaleNAA = e.store.Get(pop.Identity, "numbers_at_age_female")
		maleNAA = e.store.Get(pop.Identity, "numbers_at_age_male")
	}

	work := make([]fleetWork[T], len(pop.Fleets))
	for k, f := range pop.Fleets {
		work[k] = fleetWork[T]{
			fleet:   f,
			fmort:   e.store.Get(f.Identity, "Fmort"),
			q:       e.store.Get(f.Identity, "q"),
			landNAA: e.store.Get(f.Identity, "landings_numbers_at_age"),
			landWAA: e.store.Get(f.Identity, "landings_weight_at_age"),
			landN:   e.store.Get(f.Identity, "landings_numbers"),
			landW:   e.store.Get(f.Identity, "landings_weight"),
			idxNAA:  e.store.Get(f.Identity, "index_numbers_at_age"),
			idxWAA:  e.store.Get(f.Identity, "index_weight_at_age"),
			idxN:    e.store.Get(f.Identity, "index_numbers"),
			idxW:    e.store.Get(f.Identity, "index_weight"),
		}
	}

	one := e.zero.Const(1)

	for y := 0; y <= Y; y++ {
		for a := 0; a < A; a++ {
			i := pop.naaIndex(y, a)
			age := pop.AgeAxis[a]
			ageT := e.zero.Const(age)

			if y < Y {
				for _, w := range work {
					s := w.fleet.Selectivity.Selectivity(ageT)
					contribution := w.fmort.At(y).Mul(fMult.At(y)).Mul(s)
					mF.Set(i, mF.At(i).Add(contribution))
					sumSel.Set(i, sumSel.At(i).Add(s))
				}
				mM.Set(i, Mnat.At(i))
				mZ.Set(i, Mnat.At(i).Add(mF.At(i)))
			}

			propMat.Set(i, pop.Maturity.ProportionMatureAtYear(ageT, y))

			switch {
			case y == 0:
				naa.Set(i, pop.LogInitNAA.At(a).FinalValue.Exp())
				if a == 0 {
					expRecruit.Set(0, naa.At(i))
					unaa.Set(i, pop.Recruitment.R0())
				} else {
					unaa.Set(i, unaa.At(i-1).Mul(Mnat.At(i-1).Neg().Exp()))
				}
			default:
				if a == 0 {
					e.evaluateRecruitment(pop, y, naa, unaa, ssb, expRecruit, Mnat, i)
				} else {
					j := (y-1)*A + (a - 1)
					naa.Set(i, naa.At(j).Mul(mZ.At(j).Neg().Exp()))
					unaa.Set(i, unaa.At(j).Mul(Mnat.At(j).Neg().Exp()))
					if a == A-1 {
						jPlus := j + 1
						naa.Set(i, naa.At(i).Add(naa.At(jPlus).Mul(mZ.At(jPlus).Neg().Exp())))
						unaa.Set(i, unaa.At(i).Add(unaa.At(jPlus).Mul(Mnat.At(jPlus).Neg().Exp())))
					}
				}
			}

			w := pop.Growth.WeightAtAge(age)
			biomass.Set(y, biomass.At(y).Add(naa.At(i).Mul(w)))
			unfishedBiomass.Set(y, unfishedBiomass.At(y).Add(unaa.At(i).Mul(w)))
			pf := pop.ProportionFemale.ForceScalar(a).FinalValue
			ssb.Set(y, ssb.At(y).Add(pf.Mul(naa.At(i)).Mul(propMat.At(i)).Mul(w)))
			unfishedSSB.Set(y, unfishedSSB.At(y).Add(pf.Mul(unaa.At(i)).Mul(propMat.At(i)).Mul(w)))
			if sexSplit {
				femaleNAA.Set(i, naa.At(i).Mul(pf))
				maleNAA.Set(i, naa.At(i).Mul(one.Sub(pf)))
			}

			if y < Y {
				zVal := mZ.At(i)
				for k := range work {
					e.evaluateFleetAtAge(&work[k], ageT, y, i, zVal, fMult.At(y), naa.At(i), w, totalLandN, totalLandW, one)
				}
			}
		}
		ssbRatio.Set(y, ssb.At(y).Div(unfishedSSB.At(0)))
	}

	for k := range work {
		e.aggregateAgeComp(pop, &work[k])
		e.aggregateLengthComp(pop, &work[k])
	}
	e.finalReductions(pop, work)
	return nil
}

// evaluateRecruitment implements spec.md §4.5.1 for year y >= 1, age 0.
func (e *CatchAtAgeEvaluator[T]) evaluateRecruitment(pop *Population[T], y int, naa, unaa, ssb, expRecruit, Mnat TypedVector[T], i int) {
	phi0 := e.calculateSBPR0(pop, y-1, Mnat)
	meanR := pop.Recruitment.EvaluateMean(ssb.At(y-1), phi0)

	if y == pop.Years {
		naa.Set(i, meanR)
	} else {
		pop.Recruitment.RecordLogExpectedRecruitment(y-1, meanR.Log())
		naa.Set(i, pop.Recruitment.EvaluateProcess(y-1).Exp())
	}
	unaa.Set(i, pop.Recruitment.R0())
	expRecruit.Set(y, naa.At(i))
}

// calculateSBPR0 computes the equilibrium unfished spawning biomass per
// recruit using the M row at year yearForM and the configured maturity and
// growth submodules, with the geometric-series plus-group closure from
// spec.md §4.5.1: N_{A-1} = N_{A-2} exp(-M_{A-2}) / (1 - exp(-M_{A-1})).
func (e *CatchAtAgeEvaluator[T]) calculateSBPR0(pop *Population[T], yearForM int, Mnat TypedVector[T]) T {
	A := pop.Ages
	N := make([]T, A)
	N[0] = e.zero.Const(1)
	for a := 1; a < A; a++ {
		prev := N[a-1].Mul(Mnat.At(yearForM*A + a - 1).Neg().Exp())
		if a == A-1 {
			mLast := Mnat.At(yearForM*A + a)
			N[a] = prev.Div(e.zero.Const(1).Sub(mLast.Neg().Exp()))
		} else {
			N[a] = prev
		}
	}

	phi0 := e.zero.Const(0)
	for a := 0; a < A; a++ {
		age := pop.AgeAxis[a]
		ageT := e.zero.Const(age)
		w := pop.Growth.WeightAtAge(age)
		pf := pop.ProportionFemale.ForceScalar(a).FinalValue
		pm := pop.Maturity.ProportionMatureAtYear(ageT, yearForM)
		phi0 = phi0.Add(pf.Mul(N[a]).Mul(pm).Mul(w))
	}
	return phi0
}

// evaluateFleetAtAge implements spec.md §4.5.2 for one fleet at cell
// (year, age).
func (e *CatchAtAgeEvaluator[T]) evaluateFleetAtAge(w *fleetWork[T], ageT T, y, i int, z, fMultiplier, n, weight T, totalLandN, totalLandW TypedVector[T], one T) {
	s := w.fleet.Selectivity.Selectivity(ageT)

	rate := w.fmort.At(y).Mul(fMultiplier).Mul(s).Div(z)
	caught := rate.Mul(n).Mul(one.Sub(z.Neg().Exp()))
	w.landNAA.Set(i, w.landNAA.At(i).Add(caught))
	landWeight := w.landNAA.At(i).Mul(weight)
	w.landWAA.Set(i, landWeight)

	w.landN.Set(y, w.landN.At(y).Add(caught))
	w.landW.Set(y, w.landW.At(y).Add(landWeight))
	totalLandN.Set(y, totalLandN.At(y).Add(caught))
	totalLandW.Set(y, totalLandW.At(y).Add(landWeight))

	idxContribution := w.q.ForceScalar(y).Mul(s).Mul(n)
	w.idxNAA.Set(i, w.idxNAA.At(i).Add(idxContribution))
	idxWeight := w.idxNAA.At(i).Mul(weight)
	w.idxWAA.Set(i, idxWeight)
	w.idxN.Set(y, w.idxN.At(y).Add(idxContribution))
	w.idxW.Set(y, w.idxW.At(y).Add(idxWeight))
}

// aggregateAgeComp implements the age-comp half of spec.md §4.5.3.
func (e *CatchAtAgeEvaluator[T]) aggregateAgeComp(pop *Population[T], w *fleetWork[T]) {
	Y, A := pop.Years, pop.Ages
	expected := e.store.Get(w.fleet.Identity, "agecomp_expected")
	proportion := e.store.Get(w.fleet.Identity, "agecomp_proportion")

	source := w.idxNAA
	if w.fleet.HasLandings() {
		source = w.landNAA
	}

	for y := 0; y < Y; y++ {
		sum := e.zero.Const(0)
		for a := 0; a < A; a++ {
			idx := y*A + a
			v := source.At(idx)
			expected.Set(idx, v)
			sum = sum.Add(v)
		}

		sumObs := e.zero.Const(0)
		hasObs := false
		if w.fleet.ObservedAgeComp != nil {
			for a := 0; a < A; a++ {
				obs := w.fleet.ObservedAgeComp.At(y, a)
				if !IsNA(obs) {
					sumObs = sumObs.Add(e.zero.Const(obs))
					hasObs = true
				}
			}
		}

		for a := 0; a < A; a++ {
			idx := y*A + a
			prop := expected.At(idx).Div(sum)
			proportion.Set(idx, prop)
			// With no observed age comp at all, expected keeps the raw
			// source numbers; an observed row that is entirely NA gets the
			// proportion.
			if hasObs {
				expected.Set(idx, prop.Mul(sumObs))
			} else if w.fleet.ObservedAgeComp != nil {
				expected.Set(idx, prop)
			}
		}
	}
}

// aggregateLengthComp implements the length-comp half of spec.md §4.5.3.
// The age-to-length conversion matrix holds plain float64 weights (it is a
// fixed empirical key, never an estimated parameter), so the contraction
// against T-valued age vectors is done with T.Const per weight rather than
// a literal gonum matrix-vector multiply, which would require T == float64.
func (e *CatchAtAgeEvaluator[T]) aggregateLengthComp(pop *Population[T], w *fleetWork[T]) {
	if w.fleet.LengthBins == 0 {
		return
	}
	Y, A, L := pop.Years, pop.Ages, w.fleet.LengthBins

	ageCompExpected := e.store.Get(w.fleet.Identity, "agecomp_expected")
	lenExpected := e.store.Get(w.fleet.Identity, "lengthcomp_expected")
	lenProportion := e.store.Get(w.fleet.Identity, "lengthcomp_proportion")
	landAtLength := e.store.Get(w.fleet.Identity, "landings_numbers_at_length")
	idxAtLength := e.store.Get(w.fleet.Identity, "index_numbers_at_length")

	project := func(ageVec, out TypedVector[T]) {
		for y := 0; y < Y; y++ {
			for l := 0; l < L; l++ {
				acc := e.zero.Const(0)
				for a := 0; a < A; a++ {
					conv := w.fleet.ConversionMatrix.At(a, l)
					acc = acc.Add(ageVec.At(y*A + a).Mul(e.zero.Const(conv)))
				}
				out.Set(y*L+l, acc)
			}
		}
	}
	project(ageCompExpected, lenExpected)
	project(w.landNAA, landAtLength)
	project(w.idxNAA, idxAtLength)

	for y := 0; y < Y; y++ {
		sum := e.zero.Const(0)
		for l := 0; l < L; l++ {
			sum = sum.Add(lenExpected.At(y*L + l))
		}
		sumObs := e.zero.Const(0)
		hasObs := false
		if w.fleet.ObservedLenComp != nil {
			for l := 0; l < L; l++ {
				obs := w.fleet.ObservedLenComp.At(y, l)
				if !IsNA(obs) {
					sumObs = sumObs.Add(e.zero.Const(obs))
					hasObs = true
				}
			}
		}
		for l := 0; l < L; l++ {
			idx := y*L + l
			prop := lenExpected.At(idx).Div(sum)
			lenProportion.Set(idx, prop)
			if hasObs {
				lenExpected.Set(idx, prop.Mul(sumObs))
			} else {
				lenExpected.Set(idx, prop)
			}
		}
	}
}

// finalReductions implements spec.md §4.5.4.
func (e *CatchAtAgeEvaluator[T]) finalReductions(pop *Population[T], work []fleetWork[T]) {
	Y := pop.Years
	for k := range work {
		w := &work[k]
		expected := e.store.Get(w.fleet.Identity, "landings_expected")
		logExpected := e.store.Get(w.fleet.Identity, "log_landings_expected")
		idxExpected := e.store.Get(w.fleet.Identity, "index_expected")
		logIdxExpected := e.store.Get(w.fleet.Identity, "log_index_expected")

		for y := 0; y < Y; y++ {
			landVal := w.landW.At(y)
			if w.fleet.LandingsReportingUnits == Number {
				landVal = w.landN.At(y)
			}
			idxVal := w.idxW.At(y)
			if w.fleet.IndexReportingUnits == Number {
				idxVal = w.idxN.At(y)
			}

			expected.Set(y, landVal)
			logExpected.Set(y, landVal.Log())
			idxExpected.Set(y, idxVal)
			logIdxExpected.Set(y, idxVal.Log())
		}
	}
}

// Finalize may be called at most once per evaluator after Evaluate. A
// second call emits a warning through the host diagnostic channel and is a
// no-op (spec.md §7).
func (e *CatchAtAgeEvaluator[T]) Finalize() {
	if e.finalized {
		diag.Warnf("catch-at-age evaluator: Finalize called more than once")
		return
	}
	e.finalized = true
}
