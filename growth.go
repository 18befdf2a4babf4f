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

// Growth is the shape every growth submodule variant implements: a single
// weight-at-age lookup. The evaluator's hot loop calls through this
// interface, so the traversal is monomorphic per build regardless of which
// concrete variant a population was constructed with.
type Growth[T any] interface {
	WeightAtAge(age float64) T
}

// EmpiricalWeightAtAge is the growth variant backed by a direct age->weight
// lookup table, with no functional form.
type EmpiricalWeightAtAge[T Scalar[T]] struct {
	ages    []float64
	weights []T
	zero    T

	// missingAges records ages looked up that were absent from the table,
	// diagnostic only -- exposed through MissingAges; Report does not read it.
	missingAges map[float64]bool
}

// NewEmpiricalWeightAtAge builds the lookup from two equal-length
// sequences. It returns an error (a construction error per §7) if the
// lengths differ.
func NewEmpiricalWeightAtAge[T Scalar[T]](ages []float64, weights []T, zero T) (*EmpiricalWeightAtAge[T], error) {
	if len(ages) != len(weights) {
		return nil, fmt.Errorf("stockassess: empirical-weight-at-age: %d ages but %d weights", len(ages), len(weights))
	}
	return &EmpiricalWeightAtAge[T]{ages: ages, weights: weights, zero: zero, missingAges: map[float64]bool{}}, nil
}

// WeightAtAge returns the tabulated weight for age, or zero if age is not a
// key in the table (per spec.md §4.2).
func (e *EmpiricalWeightAtAge[T]) WeightAtAge(age float64) T {
	for i, a := range e.ages {
		if a == age {
			return e.weights[i]
		}
	}
	e.missingAges[age] = true
	return e.zero
}

// MissingAges reports every age that was looked up but absent from the
// table, for diagnostics.
func (e *EmpiricalWeightAtAge[T]) MissingAges() []float64 {
	out := make([]float64, 0, len(e.missingAges))
	for a := range e.missingAges {
		out = append(out, a)
	}
	return out
}

// VonBertalanffy is the growth variant parameterized by length at two
// reference ages, with weight derived from length through an allometric
// length-weight relationship.
type VonBertalanffy[T Scalar[T]] struct {
	L1, L2   T // length at reference ages A1, A2
	K        T // growth coefficient
	A1, A2   T // reference ages
	AWL, BWL T // length-weight allometric coefficients: W = AWL * L^BWL

	// cache holds per-age (L, W) pairs computed on the current parameter
	// set -- growth has no year or sex dependence in this model, so age is
	// the only cache key. CatchAtAgeEvaluator.Prepare calls InvalidateCache
	// before every traversal so the cache rebuilds if L1/L2/K/etc. changed.
	cache map[float64]vbCacheEntry[T]
	dirty bool
}

type vbCacheEntry[T any] struct {
	length T
	weight T
}

// NewVonBertalanffy constructs a VonBertalanffy growth submodule; the cache
// starts dirty so the first lookup always computes.
func NewVonBertalanffy[T Scalar[T]](l1, l2, k, a1, a2, awl, bwl T) *VonBertalanffy[T] {
	return &VonBertalanffy[T]{L1: l1, L2: l2, K: k, A1: a1, A2: a2, AWL: awl, BWL: bwl, cache: map[float64]vbCacheEntry[T]{}, dirty: true}
}

// InvalidateCache marks the per-age (length, weight) cache stale; Prepare
// calls this before every traversal, and the adapter
// recomputes lazily on the next lookup (grounded on the product-adapter
// caching described for growth_model_adapter in the original source).
func (v *VonBertalanffy[T]) InvalidateCache() {
	v.dirty = true
}

func (v *VonBertalanffy[T]) lengthAt(age T) T {
	denom := v.A2.Sub(v.A1)
	if denom.Value() == 0 {
		// Degenerate denominator (A1 == A2): return L1 (spec.md §4.2, §7).
		return v.L1
	}
	num := age.Const(1).Sub(v.K.Neg().Mul(age.Sub(v.A1)).Exp())
	den := age.Const(1).Sub(v.K.Neg().Mul(denom).Exp())
	return v.L1.Add(v.L2.Sub(v.L1).Mul(num).Div(den))
}

// WeightAtAge returns AWL * L(age)^BWL, caching per age key until
// InvalidateCache is called.
func (v *VonBertalanffy[T]) WeightAtAge(age float64) T {
	if v.dirty {
		v.cache = map[float64]vbCacheEntry[T]{}
		v.dirty = false
	}
	if e, ok := v.cache[age]; ok {
		return e.weight
	}
	ageT := v.L1.Const(age)
	length := v.lengthAt(ageT)
	weight := v.AWL.Mul(length.Pow(v.BWL))
	v.cache[age] = vbCacheEntry[T]{length: length, weight: weight}
	return weight
}

// LengthAtAge exposes the intermediate length-at-age value, e.g. for
// computing conversion matrices or reports.
func (v *VonBertalanffy[T]) LengthAtAge(age float64) T {
	v.WeightAtAge(age) // ensures cache populated
	return v.cache[age].length
}
