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

import "github.com/fisheriesmodel/stockassess/internal/config"

// Depletion is the shape every depletion submodule variant implements, used
// only by the surplus-production (biomass-dynamics) evaluator.
type Depletion[T Scalar[T]] interface {
	EvaluateMean(depletionPrev, catchPrev T) T
}

// PellaTomlinson is the sole depletion variant required by spec.md.
type PellaTomlinson[T Scalar[T]] struct {
	LogR Parameter[T]
	LogK Parameter[T]
	LogM Parameter[T]
}

// NewPellaTomlinson builds a PellaTomlinson depletion submodule.
func NewPellaTomlinson[T Scalar[T]](logR, logK, logM Parameter[T]) *PellaTomlinson[T] {
	return &PellaTomlinson[T]{LogR: logR, LogK: logK, LogM: logM}
}

// EvaluateMean computes one Pella-Tomlinson production step:
//
//	d_t = d_{t-1} + r/(m-1) * d_{t-1} * (1 - d_{t-1}^(m-1)) - C_{t-1}/K
//
// The result is *not* clamped here; the evaluator applies
// SmoothMax(d_t, epsilon) per spec.md §4.2/§4.6 because the clamp is a
// property of how depletion is used (kept away from zero across the whole
// time series), not of the production function itself.
func (p *PellaTomlinson[T]) EvaluateMean(depletionPrev, catchPrev T) T {
	r := p.LogR.FinalValue.Exp()
	k := p.LogK.FinalValue.Exp()
	m := p.LogM.FinalValue.Exp()

	one := depletionPrev.Const(1)
	mMinus1 := m.Sub(one)
	growth := r.Div(mMinus1).Mul(depletionPrev).Mul(one.Sub(depletionPrev.Pow(mMinus1)))
	return depletionPrev.Add(growth).Sub(catchPrev.Div(k))
}

// R, K, and M expose the natural-scale parameters, used by the reference
// points in surplusproduction.go.
func (p *PellaTomlinson[T]) R() T { return p.LogR.FinalValue.Exp() }
func (p *PellaTomlinson[T]) K() T { return p.LogK.FinalValue.Exp() }
func (p *PellaTomlinson[T]) M() T { return p.LogM.FinalValue.Exp() }

// ClampDepletion applies the epsilon smooth-max floor described in §4.2 and
// §4.6.
func ClampDepletion[T Scalar[T]](d T) T {
	eps := d.Const(config.Default.DepletionEpsilon)
	return SmoothMax(d, eps)
}
