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

// Package adscalar is a minimal forward-mode automatic-differentiation
// scalar, sufficient to exercise and test the core's Scalar[T] interface
// end-to-end. The real optimizer-grade AD backend is an external
// collaborator (out of scope, per spec); this type tracks a sparse gradient
// with respect to a set of parameter identities using the ordinary chain
// rule for each elementary operation, which is enough to confirm that the
// population-dynamics code is in fact differentiable rather than merely
// shaped to look like it.
package adscalar

import "math"

// Dual holds a value together with its partial derivatives with respect to
// a set of parameter identities, keyed the same way stockassess.Parameter
// keys its Identity.
type Dual struct {
	Val  float64
	Grad map[uint32]float64
}

// Constant returns a Dual with no dependence on any parameter.
func Constant(v float64) Dual {
	return Dual{Val: v}
}

// Variable returns a Dual representing the named parameter's own value,
// i.e. d(id)/d(id) = 1.
func Variable(id uint32, v float64) Dual {
	return Dual{Val: v, Grad: map[uint32]float64{id: 1}}
}

// combine returns ca*ga + cb*gb, the gradient of a linear combination of two
// tapes, without mutating either input.
func combine(ca float64, ga map[uint32]float64, cb float64, gb map[uint32]float64) map[uint32]float64 {
	if len(ga) == 0 && len(gb) == 0 {
		return nil
	}
	out := make(map[uint32]float64, len(ga)+len(gb))
	for id, g := range ga {
		out[id] = ca * g
	}
	for id, g := range gb {
		out[id] += cb * g
	}
	return out
}

func (d Dual) Add(o Dual) Dual {
	return Dual{Val: d.Val + o.Val, Grad: combine(1, d.Grad, 1, o.Grad)}
}

func (d Dual) Sub(o Dual) Dual {
	return Dual{Val: d.Val - o.Val, Grad: combine(1, d.Grad, -1, o.Grad)}
}

func (d Dual) Mul(o Dual) Dual {
	return Dual{Val: d.Val * o.Val, Grad: combine(o.Val, d.Grad, d.Val, o.Grad)}
}

func (d Dual) Div(o Dual) Dual {
	inv := 1 / o.Val
	return Dual{
		Val:  d.Val * inv,
		Grad: combine(inv, d.Grad, -d.Val*inv*inv, o.Grad),
	}
}

func (d Dual) Neg() Dual {
	return Dual{Val: -d.Val, Grad: combine(-1, d.Grad, 0, nil)}
}

func (d Dual) Exp() Dual {
	v := math.Exp(d.Val)
	return Dual{Val: v, Grad: combine(v, d.Grad, 0, nil)}
}

func (d Dual) Log() Dual {
	return Dual{Val: math.Log(d.Val), Grad: combine(1/d.Val, d.Grad, 0, nil)}
}

// Pow implements the general product/chain rule for a^b, valid for a > 0:
//
//	d(a^b) = b*a^(b-1)*da + a^b*ln(a)*db
//
// The ln(a)*db term matters in the core: the Pella-Tomlinson step raises
// depletion to m-1 and B_msy raises m to -1/(m-1), and both exponents carry
// a gradient whenever m does.
func (d Dual) Pow(o Dual) Dual {
	v := math.Pow(d.Val, o.Val)
	da := o.Val * math.Pow(d.Val, o.Val-1)
	var db float64
	if len(o.Grad) > 0 && d.Val > 0 {
		db = v * math.Log(d.Val)
	}
	return Dual{Val: v, Grad: combine(da, d.Grad, db, o.Grad)}
}

func (d Dual) Tanh() Dual {
	v := math.Tanh(d.Val)
	return Dual{Val: v, Grad: combine(1-v*v, d.Grad, 0, nil)}
}

func (d Dual) Sqrt() Dual {
	v := math.Sqrt(d.Val)
	return Dual{Val: v, Grad: combine(1/(2*v), d.Grad, 0, nil)}
}

// Const returns a new Dual holding a plain constant, detached from the
// current tape (no gradient with respect to any parameter).
func (d Dual) Const(v float64) Dual {
	return Dual{Val: v}
}

// Value returns the natural-scale value, discarding the gradient.
func (d Dual) Value() float64 { return d.Val }

// Partial returns the derivative with respect to the parameter with the
// given identity, or 0 if d does not depend on it.
func (d Dual) Partial(id uint32) float64 {
	return d.Grad[id]
}
