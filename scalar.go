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
	"math"

	"github.com/fisheriesmodel/stockassess/internal/config"
)

// Scalar is the numeric type every algebraic expression in the core is
// written against. It is implemented at least once by Float64 (plain
// double precision) and once by an AD-tape type (package adscalar), so
// that the same population-dynamics code can run either to produce a
// number or to produce a number plus its derivatives with respect to
// estimated parameters.
//
// T is self-referencing (T's methods both take and return T) so that
// generic functions over Scalar never need to name the concrete type.
type Scalar[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) T
	Neg() T
	Exp() T
	Log() T
	Pow(T) T
	Tanh() T
	Sqrt() T

	// Const returns a new value of the same concrete type holding the
	// given constant, detached from any derivative tape.
	Const(float64) T

	// Value returns the natural-scale float64 value, discarding any
	// derivative information.
	Value() float64
}

// Float64 is the plain double-precision Scalar implementation. It is the
// type used for reporting and for any evaluation that does not require
// derivatives.
type Float64 float64

func (f Float64) Add(o Float64) Float64 { return f + o }
func (f Float64) Sub(o Float64) Float64 { return f - o }
func (f Float64) Mul(o Float64) Float64 { return f * o }
func (f Float64) Div(o Float64) Float64 { return f / o }
func (f Float64) Neg() Float64          { return -f }
func (f Float64) Exp() Float64          { return Float64(math.Exp(float64(f))) }
func (f Float64) Log() Float64          { return Float64(math.Log(float64(f))) }
func (f Float64) Pow(o Float64) Float64 { return Float64(math.Pow(float64(f), float64(o))) }
func (f Float64) Tanh() Float64         { return Float64(math.Tanh(float64(f))) }
func (f Float64) Sqrt() Float64         { return Float64(math.Sqrt(float64(f))) }
func (f Float64) Const(v float64) Float64 {
	return Float64(v)
}
func (f Float64) Value() float64 { return float64(f) }

// Logistic computes 1 / (1 + exp(-slope * (x - inflection))), the shared
// curve underlying logistic maturity and logistic selectivity.
func Logistic[T Scalar[T]](inflection, slope, x T) T {
	z := slope.Mul(x.Sub(inflection)).Neg()
	return x.Const(1).Div(x.Const(1).Add(z.Exp()))
}

// SmoothSign approximates the sign of x with tanh(k*x), which is
// differentiable everywhere, unlike math.Signbit or a branch on x.
func SmoothSign[T Scalar[T]](x T) T {
	k := x.Const(config.Default.SmoothSignSteepness)
	return x.Mul(k).Tanh()
}

// SmoothMax is a differentiable lower-bounded maximum: it returns a value
// that stays strictly above b for every finite a, approaching max(a, b) as
// the two diverge. It is used to keep quantities like depletion away from
// zero without a non-differentiable clamp.
//
//	smooth_max(a, b) = (a + b + sqrt((a - b)^2 + delta)) / 2
//
// delta is a small positive smoothing constant (internal/config); as
// delta -> 0 this recovers the ordinary max(a, b) exactly.
func SmoothMax[T Scalar[T]](a, b T) T {
	delta := a.Const(config.Default.SmoothMaxDelta)
	diff := a.Sub(b)
	root := diff.Mul(diff).Add(delta).Sqrt()
	return a.Add(b).Add(root).Div(a.Const(2))
}

// erfCoefficients are the Abramowitz & Stegun 7.1.26 rational-polynomial
// approximation constants for the error function.
var erfCoefficients = config.Default.ErfCoefficients

// Erf approximates the error function via the Abramowitz-Stegun rational
// polynomial approximation (7.1.26), using SmoothSign in place of the
// discontinuous sign function so the whole expression stays differentiable.
func Erf[T Scalar[T]](x T) T {
	c := erfCoefficients
	sign := SmoothSign(x)
	ax := x.Mul(sign)
	p := x.Const(c.P)
	one := x.Const(1)
	t := one.Div(one.Add(p.Mul(ax)))

	// Horner evaluation of a1*t + a2*t^2 + a3*t^3 + a4*t^4 + a5*t^5.
	poly := x.Const(c.A5)
	poly = poly.Mul(t).Add(x.Const(c.A4))
	poly = poly.Mul(t).Add(x.Const(c.A3))
	poly = poly.Mul(t).Add(x.Const(c.A2))
	poly = poly.Mul(t).Add(x.Const(c.A1))
	poly = poly.Mul(t)

	y := one.Sub(poly.Mul(ax.Mul(ax).Neg().Exp()))
	return sign.Mul(y)
}

// NormalCDF evaluates the cumulative distribution function of a Normal(mu,
// sigma) distribution at x using the Erf approximation above.
func NormalCDF[T Scalar[T]](x, mu, sigma T) T {
	sqrt2 := x.Const(math.Sqrt2)
	z := x.Sub(mu).Div(sigma.Mul(sqrt2))
	return x.Const(0.5).Mul(x.Const(1).Add(Erf(z)))
}
