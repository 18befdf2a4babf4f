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

// Package config holds the engine's own numerical tunables: the constants
// behind the smooth-max clamp, the smooth-sign steepness, and the
// Abramowitz-Stegun error-function coefficients. These are engineering
// constants of the evaluator itself, not the biological/fleet parameters a
// caller supplies through build() -- configuration parsing of the latter is
// out of scope (it belongs to the host-language binding layer).
package config

import "github.com/BurntSushi/toml"

// ErfConstants are the Abramowitz & Stegun 7.1.26 rational-polynomial
// coefficients for the error-function approximation.
type ErfConstants struct {
	A1 float64 `toml:"a1"`
	A2 float64 `toml:"a2"`
	A3 float64 `toml:"a3"`
	A4 float64 `toml:"a4"`
	A5 float64 `toml:"a5"`
	P  float64 `toml:"p"`
}

// Tunables bundles every numeric constant the core evaluator closes over.
type Tunables struct {
	// SmoothSignSteepness is k in tanh(k*x), the differentiable stand-in
	// for sign(x).
	SmoothSignSteepness float64 `toml:"smooth_sign_steepness"`

	// SmoothMaxDelta is the smoothing term added under the square root in
	// SmoothMax; smaller values track max(a,b) more tightly but make the
	// gradient steeper near a == b.
	SmoothMaxDelta float64 `toml:"smooth_max_delta"`

	// DepletionEpsilon is epsilon in the Pella-Tomlinson depletion clamp
	// smooth_max(d_t, epsilon).
	DepletionEpsilon float64 `toml:"depletion_epsilon"`

	ErfCoefficients ErfConstants `toml:"erf"`
}

// Default holds the engine's built-in tunables. Production callers never
// need to override these; Load exists so a test or a research build can
// tighten or loosen the smoothing constants without recompiling.
var Default = Tunables{
	SmoothSignSteepness: 1000,
	SmoothMaxDelta:      1e-8,
	DepletionEpsilon:    1e-3,
	ErfCoefficients: ErfConstants{
		A1: 0.254829592,
		A2: -0.284496736,
		A3: 1.421413741,
		A4: -1.453152027,
		A5: 1.061405429,
		P:  0.3275911,
	},
}

// Load reads tunables from a TOML file, starting from Default so a partial
// file only overrides the fields it sets.
func Load(path string) (Tunables, error) {
	t := Default
	_, err := toml.DecodeFile(path, &t)
	return t, err
}
