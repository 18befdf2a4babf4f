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

import "gonum.org/v1/gonum/floats"

// ConsistentTotals checks spec.md §8 property 1 against already-flattened
// report data: for every year, the per-year total equals the sum of the
// per-(year,age) values for that year, to within tol.
func ConsistentTotals(totalPerYear, perAge []float64, years, ages int, tol float64) bool {
	if len(totalPerYear) < years || len(perAge) < years*ages {
		return false
	}
	row := make([]float64, ages)
	for y := 0; y < years; y++ {
		copy(row, perAge[y*ages:(y+1)*ages])
		sum := floats.Sum(row)
		if diff := sum - totalPerYear[y]; diff > tol || diff < -tol {
			return false
		}
	}
	return true
}

// CompositionNormalized checks spec.md §8 property 2: every row of a
// proportion matrix whose expected-value row sums to more than zero sums
// to 1 within tol.
func CompositionNormalized(proportion, expected []float64, years, bins int, tol float64) bool {
	if len(proportion) < years*bins || len(expected) < years*bins {
		return false
	}
	row := make([]float64, bins)
	for y := 0; y < years; y++ {
		copy(row, expected[y*bins:(y+1)*bins])
		if floats.Sum(row) <= 0 {
			continue
		}
		copy(row, proportion[y*bins:(y+1)*bins])
		if diff := floats.Sum(row) - 1; diff > tol || diff < -tol {
			return false
		}
	}
	return true
}
