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

	"gonum.org/v1/gonum/mat"
)

// NASentinel marks a missing cell in an observed series or composition
// matrix.
const NASentinel = -999.0

// IsNA reports whether v is the missing-data sentinel.
func IsNA(v float64) bool { return v == NASentinel }

// ObservedSeries is a length-Y observed landings or index series, with
// NASentinel marking years with no observation.
type ObservedSeries struct {
	Values []float64
}

// ObservedMatrix is a Y-by-bins observed composition matrix (age-comp or
// length-comp), row-major by (year, bin), with NASentinel marking missing
// cells.
type ObservedMatrix struct {
	Years int
	Bins  int
	Cells []float64 // length Years*Bins, index y*Bins+b
}

// At returns the observed value for (year, bin).
func (m ObservedMatrix) At(y, b int) float64 { return m.Cells[y*m.Bins+b] }

// ReportingUnits selects whether a fleet's landings/index expectations are
// reported in numbers or in weight (spec.md §4.5.4).
type ReportingUnits int

const (
	Weight ReportingUnits = iota
	Number
)

// Fleet owns the per-fleet state: its selectivity submodule, its log-F and
// log-catchability series, the age-to-length conversion matrix, and
// references to whichever observed data streams it has.
type Fleet[T Scalar[T]] struct {
	Identity uint32

	Years       int // Y
	Ages        int // A
	LengthBins  int // L, possibly 0

	Selectivity Selectivity[T]

	// LogFmort is log fishing mortality, length Y.
	LogFmort TypedVector[Parameter[T]]

	// LogQ is log catchability, length 1 (constant) or Y (year-varying);
	// ForceScalar broadcasts a length-1 vector to every year.
	LogQ TypedVector[Parameter[T]]

	// ConversionMatrix converts age-based quantities to length-based ones:
	// conv[a,l] is the conditional probability of length bin l given age a
	// (the age-length key, ALK). Represented as a dense gonum matrix since
	// length-comp aggregation (spec.md §4.5.3) is a genuine matrix-vector
	// product, not a family of independent per-age reductions.
	ConversionMatrix *mat.Dense // Ages x LengthBins, nil when LengthBins == 0

	LandingsReportingUnits ReportingUnits
	IndexReportingUnits    ReportingUnits

	// ObservedLandings/ObservedIndex are nil when the fleet has no such
	// data stream; a fleet with ObservedLandings == nil contributes to
	// composition aggregation from its index-at-age instead (spec.md §3,
	// §4.5.3).
	ObservedLandings *ObservedSeries
	ObservedIndex    *ObservedSeries
	ObservedAgeComp  *ObservedMatrix
	ObservedLenComp  *ObservedMatrix
}

// HasLandings reports whether this fleet has an observed landings stream.
func (f *Fleet[T]) HasLandings() bool { return f.ObservedLandings != nil }

// HasIndex reports whether this fleet has an observed index stream.
func (f *Fleet[T]) HasIndex() bool { return f.ObservedIndex != nil }

// HasAgeComp reports whether this fleet has observed age-composition data.
func (f *Fleet[T]) HasAgeComp() bool { return f.ObservedAgeComp != nil }

// HasLengthComp reports whether this fleet has observed length-composition
// data; always false when LengthBins == 0.
func (f *Fleet[T]) HasLengthComp() bool { return f.LengthBins > 0 && f.ObservedLenComp != nil }

// Validate checks the construction invariants from spec.md §7: mismatched
// dimensions, a missing selectivity reference, and length-composition bins
// present with no conversion matrix.
func (f *Fleet[T]) Validate() error {
	if f.Selectivity == nil {
		return fmt.Errorf("stockassess: fleet %d: missing selectivity submodule", f.Identity)
	}
	if n := f.LogFmort.Len(); n != f.Years {
		return fmt.Errorf("stockassess: fleet %d: log_Fmort has %d entries, want %d", f.Identity, n, f.Years)
	}
	if n := f.LogQ.Len(); n != 1 && n != f.Years {
		return fmt.Errorf("stockassess: fleet %d: log_q has %d entries, want 1 or %d", f.Identity, n, f.Years)
	}
	if f.LengthBins > 0 && f.ConversionMatrix == nil {
		return fmt.Errorf("stockassess: fleet %d: length-composition bins present (L=%d) with no conversion matrix", f.Identity, f.LengthBins)
	}
	if f.ConversionMatrix != nil {
		r, c := f.ConversionMatrix.Dims()
		if r != f.Ages || c != f.LengthBins {
			return fmt.Errorf("stockassess: fleet %d: conversion matrix is %dx%d, want %dx%d", f.Identity, r, c, f.Ages, f.LengthBins)
		}
	}
	return nil
}
