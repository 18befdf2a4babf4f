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

// ReportKey identifies one reported vector: the owning entity and the
// derived-quantity name within it.
type ReportKey struct {
	EntityID uint32
	Name     string
}

// ReportEntry is one flattened derived-quantity vector, with its values
// converted to plain float64 (discarding any derivative information --
// differentiation is only meaningful upstream of Report) and its
// dimension metadata carried alongside per spec.md §4.7.
type ReportEntry struct {
	Values   []float64
	Dims     []int
	DimNames []string
}

// ReportBundle is the flat, externally-consumable mapping produced by
// report(handle) in spec.md §6: `(entity_id, name) -> {values, dims,
// dim_names}`.
type ReportBundle map[ReportKey]ReportEntry

// reportStore flattens every quantity registered for every entity in store
// into a ReportBundle.
func reportStore[T Scalar[T]](store *DQStore[T]) ReportBundle {
	bundle := make(ReportBundle)
	for _, id := range store.Entities() {
		for name, vec := range store.GetAll(id) {
			dims, _ := store.Dims(id, name)
			values := make([]float64, vec.Len())
			for i := 0; i < vec.Len(); i++ {
				values[i] = vec.At(i).Value()
			}
			bundle[ReportKey{EntityID: id, Name: name}] = ReportEntry{
				Values:   values,
				Dims:     dims.Lengths,
				DimNames: dims.DimNames,
			}
		}
	}
	return bundle
}
