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

// IdentityAllocator hands out stable, process-wide-unique identities to
// long-lived objects (parameter vectors, populations, fleets, submodule
// instances). The source this engine is modeled on kept such an allocator
// behind a package-level singleton registry; here it is an explicit object
// owned by the Model facade (Model.Identities), so two models built in the
// same process never share or race over identities.
type IdentityAllocator struct {
	next uint32
}

// NewIdentityAllocator returns an allocator whose first identity is 1; 0 is
// reserved to mean "no identity assigned".
func NewIdentityAllocator() *IdentityAllocator {
	return &IdentityAllocator{next: 1}
}

// Next returns a fresh identity, never returned before by this allocator.
func (a *IdentityAllocator) Next() uint32 {
	id := a.next
	a.next++
	return id
}
