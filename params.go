/*
Copyright © 2026 the Nemesis authors.
This file is part of Nemesis.

Nemesis is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Nemesis is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Nemesis.  If not, see <http://www.gnu.org/licenses/>.
*/

package nemesis

import (
	"fmt"
	"math"
)

// MeshParams holds the global sizes of a mesh file and the definitions of
// its side sets.
type MeshParams struct {
	Title    string
	NumDim   int // number of spatial dimensions
	NumNodes int
	NumElem  int

	// SideSets are stored in the given order. The position of a side set
	// in this list (starting at 1) determines the names of its NetCDF
	// dimensions and variables.
	SideSets []SideSetParams
}

// SideSetParams defines the size of one side set.
type SideSetParams struct {
	ID   int
	Name string

	// NumSides is the number of (element, side) pairs in the set.
	// A set with no sides is a NULL side set: its ID is stored but no
	// list variables are created for it.
	NumSides int

	// NumDistFact is the number of distribution factors stored with
	// the set, typically zero or the total number of nodes on the sides.
	NumDistFact int
}

// Null reports whether p defines a NULL side set.
func (p SideSetParams) Null() bool { return p.NumSides == 0 }

// Check returns an error if p cannot be stored in a file.
func (p *MeshParams) Check() error {
	if p.NumDim < 1 || p.NumDim > 3 {
		return fmt.Errorf("nemesis: number of dimensions must be 1, 2, or 3; got %d", p.NumDim)
	}
	if p.NumNodes < 1 {
		return fmt.Errorf("nemesis: number of nodes must be > 0; got %d", p.NumNodes)
	}
	if p.NumElem < 1 {
		return fmt.Errorf("nemesis: number of elements must be > 0; got %d", p.NumElem)
	}
	ids := make(map[int]struct{}, len(p.SideSets))
	for i, ss := range p.SideSets {
		if ss.ID < math.MinInt32 || ss.ID > math.MaxInt32 {
			return fmt.Errorf("nemesis: side set %d: ID %d does not fit in a 32-bit integer", i+1, ss.ID)
		}
		if _, ok := ids[ss.ID]; ok {
			return fmt.Errorf("nemesis: side set %d: repeated side set ID %d", i+1, ss.ID)
		}
		ids[ss.ID] = struct{}{}
		if ss.NumSides < 0 {
			return fmt.Errorf("nemesis: side set %d: number of sides must be >= 0; got %d", ss.ID, ss.NumSides)
		}
		if ss.NumDistFact < 0 {
			return fmt.Errorf("nemesis: side set %d: number of distribution factors must be >= 0; got %d", ss.ID, ss.NumDistFact)
		}
		if ss.Null() && ss.NumDistFact > 0 {
			return fmt.Errorf("nemesis: side set %d: NULL side set cannot have distribution factors", ss.ID)
		}
		if len(ss.Name) > MaxNameLength {
			return fmt.Errorf("nemesis: side set %d: name %q is longer than %d characters", ss.ID, ss.Name, MaxNameLength)
		}
	}
	return nil
}
