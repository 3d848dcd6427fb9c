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

	"github.com/ctessum/cdf"
)

// NewHeader checks p and returns a defined (immutable) NetCDF header
// describing a mesh file with the side sets in p.
func NewHeader(p MeshParams) (*cdf.Header, error) {
	if err := p.Check(); err != nil {
		return nil, err
	}

	dims := []string{DimLenName, DimNumDim, DimNumNodes, DimNumElem}
	lengths := []int{MaxNameLength + 1, p.NumDim, p.NumNodes, p.NumElem}
	if len(p.SideSets) > 0 {
		dims = append(dims, DimNumSideSets)
		lengths = append(lengths, len(p.SideSets))
	}
	for i, ss := range p.SideSets {
		ndx := i + 1
		if ss.Null() {
			continue
		}
		dims = append(dims, DimNumSideSS(ndx))
		lengths = append(lengths, ss.NumSides)
		if ss.NumDistFact > 0 {
			dims = append(dims, DimNumDFSS(ndx))
			lengths = append(lengths, ss.NumDistFact)
		}
	}

	h := cdf.NewHeader(dims, lengths)
	if p.Title != "" {
		h.AddAttribute("", AttTitle, p.Title)
	}
	h.AddAttribute("", AttAPIVersion, []float32{APIVersion})
	h.AddAttribute("", AttVersion, []float32{APIVersion})
	h.AddAttribute("", AttFloatWordSize, []int32{floatWordSize})
	h.AddAttribute("", AttFileSize, []int32{1})

	h.AddVariable(VarCoordNames, []string{DimNumDim, DimLenName}, "")

	if len(p.SideSets) > 0 {
		h.AddVariable(VarSideSetStatus, []string{DimNumSideSets}, []int32{0})
		h.AddVariable(VarSideSetIDs, []string{DimNumSideSets}, []int32{0})
		h.AddAttribute(VarSideSetIDs, AttPropertyName, PropertyNameID)
		h.AddVariable(VarSideSetNames, []string{DimNumSideSets, DimLenName}, "")
	}
	for i, ss := range p.SideSets {
		ndx := i + 1
		if ss.Null() {
			continue
		}
		h.AddVariable(VarElemSS(ndx), []string{DimNumSideSS(ndx)}, []int32{0})
		h.AddAttribute(VarElemSS(ndx), "description", fmt.Sprintf("element list for side set %d", ss.ID))
		h.AddVariable(VarSideSS(ndx), []string{DimNumSideSS(ndx)}, []int32{0})
		h.AddAttribute(VarSideSS(ndx), "description", fmt.Sprintf("side list for side set %d", ss.ID))
		if ss.NumDistFact > 0 {
			h.AddVariable(VarDistFactSS(ndx), []string{DimNumDFSS(ndx)}, []float64{0})
			h.AddAttribute(VarDistFactSS(ndx), "description", fmt.Sprintf("distribution factors for side set %d", ss.ID))
		}
	}

	h.Define()

	for _, err := range h.Check() {
		return nil, fmt.Errorf("nemesis: defining NetCDF header: %v", err)
	}
	return h, nil
}
