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

// Package nemesis reads and writes the side sets of Exodus II finite
// element mesh files, including the partial (windowed) access routines
// added by the Nemesis parallel extensions.
//
// Files are stored in NetCDF 'classic' format. A side set is a list of
// (element, local side) pairs, usually tagging a boundary condition
// surface, with an optional list of distribution factors. Because the
// NetCDF classic header cannot be changed once it has been written, the
// number and sizes of all side sets must be given when the file is created:
//
//	f, err := nemesis.CreateFile("mesh.exo", nemesis.MeshParams{
//		Title:    "cube",
//		NumDim:   3,
//		NumNodes: 8,
//		NumElem:  1,
//		SideSets: []nemesis.SideSetParams{{ID: 10, NumSides: 2}},
//	})
//	...
//	err = f.PutPartialSideSet(10, 1, 2, []int{1, 1}, []int{4, 6})
//
// Indices passed to the partial routines are 1-based.
package nemesis

// Version gives the version number.
const Version = "1.0.0"

// APIVersion is the Exodus API version written into new files.
const APIVersion = 5.22
