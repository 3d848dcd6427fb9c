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

import "fmt"

// Names of the NetCDF dimensions, variables, and attributes that make up
// an Exodus II file. Side set indices in the numbered names are 1-based and
// follow the order in which the side sets were defined.
const (
	AttTitle           = "title"
	AttAPIVersion      = "api_version"
	AttVersion         = "version"
	AttFloatWordSize   = "floating_point_word_size"
	AttFileSize        = "file_size"
	DimLenName         = "len_name"
	DimNumDim          = "num_dim"
	DimNumNodes        = "num_nodes"
	DimNumElem         = "num_elem"
	DimNumSideSets     = "num_side_sets"
	VarSideSetIDs      = "ss_prop1"
	VarSideSetStatus   = "ss_status"
	VarSideSetNames    = "ss_names"
	VarCoordNames      = "coor_names"
	AttPropertyName    = "name"
	PropertyNameID     = "ID"
	MaxNameLength      = 32
	floatWordSize      = 8
	statusNull         = 0
	statusDefined      = 1
	defaultIDCacheSize = 256
)

// DimNumSideSS returns the name of the dimension holding the number of
// sides in side set ndx.
func DimNumSideSS(ndx int) string { return fmt.Sprintf("num_side_ss%d", ndx) }

// DimNumDFSS returns the name of the dimension holding the number of
// distribution factors in side set ndx.
func DimNumDFSS(ndx int) string { return fmt.Sprintf("num_df_ss%d", ndx) }

// VarElemSS returns the name of the element list variable of side set ndx.
func VarElemSS(ndx int) string { return fmt.Sprintf("elem_ss%d", ndx) }

// VarSideSS returns the name of the side list variable of side set ndx.
func VarSideSS(ndx int) string { return fmt.Sprintf("side_ss%d", ndx) }

// VarDistFactSS returns the name of the distribution factor variable of
// side set ndx.
func VarDistFactSS(ndx int) string { return fmt.Sprintf("dist_fact_ss%d", ndx) }
