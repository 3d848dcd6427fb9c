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

// PutPartialSideSet writes count entries of the element and side lists of
// side set id, beginning with the 1-based entry start. Only the first
// count values of elems and sides are used.
//
// The side set must have been defined when the file was created. If it
// was defined with no sides, nothing is written and an error for which
// IsWarning is true is returned.
func (f *File) PutPartialSideSet(id, start, count int, elems, sides []int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.putSides("PutPartialSideSet", id, start, count, elems, sides)
}

// GetPartialSideSet reads count entries of the element and side lists of
// side set id, beginning with the 1-based entry start.
func (f *File) GetPartialSideSet(id, start, count int) (elems, sides []int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getSides("GetPartialSideSet", id, start, count)
}

// PutSideSet writes the complete element and side lists of side set id.
// Both lists must have exactly as many entries as the side set has sides.
func (f *File) PutSideSet(id int, elems, sides []int) error {
	const op = "PutSideSet"
	f.mu.Lock()
	defer f.mu.Unlock()
	_, n, err := f.sideSetExtent(op, id)
	if err != nil {
		return err
	}
	if len(elems) != n || len(sides) != n {
		return f.fail(op, id, badParam("side set has %d sides but %d elements and %d sides were given",
			n, len(elems), len(sides)))
	}
	return f.putSides(op, id, 1, n, elems, sides)
}

// GetSideSet reads the complete element and side lists of side set id.
func (f *File) GetSideSet(id int) (elems, sides []int, err error) {
	const op = "GetSideSet"
	f.mu.Lock()
	defer f.mu.Unlock()
	_, n, err := f.sideSetExtent(op, id)
	if err != nil {
		return nil, nil, err
	}
	return f.getSides(op, id, 1, n)
}

// sideSetExtent locates side set id and returns its 1-based index and
// number of sides. f.mu must be held.
func (f *File) sideSetExtent(op string, id int) (ndx, n int, err error) {
	if _, ok := f.dimLength(DimNumSideSets); !ok {
		return 0, 0, f.fail(op, id, ErrNoSideSets)
	}
	loc, err := f.lookup(id)
	if err != nil {
		return 0, 0, f.fail(op, id, err)
	}
	if loc.null {
		return 0, 0, f.warn(op, id, ErrNullSideSet)
	}
	n, ok := f.dimLength(DimNumSideSS(loc.ndx))
	if !ok {
		return 0, 0, f.fail(op, id, missing(DimNumSideSS(loc.ndx)))
	}
	return loc.ndx, n, nil
}

func (f *File) putSides(op string, id, start, count int, elems, sides []int) error {
	ndx, n, err := f.sideSetExtent(op, id)
	if err != nil {
		return err
	}
	if err := checkRange(start, count, n); err != nil {
		return f.fail(op, id, err)
	}
	if len(elems) < count || len(sides) < count {
		return f.fail(op, id, badParam("%d entries requested but %d elements and %d sides were given",
			count, len(elems), len(sides)))
	}
	e32, err := toInt32("elems", elems[:count])
	if err != nil {
		return f.fail(op, id, err)
	}
	s32, err := toInt32("sides", sides[:count])
	if err != nil {
		return f.fail(op, id, err)
	}

	elemVar, sideVar := VarElemSS(ndx), VarSideSS(ndx)
	for _, v := range []string{elemVar, sideVar} {
		if !f.hasVariable(v) {
			return f.fail(op, id, missing(v))
		}
	}
	if count == 0 {
		return nil
	}

	begin, end := []int{start - 1}, []int{start - 1 + count}
	if err := writeVar(f.nc, elemVar, begin, end, e32); err != nil {
		return f.fail(op, id, fmt.Errorf("failed to store element list: %v", err))
	}
	if err := writeVar(f.nc, sideVar, begin, end, s32); err != nil {
		return f.fail(op, id, fmt.Errorf("failed to store side list: %v", err))
	}
	return nil
}

func (f *File) getSides(op string, id, start, count int) (elems, sides []int, err error) {
	ndx, n, err := f.sideSetExtent(op, id)
	if err != nil {
		return nil, nil, err
	}
	if err := checkRange(start, count, n); err != nil {
		return nil, nil, f.fail(op, id, err)
	}
	e32, err := readInt32(f.nc, VarElemSS(ndx), start-1, count)
	if err != nil {
		return nil, nil, f.fail(op, id, fmt.Errorf("failed to get element list: %v", err))
	}
	s32, err := readInt32(f.nc, VarSideSS(ndx), start-1, count)
	if err != nil {
		return nil, nil, f.fail(op, id, fmt.Errorf("failed to get side list: %v", err))
	}
	return fromInt32(e32), fromInt32(s32), nil
}
