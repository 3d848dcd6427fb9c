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

// PutPartialSideSetDistFact writes count distribution factors of side set
// id, beginning with the 1-based entry start. Only the first count values
// of df are used. If the side set does not store distribution factors,
// nothing is written and an error for which IsWarning is true is returned.
func (f *File) PutPartialSideSetDistFact(id, start, count int, df []float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.putDistFact("PutPartialSideSetDistFact", id, start, count, df)
}

// GetPartialSideSetDistFact reads count distribution factors of side set
// id, beginning with the 1-based entry start.
func (f *File) GetPartialSideSetDistFact(id, start, count int) ([]float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getDistFact("GetPartialSideSetDistFact", id, start, count)
}

// PutSideSetDistFact writes all distribution factors of side set id.
func (f *File) PutSideSetDistFact(id int, df []float64) error {
	const op = "PutSideSetDistFact"
	f.mu.Lock()
	defer f.mu.Unlock()
	_, n, err := f.distFactExtent(op, id)
	if err != nil {
		return err
	}
	if len(df) != n {
		return f.fail(op, id, badParam("side set has %d distribution factors but %d were given", n, len(df)))
	}
	return f.putDistFact(op, id, 1, n, df)
}

// GetSideSetDistFact reads all distribution factors of side set id.
func (f *File) GetSideSetDistFact(id int) ([]float64, error) {
	const op = "GetSideSetDistFact"
	f.mu.Lock()
	defer f.mu.Unlock()
	_, n, err := f.distFactExtent(op, id)
	if err != nil {
		return nil, err
	}
	return f.getDistFact(op, id, 1, n)
}

// distFactExtent locates side set id and returns its 1-based index and
// number of distribution factors. f.mu must be held.
func (f *File) distFactExtent(op string, id int) (ndx, n int, err error) {
	ndx, _, err = f.sideSetExtent(op, id)
	if err != nil {
		return 0, 0, err
	}
	n, ok := f.dimLength(DimNumDFSS(ndx))
	if !ok {
		return 0, 0, f.warn(op, id, ErrNoDistFact)
	}
	return ndx, n, nil
}

func (f *File) putDistFact(op string, id, start, count int, df []float64) error {
	ndx, n, err := f.distFactExtent(op, id)
	if err != nil {
		return err
	}
	if err := checkRange(start, count, n); err != nil {
		return f.fail(op, id, err)
	}
	if len(df) < count {
		return f.fail(op, id, badParam("%d entries requested but %d distribution factors were given", count, len(df)))
	}
	v := VarDistFactSS(ndx)
	if !f.hasVariable(v) {
		return f.fail(op, id, missing(v))
	}
	if count == 0 {
		return nil
	}
	data := make([]float64, count)
	copy(data, df)
	if err := writeVar(f.nc, v, []int{start - 1}, []int{start - 1 + count}, data); err != nil {
		return f.fail(op, id, fmt.Errorf("failed to store distribution factors: %v", err))
	}
	return nil
}

func (f *File) getDistFact(op string, id, start, count int) ([]float64, error) {
	ndx, n, err := f.distFactExtent(op, id)
	if err != nil {
		return nil, err
	}
	if err := checkRange(start, count, n); err != nil {
		return nil, f.fail(op, id, err)
	}
	df, err := readFloat64(f.nc, VarDistFactSS(ndx), start-1, count)
	if err != nil {
		return nil, f.fail(op, id, fmt.Errorf("failed to get distribution factors: %v", err))
	}
	return df, nil
}
