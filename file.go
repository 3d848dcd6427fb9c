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
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ctessum/cdf"
	"github.com/golang/groupcache/lru"
	"github.com/sirupsen/logrus"
)

// File is an open Exodus II mesh file. All methods are safe for
// concurrent use; calls are serialized.
type File struct {
	nc     *cdf.File
	closer io.Closer

	// Log receives warnings, such as attempts to store data in a NULL
	// side set. It defaults to the logrus standard logger.
	Log logrus.FieldLogger

	mu sync.Mutex
	// ids caches side set ID lookups. The ID array is written once when
	// the file is created, so entries never go stale.
	ids *lru.Cache
}

func newFile(nc *cdf.File, c io.Closer) *File {
	return &File{
		nc:     nc,
		closer: c,
		Log:    logrus.StandardLogger(),
		ids:    lru.New(defaultIDCacheSize),
	}
}

// Create writes a new mesh file header as specified by p to rw, fills all
// variables with their fill values, and stores the coordinate names and
// the side set IDs, status flags, and names.
func Create(rw cdf.ReaderWriterAt, p MeshParams) (*File, error) {
	h, err := NewHeader(p)
	if err != nil {
		return nil, err
	}
	nc, err := cdf.Create(rw, h)
	if err != nil {
		return nil, fmt.Errorf("nemesis: creating NetCDF file: %v", err)
	}
	for _, v := range h.Variables() {
		if err := nc.Fill(v); err != nil {
			return nil, fmt.Errorf("nemesis: filling variable %s: %v", v, err)
		}
	}

	l := MaxNameLength + 1
	coords := make([]byte, p.NumDim*l)
	for i, c := range []string{"x", "y", "z"}[:p.NumDim] {
		copy(coords[i*l:], c)
	}
	if err := writeVar(nc, VarCoordNames, []int{0, 0}, []int{p.NumDim, l}, coords); err != nil {
		return nil, fmt.Errorf("nemesis: writing coordinate names: %v", err)
	}

	if n := len(p.SideSets); n > 0 {
		ids := make([]int32, n)
		status := make([]int32, n)
		names := make([]byte, n*l)
		for i, ss := range p.SideSets {
			ids[i] = int32(ss.ID)
			status[i] = statusDefined
			if ss.Null() {
				status[i] = statusNull
			}
			copy(names[i*l:], ss.Name)
		}
		if err := writeVar(nc, VarSideSetIDs, []int{0}, []int{n}, ids); err != nil {
			return nil, fmt.Errorf("nemesis: writing side set IDs: %v", err)
		}
		if err := writeVar(nc, VarSideSetStatus, []int{0}, []int{n}, status); err != nil {
			return nil, fmt.Errorf("nemesis: writing side set status: %v", err)
		}
		if err := writeVar(nc, VarSideSetNames, []int{0, 0}, []int{n, l}, names); err != nil {
			return nil, fmt.Errorf("nemesis: writing side set names: %v", err)
		}
	}
	return newFile(nc, nil), nil
}

// Open reads the header of an existing mesh file from rw.
func Open(rw cdf.ReaderWriterAt) (*File, error) {
	nc, err := cdf.Open(rw)
	if err != nil {
		return nil, fmt.Errorf("nemesis: opening NetCDF file: %v", err)
	}
	return newFile(nc, nil), nil
}

// CreateFile creates the named file, truncating it if it already exists,
// and writes a new mesh file into it. The file must be closed with Close.
func CreateFile(path string, p MeshParams) (*File, error) {
	ff, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("nemesis: creating mesh file: %v", err)
	}
	f, err := Create(ff, p)
	if err != nil {
		ff.Close()
		os.Remove(path)
		return nil, err
	}
	f.closer = ff
	return f, nil
}

// OpenFile opens the named mesh file for reading and writing.
// The file must be closed with Close.
func OpenFile(path string) (*File, error) {
	ff, err := os.OpenFile(path, os.O_RDWR, os.ModePerm)
	if err != nil {
		return nil, fmt.Errorf("nemesis: opening mesh file: %v", err)
	}
	f, err := Open(ff)
	if err != nil {
		ff.Close()
		return nil, err
	}
	f.closer = ff
	return f, nil
}

// Close closes the underlying file if it was opened by CreateFile or
// OpenFile. Otherwise it does nothing.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closer == nil {
		return nil
	}
	err := f.closer.Close()
	f.closer = nil
	return err
}

// Header returns the NetCDF header of the file. It must not be modified.
func (f *File) Header() *cdf.Header { return f.nc.Header }

// Params returns the global sizes and side set definitions stored in the
// file.
func (f *File) Params() (MeshParams, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var p MeshParams
	if t, ok := f.nc.Header.GetAttribute("", AttTitle).(string); ok {
		p.Title = t
	}
	for _, d := range []struct {
		name string
		v    *int
	}{
		{DimNumDim, &p.NumDim},
		{DimNumNodes, &p.NumNodes},
		{DimNumElem, &p.NumElem},
	} {
		n, ok := f.dimLength(d.name)
		if !ok {
			return p, fmt.Errorf("nemesis: reading mesh parameters: %v", missing(d.name))
		}
		*d.v = n
	}

	ids, err := f.sideSetIDs()
	if err != nil {
		return p, err
	}
	for i, id := range ids {
		ss, err := f.sideSetParams(i+1, id)
		if err != nil {
			return p, err
		}
		p.SideSets = append(p.SideSets, ss)
	}
	return p, nil
}

// SideSetIDs returns the IDs of the side sets in the file, in definition
// order. It returns an empty list if there are no side sets.
func (f *File) SideSetIDs() ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sideSetIDs()
}

// SideSetParams returns the definition of side set id.
func (f *File) SideSetParams(id int) (SideSetParams, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.dimLength(DimNumSideSets); !ok {
		return SideSetParams{}, f.fail("SideSetParams", id, ErrNoSideSets)
	}
	loc, err := f.lookup(id)
	if err != nil {
		return SideSetParams{}, f.fail("SideSetParams", id, err)
	}
	return f.sideSetParams(loc.ndx, id)
}

func (f *File) sideSetIDs() ([]int, error) {
	n, ok := f.dimLength(DimNumSideSets)
	if !ok {
		return []int{}, nil
	}
	ids32, err := readInt32(f.nc, VarSideSetIDs, 0, n)
	if err != nil {
		return nil, fmt.Errorf("nemesis: reading side set IDs: %v", err)
	}
	ids := make([]int, n)
	for i, id := range ids32 {
		ids[i] = int(id)
	}
	return ids, nil
}

// sideSetParams reads the definition of the side set with index ndx.
func (f *File) sideSetParams(ndx, id int) (SideSetParams, error) {
	ss := SideSetParams{ID: id}
	ss.NumSides, _ = f.dimLength(DimNumSideSS(ndx))
	ss.NumDistFact, _ = f.dimLength(DimNumDFSS(ndx))
	name, err := f.sideSetName(ndx)
	if err != nil {
		return ss, f.fail("SideSetParams", id, err)
	}
	ss.Name = name
	return ss, nil
}

func (f *File) sideSetName(ndx int) (string, error) {
	if !f.hasVariable(VarSideSetNames) {
		return "", nil // Older files may not store names.
	}
	l := MaxNameLength + 1
	r := f.nc.Reader(VarSideSetNames, []int{ndx - 1, 0}, []int{ndx, l})
	buf := make([]byte, l)
	if _, err := r.Read(buf); err != nil && err != io.EOF {
		return "", fmt.Errorf("reading side set name: %v", err)
	}
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf), nil
}

// location is the position of a side set in the side set ID array.
type location struct {
	ndx  int // 1-based
	null bool
}

// lookup finds side set id in the side set ID array. f.mu must be held.
func (f *File) lookup(id int) (location, error) {
	if v, ok := f.ids.Get(id); ok {
		return v.(location), nil
	}
	n, ok := f.dimLength(DimNumSideSets)
	if !ok {
		return location{}, ErrNoSideSets
	}
	ids, err := readInt32(f.nc, VarSideSetIDs, 0, n)
	if err != nil {
		return location{}, fmt.Errorf("reading side set IDs: %v", err)
	}
	for i, v := range ids {
		if int(v) != id {
			continue
		}
		loc := location{ndx: i + 1}
		if f.hasVariable(VarSideSetStatus) {
			status, err := readInt32(f.nc, VarSideSetStatus, i, 1)
			if err != nil {
				return location{}, fmt.Errorf("reading side set status: %v", err)
			}
			loc.null = status[0] == statusNull
		} else {
			_, hasSides := f.dimLength(DimNumSideSS(loc.ndx))
			loc.null = !hasSides
		}
		f.ids.Add(id, loc)
		return loc, nil
	}
	return location{}, ErrSideSetNotFound
}

// dimLength returns the length of the named dimension and whether it
// exists.
func (f *File) dimLength(name string) (int, bool) {
	dims := f.nc.Header.Dimensions("")
	lengths := f.nc.Header.Lengths("")
	for i, d := range dims {
		if d == name {
			return lengths[i], true
		}
	}
	return 0, false
}

func (f *File) hasVariable(name string) bool {
	return f.nc.Header.Dimensions(name) != nil
}

// fail wraps a fatal error for operation op on side set id.
func (f *File) fail(op string, id int, err error) error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return &Error{Op: op, ID: id, Err: err}
}

// warn wraps and logs a warning for operation op on side set id.
func (f *File) warn(op string, id int, err error) error {
	e := &Error{Op: op, ID: id, Err: err}
	if f.Log != nil {
		f.Log.WithFields(logrus.Fields{"op": op, "sideset": id}).Warn(err.Error())
	}
	return e
}

// writeVar writes data to the hyperslab of variable v starting at begin.
// end is exclusive.
func writeVar(nc *cdf.File, v string, begin, end []int, data interface{}) error {
	w := nc.Writer(v, begin, end)
	if w == nil {
		return missing(v)
	}
	_, err := w.Write(data)
	return err
}

// readInt32 reads count values of the 1-D integer variable v starting at
// the zero-based index start.
func readInt32(nc *cdf.File, v string, start, count int) ([]int32, error) {
	buf := make([]int32, count)
	if count == 0 {
		return buf, nil
	}
	r := nc.Reader(v, []int{start}, []int{start + count})
	if r == nil {
		return nil, missing(v)
	}
	if _, err := r.Read(buf); err != nil && err != io.EOF {
		return nil, err
	}
	return buf, nil
}

// readFloat64 is the float64 counterpart of readInt32.
func readFloat64(nc *cdf.File, v string, start, count int) ([]float64, error) {
	buf := make([]float64, count)
	if count == 0 {
		return buf, nil
	}
	r := nc.Reader(v, []int{start}, []int{start + count})
	if r == nil {
		return nil, missing(v)
	}
	if _, err := r.Read(buf); err != nil && err != io.EOF {
		return nil, err
	}
	return buf, nil
}
