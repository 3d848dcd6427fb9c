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
	"errors"
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/ctessum/cdf"
	"github.com/kr/pretty"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func testParams() MeshParams {
	return MeshParams{
		Title:    "two hexes",
		NumDim:   3,
		NumNodes: 12,
		NumElem:  2,
		SideSets: []SideSetParams{
			{ID: 10, Name: "inlet", NumSides: 4, NumDistFact: 16},
			{ID: 20, Name: "empty"},
			{ID: 30, Name: "wall", NumSides: 3},
		},
	}
}

// createTestFile creates a mesh file in a temporary directory. The returned
// function closes the file and removes the directory.
func createTestFile(t *testing.T, p MeshParams) (*File, string, func()) {
	dir, err := ioutil.TempDir("", "nemesis")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "test.exo")
	f, err := CreateFile(path, p)
	if err != nil {
		os.RemoveAll(dir)
		t.Fatal(err)
	}
	logger, _ := test.NewNullLogger()
	f.Log = logger
	return f, path, func() {
		f.Close()
		os.RemoveAll(dir)
	}
}

func TestPutPartialSideSet(t *testing.T) {
	f, _, cleanup := createTestFile(t, testParams())
	defer cleanup()

	elems := []int{1, 1, 2, 2}
	sides := []int{1, 4, 2, 6}

	// Write the set in two pieces, out of order.
	if err := f.PutPartialSideSet(10, 3, 2, elems[2:], sides[2:]); err != nil {
		t.Fatal(err)
	}
	if err := f.PutPartialSideSet(10, 1, 2, elems[:2], sides[:2]); err != nil {
		t.Fatal(err)
	}

	gotElems, gotSides, err := f.GetSideSet(10)
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(gotElems, elems); len(diff) > 0 {
		t.Errorf("element list: %v", diff)
	}
	if diff := pretty.Diff(gotSides, sides); len(diff) > 0 {
		t.Errorf("side list: %v", diff)
	}

	// Writing one set must not disturb another.
	if err := f.PutSideSet(30, []int{2, 2, 2}, []int{3, 5, 6}); err != nil {
		t.Fatal(err)
	}
	gotElems, _, err = f.GetSideSet(10)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(gotElems, elems) {
		t.Errorf("side set 10 changed after writing side set 30: %v != %v", gotElems, elems)
	}
}

func TestPutPartialSideSet_extraValuesIgnored(t *testing.T) {
	f, _, cleanup := createTestFile(t, testParams())
	defer cleanup()

	if err := f.PutSideSet(30, []int{7, 7, 7}, []int{1, 1, 1}); err != nil {
		t.Fatal(err)
	}
	// Only the first count values are written.
	if err := f.PutPartialSideSet(30, 2, 1, []int{8, 9}, []int{2, 3}); err != nil {
		t.Fatal(err)
	}
	elems, sides, err := f.GetSideSet(30)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{7, 8, 7}; !reflect.DeepEqual(elems, want) {
		t.Errorf("elems: %v != %v", elems, want)
	}
	if want := []int{1, 2, 1}; !reflect.DeepEqual(sides, want) {
		t.Errorf("sides: %v != %v", sides, want)
	}
}

func TestPutPartialSideSet_errors(t *testing.T) {
	f, _, cleanup := createTestFile(t, testParams())
	defer cleanup()

	two := []int{1, 2}
	tests := []struct {
		name         string
		id           int
		start, count int
		elems, sides []int
		want         error
	}{
		{name: "unknown id", id: 99, start: 1, count: 1, elems: two, sides: two, want: ErrSideSetNotFound},
		{name: "zero start", id: 10, start: 0, count: 1, elems: two, sides: two, want: ErrBadParam},
		{name: "negative start", id: 10, start: -1, count: 1, elems: two, sides: two, want: ErrBadParam},
		{name: "start past end", id: 10, start: 6, count: 0, elems: two, sides: two, want: ErrBadParam},
		{name: "negative count", id: 10, start: 1, count: -1, elems: two, sides: two, want: ErrBadParam},
		{name: "too long", id: 10, start: 4, count: 2, elems: two, sides: two, want: ErrBadParam},
		{name: "short elems", id: 10, start: 1, count: 3, elems: two, sides: []int{1, 2, 3}, want: ErrBadParam},
		{name: "short sides", id: 10, start: 1, count: 3, elems: []int{1, 2, 3}, sides: two, want: ErrBadParam},
		{name: "overflow", id: 10, start: 1, count: 1, elems: []int{math.MaxInt32 + 1}, sides: two, want: ErrBadParam},
		{name: "null set", id: 20, start: 1, count: 1, elems: two, sides: two, want: ErrNullSideSet},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := f.PutPartialSideSet(test.id, test.start, test.count, test.elems, test.sides)
			if !errors.Is(err, test.want) {
				t.Fatalf("got error %v, want %v", err, test.want)
			}
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("error %v is not an *Error", err)
			}
			if e.ID != test.id || e.Op != "PutPartialSideSet" {
				t.Errorf("wrong error context: %+v", e)
			}
			if IsWarning(err) != (test.want == ErrNullSideSet) {
				t.Errorf("IsWarning(%v) = %v", err, IsWarning(err))
			}
		})
	}

	// Nothing may have been written by the failed calls.
	elems, _, err := f.GetSideSet(10)
	if err != nil {
		t.Fatal(err)
	}
	for i, e := range elems {
		if e == 1 || e == 2 {
			t.Errorf("element %d was written by a rejected call: %d", i, e)
		}
	}
}

func TestPutPartialSideSet_emptyWindow(t *testing.T) {
	f, _, cleanup := createTestFile(t, testParams())
	defer cleanup()

	for _, start := range []int{1, 3, 4} {
		if err := f.PutPartialSideSet(10, start, 0, nil, nil); err != nil {
			t.Errorf("start=%d: %v", start, err)
		}
	}
	// An empty window must still start inside the set.
	if err := f.PutPartialSideSet(30, 4, 0, nil, nil); !errors.Is(err, ErrBadParam) {
		t.Errorf("start past the end: got %v, want %v", err, ErrBadParam)
	}
}

func TestPutPartialSideSet_nullWarningLogged(t *testing.T) {
	f, _, cleanup := createTestFile(t, testParams())
	defer cleanup()

	logger, hook := test.NewNullLogger()
	f.Log = logger

	err := f.PutPartialSideSet(20, 1, 0, nil, nil)
	if !IsWarning(err) {
		t.Fatalf("expected a warning, got %v", err)
	}
	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("no log entry")
	}
	if entry.Level != logrus.WarnLevel {
		t.Errorf("log level %v", entry.Level)
	}
	if entry.Data["sideset"] != 20 {
		t.Errorf("log fields %v", entry.Data)
	}
}

func TestPutPartialSideSet_noSideSets(t *testing.T) {
	p := testParams()
	p.SideSets = nil
	f, _, cleanup := createTestFile(t, p)
	defer cleanup()

	err := f.PutPartialSideSet(10, 1, 1, []int{1}, []int{1})
	if !errors.Is(err, ErrNoSideSets) {
		t.Errorf("got %v, want %v", err, ErrNoSideSets)
	}
	if IsWarning(err) {
		t.Error("missing side sets should be fatal")
	}
	ids, err := f.SideSetIDs()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 0 {
		t.Errorf("ids: %v", ids)
	}
}

func TestGetPartialSideSet(t *testing.T) {
	f, _, cleanup := createTestFile(t, testParams())
	defer cleanup()

	if err := f.PutSideSet(10, []int{1, 2, 3, 4}, []int{5, 6, 7, 8}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		start, count int
		elems, sides []int
	}{
		{start: 1, count: 4, elems: []int{1, 2, 3, 4}, sides: []int{5, 6, 7, 8}},
		{start: 2, count: 2, elems: []int{2, 3}, sides: []int{6, 7}},
		{start: 4, count: 1, elems: []int{4}, sides: []int{8}},
		{start: 4, count: 0, elems: []int{}, sides: []int{}},
	}
	for _, test := range tests {
		elems, sides, err := f.GetPartialSideSet(10, test.start, test.count)
		if err != nil {
			t.Errorf("start=%d count=%d: %v", test.start, test.count, err)
			continue
		}
		if !reflect.DeepEqual(elems, test.elems) || !reflect.DeepEqual(sides, test.sides) {
			t.Errorf("start=%d count=%d: got %v %v, want %v %v", test.start, test.count,
				elems, sides, test.elems, test.sides)
		}
	}

	if _, _, err := f.GetPartialSideSet(10, 3, 3); !errors.Is(err, ErrBadParam) {
		t.Errorf("got %v, want %v", err, ErrBadParam)
	}
}

func TestPutSideSet_wrongLength(t *testing.T) {
	f, _, cleanup := createTestFile(t, testParams())
	defer cleanup()

	err := f.PutSideSet(30, []int{1, 2}, []int{1, 2})
	if !errors.Is(err, ErrBadParam) {
		t.Errorf("got %v, want %v", err, ErrBadParam)
	}
}

func TestReopen(t *testing.T) {
	p := testParams()
	f, path, cleanup := createTestFile(t, p)
	defer cleanup()

	if err := f.PutSideSet(30, []int{2, 2, 1}, []int{3, 5, 6}); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	f2, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f2.Close()

	got, err := f2.Params()
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(got, p); len(diff) > 0 {
		t.Errorf("params: %v", diff)
	}

	elems, sides, err := f2.GetSideSet(30)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(elems, []int{2, 2, 1}) || !reflect.DeepEqual(sides, []int{3, 5, 6}) {
		t.Errorf("got %v %v", elems, sides)
	}

	ss, err := f2.SideSetParams(20)
	if err != nil {
		t.Fatal(err)
	}
	if !ss.Null() || ss.Name != "empty" {
		t.Errorf("side set 20: %+v", ss)
	}
}

func TestPutPartialSideSet_concurrent(t *testing.T) {
	p := testParams()
	p.SideSets = []SideSetParams{{ID: 1, NumSides: 100}}
	f, _, cleanup := createTestFile(t, p)
	defer cleanup()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			elems := make([]int, 10)
			sides := make([]int, 10)
			for j := range elems {
				elems[j] = i*10 + j + 1
				sides[j] = j%6 + 1
			}
			errs <- f.PutPartialSideSet(1, i*10+1, 10, elems, sides)
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatal(err)
		}
	}
	elems, _, err := f.GetSideSet(1)
	if err != nil {
		t.Fatal(err)
	}
	for i, e := range elems {
		if e != i+1 {
			t.Fatalf("elems[%d] = %d", i, e)
		}
	}
}

// createIncompleteFile writes a file whose header declares side set 1 with
// three sides and four distribution factors but stores only its element list.
func createIncompleteFile(t *testing.T) (*File, func()) {
	dir, err := ioutil.TempDir("", "nemesis")
	if err != nil {
		t.Fatal(err)
	}
	ff, err := os.Create(filepath.Join(dir, "incomplete.exo"))
	if err != nil {
		os.RemoveAll(dir)
		t.Fatal(err)
	}
	cleanup := func() {
		ff.Close()
		os.RemoveAll(dir)
	}

	h := cdf.NewHeader(
		[]string{DimNumDim, DimNumNodes, DimNumElem, DimNumSideSets, DimNumSideSS(1), DimNumDFSS(1)},
		[]int{3, 8, 1, 1, 3, 4})
	h.AddVariable(VarSideSetIDs, []string{DimNumSideSets}, []int32{0})
	h.AddVariable(VarSideSetStatus, []string{DimNumSideSets}, []int32{0})
	h.AddVariable(VarElemSS(1), []string{DimNumSideSS(1)}, []int32{0})
	h.Define()
	nc, err := cdf.Create(ff, h)
	if err != nil {
		cleanup()
		t.Fatal(err)
	}
	for _, v := range h.Variables() {
		if err := nc.Fill(v); err != nil {
			cleanup()
			t.Fatal(err)
		}
	}
	if err := writeVar(nc, VarSideSetIDs, []int{0}, []int{1}, []int32{40}); err != nil {
		cleanup()
		t.Fatal(err)
	}
	if err := writeVar(nc, VarSideSetStatus, []int{0}, []int{1}, []int32{statusDefined}); err != nil {
		cleanup()
		t.Fatal(err)
	}

	f, err := Open(ff)
	if err != nil {
		cleanup()
		t.Fatal(err)
	}
	f.Log, _ = test.NewNullLogger()
	return f, cleanup
}

func TestPutPartialSideSet_missingVariable(t *testing.T) {
	f, cleanup := createIncompleteFile(t)
	defer cleanup()

	before, err := readInt32(f.nc, VarElemSS(1), 0, 3)
	if err != nil {
		t.Fatal(err)
	}

	err = f.PutPartialSideSet(40, 1, 3, []int{1, 1, 1}, []int{1, 2, 3})
	if !errors.Is(err, ErrMissingVariable) {
		t.Errorf("got %v, want %v", err, ErrMissingVariable)
	}
	if IsWarning(err) {
		t.Error("a missing variable should be fatal")
	}

	after, err := readInt32(f.nc, VarElemSS(1), 0, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Errorf("element list was modified: %v -> %v", before, after)
	}
}

func TestPutSideSetDistFact_missingVariable(t *testing.T) {
	f, cleanup := createIncompleteFile(t)
	defer cleanup()

	err := f.PutSideSetDistFact(40, []float64{1, 1, 1, 1})
	if !errors.Is(err, ErrMissingVariable) || IsWarning(err) {
		t.Errorf("got %v, want fatal %v", err, ErrMissingVariable)
	}
}
