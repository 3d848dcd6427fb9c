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
	"os"
	"reflect"
	"testing"
)

func TestReader(t *testing.T) {
	f, path, cleanup := createTestFile(t, testParams())
	defer cleanup()

	if err := f.PutSideSet(30, []int{1, 2, 2}, []int{4, 4, 5}); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	ff, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer ff.Close()
	r, err := NewReader(ff)
	if err != nil {
		t.Fatal(err)
	}

	ss, err := r.SideSet(30)
	if err != nil {
		t.Fatal(err)
	}
	if ss.Name != "wall" || !reflect.DeepEqual(ss.Elems, []int{1, 2, 2}) || !reflect.DeepEqual(ss.Sides, []int{4, 4, 5}) {
		t.Errorf("side set 30: %+v", ss)
	}
	if ss.DistFact != nil {
		t.Errorf("side set 30 should not have distribution factors: %v", ss.DistFact)
	}

	ss2, err := r.SideSet(30)
	if err != nil {
		t.Fatal(err)
	}
	if ss2 != ss {
		t.Error("second request was not served from the cache")
	}

	null, err := r.SideSet(20)
	if err != nil {
		t.Fatal(err)
	}
	if !null.Null() || len(null.Elems) != 0 {
		t.Errorf("side set 20: %+v", null)
	}

	df, err := r.SideSet(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(df.DistFact) != 16 {
		t.Errorf("side set 10 distribution factors: %v", df.DistFact)
	}

	// Repeated failures must not block.
	for i := 0; i < 2; i++ {
		if _, err := r.SideSet(99); !errors.Is(err, ErrSideSetNotFound) {
			t.Errorf("attempt %d: got %v, want %v", i, err, ErrSideSetNotFound)
		}
	}
}
