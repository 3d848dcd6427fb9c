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

import "math"

// checkRange checks that the 1-based window of count entries beginning at
// start fits within a list of n entries.
func checkRange(start, count, n int) error {
	if start < 1 || start > n {
		return badParam("start index %d is outside of [1, %d]", start, n)
	}
	if count < 0 {
		return badParam("invalid number of entries %d", count)
	}
	if start+count-1 > n {
		return badParam("request larger than number of entries in set: start=%d count=%d entries=%d",
			start, count, n)
	}
	return nil
}

// toInt32 converts v to the integer type stored in the file.
func toInt32(name string, v []int) ([]int32, error) {
	o := make([]int32, len(v))
	for i, x := range v {
		if x < math.MinInt32 || x > math.MaxInt32 {
			return nil, badParam("%s[%d]=%d does not fit in a 32-bit integer", name, i, x)
		}
		o[i] = int32(x)
	}
	return o, nil
}

func fromInt32(v []int32) []int {
	o := make([]int, len(v))
	for i, x := range v {
		o[i] = int(x)
	}
	return o
}
