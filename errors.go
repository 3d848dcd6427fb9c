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
	"fmt"
)

var (
	// ErrNoSideSets is returned when a file does not define any side sets.
	ErrNoSideSets = errors.New("no side sets defined in file")

	// ErrSideSetNotFound is returned when a side set ID is not present in
	// the side set ID array.
	ErrSideSetNotFound = errors.New("side set ID not found")

	// ErrNullSideSet is a warning returned when data is requested for a
	// side set that was defined with no sides.
	ErrNullSideSet = errors.New("no data allowed for NULL side set")

	// ErrNoDistFact is a warning returned when distribution factors are
	// requested for a side set that does not store any.
	ErrNoDistFact = errors.New("no distribution factors defined for side set")

	// ErrBadParam is returned when caller-supplied arguments are invalid.
	ErrBadParam = errors.New("invalid input")

	// ErrMissingVariable is returned when a dimension or variable that
	// the file metadata says should exist cannot be found.
	ErrMissingVariable = errors.New("missing dimension or variable")
)

// Error records a failed side set operation.
type Error struct {
	Op  string // name of the operation, e.g. "PutPartialSideSet"
	ID  int    // side set ID
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("nemesis: %s: side set %d: %v", e.Op, e.ID, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// IsWarning reports whether err only signals that no data was transferred
// because the side set is empty or carries no distribution factors.
// Any other non-nil error is fatal.
func IsWarning(err error) bool {
	return errors.Is(err, ErrNullSideSet) || errors.Is(err, ErrNoDistFact)
}

// detailError adds a message to one of the sentinel errors above.
type detailError struct {
	kind error
	msg  string
}

func (e *detailError) Error() string { return e.kind.Error() + ": " + e.msg }
func (e *detailError) Unwrap() error { return e.kind }

func badParam(format string, a ...interface{}) error {
	return &detailError{kind: ErrBadParam, msg: fmt.Sprintf(format, a...)}
}

func missing(name string) error {
	return &detailError{kind: ErrMissingVariable, msg: name}
}
