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

// Package gambit imports the boundary conditions of Gambit neutral mesh
// files as Exodus side sets.
package gambit

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spatialmodel/nemesis"
)

// Boundary condition set types.
const (
	nodeSet    = 0
	elementSet = 1
)

// ChunkSize is the number of sides written per call when storing
// boundary sets. Values less than 1 write each set in a single call.
var ChunkSize = 4096

// BoundarySet is an element-type boundary condition set.
type BoundarySet struct {
	Name string

	// Elems and Faces hold the element number and element face of each
	// boundary side.
	Elems, Faces []int
}

// Mesh holds the parts of a Gambit neutral file needed to build
// side sets.
type Mesh struct {
	Title             string
	NumNodes, NumElem int
	NumDim            int
	BoundarySets      []BoundarySet
	NodeBoundaryNames []string

	numSets int // NBSETS
}

// Read parses a Gambit neutral file from r.
func Read(r io.Reader) (*Mesh, error) {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 1024*1024)
	m := new(Mesh)
	line := 0
	next := func() (string, bool) {
		if !s.Scan() {
			return "", false
		}
		line++
		return s.Text(), true
	}

	for {
		l, ok := next()
		if !ok {
			break
		}
		switch {
		case line == 3:
			m.Title = strings.TrimSpace(l)
		case strings.Contains(l, "NUMNP"):
			l, ok = next()
			if !ok {
				return nil, fmt.Errorf("gambit: line %d: missing problem size", line)
			}
			if err := m.parseSizes(l); err != nil {
				return nil, fmt.Errorf("gambit: line %d: %v", line, err)
			}
		case strings.Contains(l, "BOUNDARY CONDITIONS"):
			if err := m.readBoundaryConditions(next, &line); err != nil {
				return nil, err
			}
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("gambit: reading file: %v", err)
	}
	if m.NumNodes == 0 {
		return nil, fmt.Errorf("gambit: missing NUMNP header")
	}
	if n := len(m.BoundarySets) + len(m.NodeBoundaryNames); n != m.numSets {
		return nil, fmt.Errorf("gambit: header lists %d boundary condition sets but %d were read", m.numSets, n)
	}
	return m, nil
}

func (m *Mesh) parseSizes(l string) error {
	f := strings.Fields(l)
	if len(f) < 5 {
		return fmt.Errorf("invalid problem size record %q", l)
	}
	v := make([]int, 5)
	for i := range v {
		var err error
		if v[i], err = strconv.Atoi(f[i]); err != nil {
			return fmt.Errorf("invalid problem size record %q", l)
		}
	}
	m.NumNodes, m.NumElem, m.numSets, m.NumDim = v[0], v[1], v[3], v[4]
	return nil
}

// readBoundaryConditions reads boundary condition sets until the end of
// the section.
func (m *Mesh) readBoundaryConditions(next func() (string, bool), line *int) error {
	for {
		l, ok := next()
		if !ok || strings.TrimSpace(l) == "ENDOFSECTION" {
			return nil
		}
		f := strings.Fields(l)
		if len(f) == 0 {
			continue
		}
		if len(f) < 3 {
			return fmt.Errorf("gambit: line %d: invalid boundary condition format: %q", *line, l)
		}
		name := f[0]
		itype, err := strconv.Atoi(f[1])
		if err != nil {
			return fmt.Errorf("gambit: line %d: invalid boundary condition format: %q", *line, l)
		}
		nentry, err := strconv.Atoi(f[2])
		if err != nil || nentry < 0 {
			return fmt.Errorf("gambit: line %d: invalid boundary condition format: %q", *line, l)
		}

		switch itype {
		case nodeSet:
			m.NodeBoundaryNames = append(m.NodeBoundaryNames, name)
			for i := 0; i < nentry; i++ {
				if _, ok := next(); !ok {
					return fmt.Errorf("gambit: boundary condition %s: unexpected end of file", name)
				}
			}
		case elementSet:
			bs := BoundarySet{
				Name:  name,
				Elems: make([]int, nentry),
				Faces: make([]int, nentry),
			}
			for i := 0; i < nentry; i++ {
				l, ok := next()
				if !ok {
					return fmt.Errorf("gambit: boundary condition %s: unexpected end of file", name)
				}
				rec := strings.Fields(l)
				if len(rec) < 3 {
					return fmt.Errorf("gambit: line %d: invalid boundary condition format: %q", *line, l)
				}
				if bs.Elems[i], err = strconv.Atoi(rec[0]); err != nil {
					return fmt.Errorf("gambit: line %d: invalid boundary condition format: %q", *line, l)
				}
				if bs.Faces[i], err = strconv.Atoi(rec[2]); err != nil {
					return fmt.Errorf("gambit: line %d: invalid boundary condition format: %q", *line, l)
				}
			}
			m.BoundarySets = append(m.BoundarySets, bs)
		default:
			return fmt.Errorf("gambit: line %d: invalid boundary condition ITYPE %d for %s", *line, itype, name)
		}
	}
}

// Params returns the mesh file parameters for m. The boundary sets
// are numbered 1..n in the order they appear in the file.
func (m *Mesh) Params() nemesis.MeshParams {
	p := nemesis.MeshParams{
		Title:    m.Title,
		NumDim:   m.NumDim,
		NumNodes: m.NumNodes,
		NumElem:  m.NumElem,
	}
	for i, bs := range m.BoundarySets {
		name := bs.Name
		if len(name) > nemesis.MaxNameLength {
			name = name[:nemesis.MaxNameLength]
		}
		p.SideSets = append(p.SideSets, nemesis.SideSetParams{
			ID:       i + 1,
			Name:     name,
			NumSides: len(bs.Elems),
		})
	}
	return p
}

// Write stores the element and face lists of the boundary sets in f,
// which must have been created from m.Params().
func (m *Mesh) Write(f *nemesis.File) error {
	for i, bs := range m.BoundarySets {
		id := i + 1
		if len(bs.Elems) == 0 {
			continue
		}
		chunk := ChunkSize
		if chunk < 1 {
			chunk = len(bs.Elems)
		}
		for start := 0; start < len(bs.Elems); start += chunk {
			end := start + chunk
			if end > len(bs.Elems) {
				end = len(bs.Elems)
			}
			if err := f.PutPartialSideSet(id, start+1, end-start, bs.Elems[start:end], bs.Faces[start:end]); err != nil {
				return fmt.Errorf("gambit: writing boundary set %s: %v", bs.Name, err)
			}
		}
	}
	return nil
}
