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

// Package nemesisutil contains the command-line interface for
// creating and editing mesh file side sets.
package nemesisutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/BurntSushi/toml"
	"github.com/gonum/floats"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/nemesis"
	"github.com/spatialmodel/nemesis/gambit"
	"github.com/spatialmodel/nemesis/internal/hash"
	"github.com/spf13/cast"
)

// meshParams returns the mesh definition held in cfg, either in the
// file named by MeshFile or in the Mesh.* options.
func meshParams(cfg *viper.Viper) (nemesis.MeshParams, error) {
	if path := cfg.GetString("MeshFile"); path != "" {
		return readMeshFile(os.ExpandEnv(path))
	}
	p := nemesis.MeshParams{
		Title:    cfg.GetString("Mesh.Title"),
		NumDim:   cfg.GetInt("Mesh.NumDim"),
		NumNodes: cfg.GetInt("Mesh.NumNodes"),
		NumElem:  cfg.GetInt("Mesh.NumElem"),
	}
	specs, err := cast.ToStringSliceE(cfg.Get("Mesh.SideSets"))
	if err != nil {
		return p, fmt.Errorf("nemesis: invalid Mesh.SideSets: %v", err)
	}
	p.SideSets, err = parseSideSets(specs)
	return p, err
}

// readMeshFile reads a mesh definition from a TOML file.
func readMeshFile(path string) (nemesis.MeshParams, error) {
	var p nemesis.MeshParams
	md, err := toml.DecodeFile(path, &p)
	if err != nil {
		return p, fmt.Errorf("nemesis: reading mesh file %s: %v", path, err)
	}
	if u := md.Undecoded(); len(u) > 0 {
		return p, fmt.Errorf("nemesis: mesh file %s: unknown keys %v", path, u)
	}
	return p, nil
}

// parseSideSets parses side set definitions in the format
// 'id:numSides[:numDistFact]'. Comma-separated lists are allowed within
// each entry.
func parseSideSets(specs []string) ([]nemesis.SideSetParams, error) {
	var o []nemesis.SideSetParams
	for _, spec := range specs {
		for _, s := range strings.Split(spec, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			parts := strings.Split(s, ":")
			if len(parts) < 2 || len(parts) > 3 {
				return nil, fmt.Errorf("nemesis: invalid side set definition %q; the format is 'id:numSides[:numDistFact]'", s)
			}
			v := make([]int, 3)
			for i, part := range parts {
				n, err := strconv.Atoi(part)
				if err != nil {
					return nil, fmt.Errorf("nemesis: invalid side set definition %q: %v", s, err)
				}
				v[i] = n
			}
			o = append(o, nemesis.SideSetParams{ID: v[0], NumSides: v[1], NumDistFact: v[2]})
		}
	}
	return o, nil
}

// Create creates a mesh file at path with the given definition.
func Create(path string, p nemesis.MeshParams) error {
	f, err := nemesis.CreateFile(path, p)
	if err != nil {
		return err
	}
	Log.WithFields(logrus.Fields{
		"file":     path,
		"sidesets": len(p.SideSets),
	}).Info("created mesh file")
	return f.Close()
}

// openInput opens the named input file, or standard input for "-".
func openInput(name string) (io.Reader, func() error, error) {
	if name == "-" || name == "" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(os.ExpandEnv(name))
	if err != nil {
		return nil, nil, fmt.Errorf("nemesis: opening input: %v", err)
	}
	return f, f.Close, nil
}

// readPairs reads whitespace-separated 'element side' pairs, one per line.
// Blank lines and lines beginning with '#' are skipped.
func readPairs(r io.Reader) (elems, sides []int, err error) {
	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		l := strings.TrimSpace(s.Text())
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		f := strings.Fields(l)
		if len(f) != 2 {
			return nil, nil, fmt.Errorf("nemesis: input line %d: want 'element side', got %q", line, l)
		}
		e, err := strconv.Atoi(f[0])
		if err != nil {
			return nil, nil, fmt.Errorf("nemesis: input line %d: %v", line, err)
		}
		sd, err := strconv.Atoi(f[1])
		if err != nil {
			return nil, nil, fmt.Errorf("nemesis: input line %d: %v", line, err)
		}
		elems = append(elems, e)
		sides = append(sides, sd)
	}
	if err := s.Err(); err != nil {
		return nil, nil, fmt.Errorf("nemesis: reading input: %v", err)
	}
	return elems, sides, nil
}

// Put stores the pairs read from in into side set id of the mesh file at
// path, beginning at position start. It returns the number of pairs
// stored. Warnings, such as for NULL side sets, are logged and are not
// returned as errors.
func Put(path string, id, start int, in io.Reader) (int, error) {
	elems, sides, err := readPairs(in)
	if err != nil {
		return 0, err
	}
	f, err := nemesis.OpenFile(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	f.Log = Log

	if err := f.PutPartialSideSet(id, start, len(elems), elems, sides); err != nil {
		if nemesis.IsWarning(err) {
			return 0, nil
		}
		return 0, err
	}
	Log.WithFields(logrus.Fields{
		"file":    path,
		"sideset": id,
		"start":   start,
		"count":   len(elems),
	}).Info("stored sides")
	return len(elems), f.Close()
}

// Get writes count 'element side' pairs of side set id, beginning at
// position start, to w. A negative count reads through the last side.
func Get(path string, id, start, count int, w io.Writer) error {
	f, err := nemesis.OpenFile(path)
	if err != nil {
		return err
	}
	defer f.Close()
	f.Log = Log

	if count < 0 {
		p, err := f.SideSetParams(id)
		if err != nil {
			return err
		}
		count = p.NumSides - start + 1
	}
	elems, sides, err := f.GetPartialSideSet(id, start, count)
	if err != nil {
		if nemesis.IsWarning(err) {
			return nil
		}
		return err
	}
	bw := bufio.NewWriter(w)
	for i := range elems {
		fmt.Fprintf(bw, "%d %d\n", elems[i], sides[i])
	}
	return bw.Flush()
}

// Info writes a summary of the side sets of the mesh file at path to w.
func Info(path string, w io.Writer) error {
	ff, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("nemesis: opening mesh file: %v", err)
	}
	defer ff.Close()
	r, err := nemesis.NewReader(ff)
	if err != nil {
		return err
	}
	f := r.File()
	f.Log = Log

	p, err := f.Params()
	if err != nil {
		return err
	}
	api := f.Header().GetAttribute("", nemesis.AttAPIVersion)
	fmt.Fprintf(w, "title: %s\napi version: %v\ndimensions: %d\nnodes: %d\nelements: %d\nside sets: %d\n",
		p.Title, api, p.NumDim, p.NumNodes, p.NumElem, len(p.SideSets))
	if len(p.SideSets) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tName\tSides\tDistFact\tDistFactSum\tStatus\tFingerprint")
	for _, ss := range p.SideSets {
		if ss.Null() {
			fmt.Fprintf(tw, "%d\t%s\t0\t0\t-\tnull\t-\n", ss.ID, ss.Name)
			continue
		}
		s, err := r.SideSet(ss.ID)
		if err != nil {
			return err
		}
		dfSum := "-"
		if len(s.DistFact) > 0 {
			dfSum = strconv.FormatFloat(floats.Sum(s.DistFact), 'g', 6, 64)
		}
		fp := hash.Short(struct{ Elems, Sides []int }{s.Elems, s.Sides}, 12)
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\tdefined\t%s\n",
			ss.ID, ss.Name, ss.NumSides, ss.NumDistFact, dfSum, fp)
	}
	return tw.Flush()
}

// Import converts the element boundary conditions of the Gambit neutral
// file at gambitPath into the side sets of a new mesh file at outPath.
func Import(gambitPath, outPath string) error {
	if gambitPath == "" {
		return fmt.Errorf("nemesis: GambitFile must be specified")
	}
	r, err := os.Open(gambitPath)
	if err != nil {
		return fmt.Errorf("nemesis: opening Gambit file: %v", err)
	}
	defer r.Close()
	m, err := gambit.Read(r)
	if err != nil {
		return err
	}
	if len(m.NodeBoundaryNames) > 0 {
		Log.WithField("sets", m.NodeBoundaryNames).Warn("skipping node boundary conditions")
	}

	f, err := nemesis.CreateFile(outPath, m.Params())
	if err != nil {
		return err
	}
	f.Log = Log
	if err := m.Write(f); err != nil {
		f.Close()
		return err
	}
	Log.WithFields(logrus.Fields{
		"file":     outPath,
		"sidesets": len(m.BoundarySets),
	}).Info("imported Gambit boundary conditions")
	return f.Close()
}
