/*
 * data.go, part of mdpost.
 *
 * Copyright 2025 The mdpost Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package lammps

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"

	mdpost "github.com/mdpost/mdpost"
	v3 "github.com/mdpost/mdpost/v3"
)

const dataFormat = "lammps-data"

//Data is the content of a LAMMPS data file that mdpost cares about:
//the box, the atoms and their positions, and the masses of each atom type.
type Data struct {
	Title string
	Box   mdpost.Box
	*mdpost.Topology
	Coords *v3.Matrix
	//Masses[i] is the mass of type i+1. Zero if the file had no Masses section.
	Masses []float64
	//TypeNames[i] is the element of type i+1, if known.
	TypeNames []string
	Style     string //atom style, e.g. "atomic" or "full"
}

//NTypes returns the number of atom types.
func (D *Data) NTypes() int {
	return len(D.Masses)
}

//where the type, charge and x coordinate are in an Atoms line for each atom style,
//and how many fields the line has (without image flags).
type atomsLayout struct {
	typ, q, x, n int
}

var layouts = map[string]atomsLayout{
	"atomic":    {1, -1, 2, 5},
	"charge":    {1, 2, 3, 6},
	"molecular": {2, -1, 3, 6},
	"bond":      {2, -1, 3, 6},
	"angle":     {2, -1, 3, 6},
	"full":      {2, 3, 4, 7},
}

//guessLayout guesses the atom style from the number of fields in an Atoms line,
//when the section header doesn't say it.
func guessLayout(nfields int) (string, bool) {
	switch nfields {
	case 5, 8:
		return "atomic", true
	case 6, 9:
		return "charge", true
	case 7, 10:
		return "full", true
	}
	return "", false
}

//boundsLine parses a "lo hi xlo xhi"-like header line.
func boundsLine(fields []string) (float64, float64, error) {
	lo, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, 0, err
	}
	hi, err := strconv.ParseFloat(fields[1], 64)
	return lo, hi, err
}

//ReadBox scans a LAMMPS data file for the xlo xhi, ylo yhi and zlo zhi bounds, and
//the tilt factors if present, and returns the corresponding box. Nothing else is parsed.
func ReadBox(name string) (mdpost.Box, error) {
	var B mdpost.Box
	f, err := mdpost.Open(name)
	if err != nil {
		return B, err
	}
	defer f.Close()
	s := bufio.NewScanner(f)
	found := 0
	for s.Scan() && found < 3 {
		line := s.Text()
		fields := strings.Fields(line)
		for i, tag := range []string{"xlo xhi", "ylo yhi", "zlo zhi"} {
			if !strings.Contains(line, tag) {
				continue
			}
			if len(fields) < 4 {
				return B, mdpost.NewFileError(dataFormat, name, "ReadBox", nil, "malformed bounds line %q", line)
			}
			B.Lo[i], B.Hi[i], err = boundsLine(fields)
			if err != nil {
				return B, mdpost.NewFileError(dataFormat, name, "ReadBox", err, "bounds line %q", line)
			}
			found++
		}
	}
	if err := s.Err(); err != nil {
		return B, mdpost.NewFileError(dataFormat, name, "ReadBox", err, "reading")
	}
	if found < 3 {
		return B, mdpost.NewFileError(dataFormat, name, "ReadBox", nil, "only %d of the 3 box bounds found", found)
	}
	return B, nil
}

//ReadDataFile reads the LAMMPS data file name. See ReadData.
func ReadDataFile(name string) (*Data, error) {
	f, err := mdpost.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	D, err := ReadData(f, name)
	if err != nil {
		return nil, mdpost.ErrDecorate(err, "ReadDataFile")
	}
	return D, nil
}

//ReadData reads a LAMMPS data file from r. The header (atom and type counts, box bounds and tilts)
//and the Masses and Atoms sections are parsed, other sections are skipped. Atoms are sorted by ID.
//name is only used in error messages.
func ReadData(r io.Reader, name string) (*Data, error) {
	D := new(Data)
	s := bufio.NewScanner(r)
	var (
		natoms, ntypes int
		section        string
		ats            []*mdpost.Atom
		xyz            []float64
		lineno         int
	)
	fail := func(cause error, msg string, args ...any) (*Data, error) {
		return nil, mdpost.NewFileError(dataFormat, name, "ReadData", cause, "line %d: "+msg, append([]any{lineno}, args...)...)
	}
	for s.Scan() {
		lineno++
		raw := s.Text()
		if lineno == 1 {
			D.Title = strings.TrimSpace(raw)
			continue
		}
		line := raw
		comment := ""
		if i := strings.Index(line, "#"); i >= 0 {
			comment = strings.TrimSpace(line[i+1:])
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		//section headers are a single capitalized word or two (e.g. "Pair Coeffs")
		if _, err := strconv.ParseFloat(fields[0], 64); err != nil {
			section = strings.Join(fields, " ")
			if section == "Atoms" {
				D.Style = comment
			}
			continue
		}
		switch section {
		case "":
			var err error
			switch {
			case len(fields) == 3 && fields[1] == "atom" && fields[2] == "types":
				ntypes, err = strconv.Atoi(fields[0])
				D.Masses = make([]float64, ntypes)
				D.TypeNames = make([]string, ntypes)
			case len(fields) == 2 && fields[1] == "atoms":
				natoms, err = strconv.Atoi(fields[0])
			case len(fields) >= 4 && fields[2] == "xlo" && fields[3] == "xhi":
				D.Box.Lo[0], D.Box.Hi[0], err = boundsLine(fields)
			case len(fields) >= 4 && fields[2] == "ylo" && fields[3] == "yhi":
				D.Box.Lo[1], D.Box.Hi[1], err = boundsLine(fields)
			case len(fields) >= 4 && fields[2] == "zlo" && fields[3] == "zhi":
				D.Box.Lo[2], D.Box.Hi[2], err = boundsLine(fields)
			case len(fields) >= 6 && fields[3] == "xy" && fields[4] == "xz" && fields[5] == "yz":
				for i := 0; i < 3 && err == nil; i++ {
					D.Box.Tilt[i], err = strconv.ParseFloat(fields[i], 64)
				}
			}
			if err != nil {
				return fail(err, "header %q", strings.TrimSpace(raw))
			}
		case "Masses":
			t, err := strconv.Atoi(fields[0])
			if err != nil || t < 1 || t > ntypes || len(fields) < 2 {
				return fail(err, "bad Masses line %q", strings.TrimSpace(raw))
			}
			D.Masses[t-1], err = strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return fail(err, "bad mass")
			}
			D.TypeNames[t-1] = comment
			if comment == "" {
				D.TypeNames[t-1] = mdpost.SymbolFromMass(D.Masses[t-1], 0.1)
			}
		case "Atoms":
			if D.Style == "" {
				st, ok := guessLayout(len(fields))
				if !ok {
					return fail(nil, "can't guess the atom style from %d fields", len(fields))
				}
				D.Style = st
			}
			lay, ok := layouts[D.Style]
			if !ok {
				return fail(nil, "unsupported atom style %q", D.Style)
			}
			if len(fields) != lay.n && len(fields) != lay.n+3 {
				return fail(nil, "%d fields in an Atoms line of style %s", len(fields), D.Style)
			}
			at := new(mdpost.Atom)
			var err error
			if at.ID, err = strconv.Atoi(fields[0]); err != nil {
				return fail(err, "atom ID")
			}
			if at.Type, err = strconv.Atoi(fields[lay.typ]); err != nil {
				return fail(err, "atom type")
			}
			if lay.q >= 0 {
				if at.Charge, err = strconv.ParseFloat(fields[lay.q], 64); err != nil {
					return fail(err, "atom charge")
				}
			}
			for k := 0; k < 3; k++ {
				c, err := strconv.ParseFloat(fields[lay.x+k], 64)
				if err != nil {
					return fail(err, "coordinate")
				}
				xyz = append(xyz, c)
			}
			if at.Type >= 1 && at.Type <= ntypes {
				at.Mass = D.Masses[at.Type-1]
				at.Symbol = D.TypeNames[at.Type-1]
			}
			ats = append(ats, at)
		}
	}
	if err := s.Err(); err != nil {
		return fail(err, "reading")
	}
	if natoms > 0 && len(ats) != natoms {
		return fail(nil, "header says %d atoms, %d found", natoms, len(ats))
	}
	if len(ats) == 0 {
		return fail(nil, "no atoms found")
	}
	//masses are known only once the section was read, which could be after Atoms.
	for _, at := range ats {
		if at.Type >= 1 && at.Type <= ntypes && at.Mass == 0 {
			at.Mass = D.Masses[at.Type-1]
			at.Symbol = D.TypeNames[at.Type-1]
		}
	}
	sortAtoms(ats, xyz)
	var err error
	D.Coords, err = v3.NewMatrix(xyz)
	if err != nil {
		return fail(err, "coordinates")
	}
	D.Topology, _ = mdpost.NewTopology(ats)
	return D, nil
}

//sortAtoms sorts ats by ID, moving the coordinates in xyz along.
func sortAtoms(ats []*mdpost.Atom, xyz []float64) {
	idx := make([]int, len(ats))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return ats[idx[i]].ID < ats[idx[j]].ID })
	sorted := make([]*mdpost.Atom, len(ats))
	sxyz := make([]float64, len(xyz))
	for i, j := range idx {
		sorted[i] = ats[j]
		copy(sxyz[3*i:3*i+3], xyz[3*j:3*j+3])
	}
	copy(ats, sorted)
	copy(xyz, sxyz)
}
