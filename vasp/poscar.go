/*
 * poscar.go, part of mdpost.
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

//Package vasp reads VASP structure files (POSCAR/CONTCAR, VASP 5 format).
package vasp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	mdpost "github.com/mdpost/mdpost"
	v3 "github.com/mdpost/mdpost/v3"
)

const format = "POSCAR"

//ErrSpeciesNotFound is returned when a species is requested that the structure doesn't contain.
var ErrSpeciesNotFound = errors.New("species not found")

//Poscar is a periodic structure as read from a POSCAR file.
type Poscar struct {
	Comment string
	//Scale is the scaling factor as given in the file. Negative values are the volume of the cell.
	Scale float64
	//Lattice has the lattice vectors a, b and c, in Angstrom, as rows, with the scale already applied.
	Lattice *v3.Matrix
	Species []string
	Counts  []int
	//Coords are the cartesian coordinates in Angstrom, in the order of the file.
	Coords    *v3.Matrix
	Selective bool
}

//Len returns the total number of atoms.
func (P *Poscar) Len() int {
	n := 0
	for _, c := range P.Counts {
		n += c
	}
	return n
}

//Volume returns the volume of the cell in cubic Angstrom.
func (P *Poscar) Volume() float64 {
	return v3.Volume(P.Lattice)
}

//Count returns the number of atoms of the given species.
func (P *Poscar) Count(species string) (int, error) {
	for i, s := range P.Species {
		if s == species {
			return P.Counts[i], nil
		}
	}
	return 0, fmt.Errorf("vasp: %s not in %v: %w", species, P.Species, ErrSpeciesNotFound)
}

//Symbols returns the element symbol of each atom, in the order of the file.
func (P *Poscar) Symbols() []string {
	ret := make([]string, 0, P.Len())
	for i, s := range P.Species {
		for j := 0; j < P.Counts[i]; j++ {
			ret = append(ret, s)
		}
	}
	return ret
}

//ReadFile reads the POSCAR file name, which can be compressed.
func ReadFile(name string) (*Poscar, error) {
	f, err := mdpost.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	P, err := Read(f, name)
	if err != nil {
		return nil, mdpost.ErrDecorate(err, "ReadFile")
	}
	return P, nil
}

//Read reads a POSCAR in the VASP 5 format (with the species line) from r.
//name is only used in error messages.
func Read(r io.Reader, name string) (*Poscar, error) {
	s := bufio.NewScanner(r)
	lineno := 0
	fail := func(cause error, msg string, args ...any) (*Poscar, error) {
		return nil, mdpost.NewFileError(format, name, "Read", cause, "line %d: "+msg, append([]any{lineno}, args...)...)
	}
	next := func() ([]string, bool) {
		for s.Scan() {
			lineno++
			if f := strings.Fields(s.Text()); len(f) > 0 {
				return f, true
			}
		}
		return nil, false
	}
	P := new(Poscar)
	if !s.Scan() {
		return fail(s.Err(), "empty file")
	}
	lineno++
	P.Comment = strings.TrimSpace(s.Text())

	f, ok := next()
	if !ok {
		return fail(s.Err(), "no scaling factor")
	}
	var err error
	if P.Scale, err = strconv.ParseFloat(f[0], 64); err != nil || P.Scale == 0 {
		return fail(err, "bad scaling factor %q", f[0])
	}
	lat := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		f, ok := next()
		if !ok || len(f) < 3 {
			return fail(s.Err(), "lattice vector %d missing", i+1)
		}
		for _, v := range f[:3] {
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fail(err, "lattice vector %d", i+1)
			}
			lat = append(lat, x)
		}
	}
	P.Lattice, _ = v3.NewMatrix(lat)
	scale := P.Scale
	if scale < 0 {
		v := v3.Volume(P.Lattice)
		if v == 0 {
			return fail(nil, "singular lattice")
		}
		scale = math.Cbrt(-P.Scale / v)
	}
	P.Lattice.Scale(scale, P.Lattice)

	if f, ok = next(); !ok {
		return fail(s.Err(), "no species line")
	}
	if _, err := strconv.Atoi(f[0]); err == nil {
		return fail(nil, "no species line, VASP 4 files are not supported")
	}
	P.Species = f
	if f, ok = next(); !ok || len(f) != len(P.Species) {
		return fail(s.Err(), "the counts line must have one number per species")
	}
	for _, v := range f {
		c, err := strconv.Atoi(v)
		if err != nil || c < 0 {
			return fail(err, "bad atom count %q", v)
		}
		P.Counts = append(P.Counts, c)
	}
	if f, ok = next(); !ok {
		return fail(s.Err(), "no coordinate mode line")
	}
	if strings.HasPrefix(strings.ToUpper(f[0]), "S") {
		P.Selective = true
		if f, ok = next(); !ok {
			return fail(s.Err(), "no coordinate mode line")
		}
	}
	var direct bool
	switch strings.ToUpper(f[0][:1]) {
	case "D":
		direct = true
	case "C", "K":
	default:
		return fail(nil, "unknown coordinate mode %q", f[0])
	}
	n := P.Len()
	xyz := make([]float64, 0, 3*n)
	for i := 0; i < n; i++ {
		f, ok := next()
		if !ok || len(f) < 3 {
			return fail(s.Err(), "%d atoms expected, %d found", n, i)
		}
		for _, v := range f[:3] {
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fail(err, "coordinates of atom %d", i+1)
			}
			xyz = append(xyz, x)
		}
	}
	if err := s.Err(); err != nil {
		return fail(err, "reading")
	}
	if n == 0 {
		return fail(nil, "no atoms")
	}
	C, _ := v3.NewMatrix(xyz)
	if direct {
		P.Coords = v3.Zeros(n)
		P.Coords.Cart(C, P.Lattice)
	} else {
		C.Scale(scale, C)
		P.Coords = C
	}
	return P, nil
}
