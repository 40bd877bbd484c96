/*
 * write.go, part of mdpost.
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
	"fmt"
	"io"
	"math"
	"os"

	mdpost "github.com/mdpost/mdpost"
	v3 "github.com/mdpost/mdpost/v3"
)

//tilts smaller than this are written as zero.
const tiltZero = 1e-10

//WriteData writes D to w as a LAMMPS data file with the atomic atom style.
func WriteData(w io.Writer, D *Data) error {
	if D.Coords == nil || D.Topology == nil || D.Coords.NVecs() != D.Len() {
		return fmt.Errorf("lammps.WriteData: atoms and coordinates don't match")
	}
	b := bufio.NewWriter(w)
	title := D.Title
	if title == "" {
		title = "LAMMPS data file written by mdpost"
	}
	fmt.Fprintf(b, "%s\n\n", title)
	fmt.Fprintf(b, "%d atoms\n", D.Len())
	fmt.Fprintf(b, "%d atom types\n\n", D.NTypes())
	for i, tag := range []string{"xlo xhi", "ylo yhi", "zlo zhi"} {
		fmt.Fprintf(b, "%23.17f %23.17f  %s\n", D.Box.Lo[i], D.Box.Hi[i], tag)
	}
	if D.Box.Triclinic() {
		fmt.Fprintf(b, "%23.17f %23.17f %23.17f  xy xz yz\n", D.Box.Tilt[0], D.Box.Tilt[1], D.Box.Tilt[2])
	}
	if D.NTypes() > 0 {
		fmt.Fprintf(b, "\nMasses\n\n")
		for i, m := range D.Masses {
			name := ""
			if i < len(D.TypeNames) && D.TypeNames[i] != "" {
				name = " # " + D.TypeNames[i]
			}
			fmt.Fprintf(b, "%d %.4f%s\n", i+1, m, name)
		}
	}
	fmt.Fprintf(b, "\nAtoms # atomic\n\n")
	for i := 0; i < D.Len(); i++ {
		at := D.Atom(i)
		c := D.Coords.Vec(i)
		fmt.Fprintf(b, "%8d %3d %23.17f %23.17f %23.17f\n", at.ID, at.Type, c[0], c[1], c[2])
	}
	return b.Flush()
}

//WriteDataFile writes D to the file name. See WriteData.
func WriteDataFile(name string, D *Data) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := WriteData(f, D); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

//restricted returns the lattice vectors of the LAMMPS restricted triclinic
//cell equivalent to cell: a along x, b in the xy plane, c with positive z.
func restricted(cell *v3.Matrix) (*v3.Matrix, [3]float64, error) {
	var tilt [3]float64
	la := cell.Norm(0)
	lb := cell.Norm(1)
	lc := cell.Norm(2)
	if la == 0 || lb == 0 || lc == 0 {
		return nil, tilt, fmt.Errorf("zero-length lattice vector")
	}
	lx := la
	xy := cell.Dot(1, cell, 0) / la
	ly := math.Sqrt(lb*lb - xy*xy)
	xz := cell.Dot(2, cell, 0) / la
	yz := (cell.Dot(1, cell, 2) - xy*xz) / ly
	lz := math.Sqrt(lc*lc - xz*xz - yz*yz)
	if math.IsNaN(ly) || math.IsNaN(lz) || ly == 0 || lz == 0 {
		return nil, tilt, fmt.Errorf("degenerate lattice")
	}
	for i, t := range []float64{xy, xz, yz} {
		if math.Abs(t) > tiltZero {
			tilt[i] = t
		}
	}
	R, _ := v3.NewMatrix([]float64{
		lx, 0, 0,
		tilt[0], ly, 0,
		tilt[1], tilt[2], lz,
	})
	return R, tilt, nil
}

//FromCell builds a LAMMPS data structure, atomic style, for the atoms with the given
//cartesian coordinates and element symbols in a periodic cell whose lattice vectors are
//the rows of cell. The cell is rotated to the LAMMPS restricted triclinic frame and the
//atoms are wrapped into it. Type IDs follow order: the element order[i] gets type i+1,
//and every element in order gets a type even if no atom has it, so that the type IDs
//are the same for all the structures of a system. Atom IDs follow the order of coords.
func FromCell(cell, coords *v3.Matrix, symbols []string, order []string) (*Data, error) {
	if coords.NVecs() != len(symbols) {
		return nil, fmt.Errorf("lammps.FromCell: %d coordinates for %d symbols", coords.NVecs(), len(symbols))
	}
	types := make(map[string]int, len(order))
	D := &Data{Masses: make([]float64, len(order)), TypeNames: make([]string, len(order)), Style: "atomic"}
	for i, s := range order {
		if _, ok := types[s]; ok {
			return nil, fmt.Errorf("lammps.FromCell: element %s repeated in the type order", s)
		}
		m, err := mdpost.Mass(s)
		if err != nil {
			return nil, fmt.Errorf("lammps.FromCell: %w", err)
		}
		types[s] = i + 1
		D.Masses[i] = m
		D.TypeNames[i] = s
	}
	if v3.Volume(cell) == 0 {
		return nil, fmt.Errorf("lammps.FromCell: singular cell")
	}
	//a left-handed cell can't be rotated into the LAMMPS frame.
	a, b, c := cell.Vec(0), cell.Vec(1), cell.Vec(2)
	triple := a[0]*(b[1]*c[2]-b[2]*c[1]) - a[1]*(b[0]*c[2]-b[2]*c[0]) + a[2]*(b[0]*c[1]-b[1]*c[0])
	if triple < 0 {
		return nil, fmt.Errorf("lammps.FromCell: left-handed cell, swap two lattice vectors first")
	}
	R, tilt, err := restricted(cell)
	if err != nil {
		return nil, fmt.Errorf("lammps.FromCell: %w", err)
	}
	frac := v3.Zeros(coords.NVecs())
	if err := frac.Frac(coords, cell); err != nil {
		return nil, fmt.Errorf("lammps.FromCell: %w", err)
	}
	frac.Wrap()
	D.Coords = v3.Zeros(coords.NVecs())
	D.Coords.Cart(frac, R)
	ats := make([]*mdpost.Atom, len(symbols))
	for i, s := range symbols {
		t, ok := types[s]
		if !ok {
			return nil, fmt.Errorf("lammps.FromCell: element %s has no type assigned", s)
		}
		ats[i] = &mdpost.Atom{ID: i + 1, Type: t, Symbol: s, Mass: D.Masses[t-1]}
	}
	D.Topology, _ = mdpost.NewTopology(ats)
	D.Box = mdpost.Box{Hi: [3]float64{R.At(0, 0), R.At(1, 1), R.At(2, 2)}, Tilt: tilt}
	return D, nil
}
