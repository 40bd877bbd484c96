/*
 * atom.go, part of mdpost.
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

package mdpost

import "fmt"

//Atom contains the information of one atom read from a structure file, except for
//the coordinates, which are kept in a v3.Matrix.
type Atom struct {
	ID     int
	Type   int //the LAMMPS type ID, 0 if unknown.
	Symbol string
	Mass   float64
	Charge float64
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	n := *A
	return &n
}

/*****Topology type***/

//Topology contains the atoms of a structure, i.e. everything that does not change along a trajectory.
type Topology struct {
	Atoms []*Atom
}

//NewTopology returns a topology with the given atoms. It returns an error if ats is nil.
func NewTopology(ats []*Atom) (*Topology, error) {
	if ats == nil {
		return nil, fmt.Errorf("Supplied a nil slice of atoms")
	}
	return &Topology{Atoms: ats}, nil
}

//Atom returns the Atom corresponding to the index i
//of the Atom slice in the Topology. Panics if
//out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() {
		panic("Topology: Requested Atom out of bounds")
	}
	return T.Atoms[i]
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Atoms)
}

//TypeIndexes returns the indexes of the atoms in A with type t.
func TypeIndexes(A Atomer, t int) []int {
	ret := make([]int, 0, A.Len()/2)
	for i := 0; i < A.Len(); i++ {
		if A.Atom(i).Type == t {
			ret = append(ret, i)
		}
	}
	return ret
}

//SymbolIndexes returns the indexes of the atoms in A with the element symbol s.
func SymbolIndexes(A Atomer, s string) []int {
	ret := make([]int, 0, A.Len()/2)
	for i := 0; i < A.Len(); i++ {
		if A.Atom(i).Symbol == s {
			ret = append(ret, i)
		}
	}
	return ret
}
