/*
 * box.go, part of mdpost.
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

//Box is a LAMMPS-style simulation box: lower and upper bounds along x, y and z
//in Angstrom, plus the xy, xz and yz tilt factors for triclinic cells.
type Box struct {
	Lo   [3]float64
	Hi   [3]float64
	Tilt [3]float64
}

//Lengths returns the edge lengths of the box along x, y and z, in Angstrom.
func (B Box) Lengths() [3]float64 {
	var l [3]float64
	for i := range l {
		l[i] = B.Hi[i] - B.Lo[i]
	}
	return l
}

//Volume returns the volume of the box in cubic Angstrom. Tilts do not change
//the volume of a restricted triclinic LAMMPS cell.
func (B Box) Volume() float64 {
	l := B.Lengths()
	return l[0] * l[1] * l[2]
}

//CrossSection returns the area, in square Angstrom, of the face normal to
//the given axis (0 for x, 1 for y, 2 for z).
func (B Box) CrossSection(axis int) float64 {
	l := B.Lengths()
	switch axis {
	case 0:
		return l[1] * l[2]
	case 1:
		return l[0] * l[2]
	case 2:
		return l[0] * l[1]
	default:
		panic("Box: axis out of range")
	}
}

//Vectors returns the a, b and c cell vectors of the box, one after the other.
//In a LAMMPS cell a is along x and b is in the xy plane.
func (B Box) Vectors() [9]float64 {
	l := B.Lengths()
	return [9]float64{
		l[0], 0, 0,
		B.Tilt[0], l[1], 0,
		B.Tilt[1], B.Tilt[2], l[2],
	}
}

//Triclinic returns true if any of the tilt factors is not zero.
func (B Box) Triclinic() bool {
	return B.Tilt[0] != 0 || B.Tilt[1] != 0 || B.Tilt[2] != 0
}

//Meters returns the edge lengths of the box, in meters, with the x, y and z
//lengths multiplied by the corresponding replication factor. This is what one needs
//when the structure file describes a unit that was replicated in the actual run.
func (B Box) Meters(replicas [3]int) [3]float64 {
	l := B.Lengths()
	for i := range l {
		r := replicas[i]
		if r <= 0 {
			r = 1
		}
		l[i] *= float64(r) * Angstrom
	}
	return l
}
