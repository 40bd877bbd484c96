/*
 * gocoords.go, part of mdpost.
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

package v3

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

//A cell is a 3x3 Matrix where each vector is one of the lattice vectors a, b and c.

func checkCell(cell *Matrix) {
	if r, c := cell.Dims(); r != 3 || c != 3 {
		panic(ErrNotCell)
	}
}

//Volume returns the volume of the cell, i.e. the absolute value of the
//determinant of the matrix of lattice vectors.
func Volume(cell *Matrix) float64 {
	checkCell(cell)
	return math.Abs(mat.Det(cell.Dense))
}

//Frac puts in the receiver the fractional coordinates of the cartesian coordinates
//in A, for the given cell. It returns an error if the cell is singular.
func (F *Matrix) Frac(A, cell *Matrix) error {
	checkCell(cell)
	inv := mat.NewDense(3, 3, nil)
	if err := inv.Inverse(cell.Dense); err != nil {
		return Error{"Can't invert cell: " + err.Error(), []string{"Frac"}, true}
	}
	F.Mul(A.Dense, inv)
	return nil
}

//Cart puts in the receiver the cartesian coordinates corresponding to the fractional
//coordinates in A, for the given cell.
func (F *Matrix) Cart(A, cell *Matrix) {
	checkCell(cell)
	F.Mul(A.Dense, cell.Dense)
}

//SubVec subtracts the vector vec from every vector of A, putting the result in the receiver.
func (F *Matrix) SubVec(A *Matrix, vec [3]float64) {
	ar := A.NVecs()
	if F.NVecs() != ar {
		panic(ErrShape)
	}
	for i := 0; i < ar; i++ {
		for j := 0; j < 3; j++ {
			F.Set(i, j, A.At(i, j)-vec[j])
		}
	}
}

//Wrap puts every fractional coordinate of the receiver in the [0,1) interval.
func (F *Matrix) Wrap() {
	r := F.NVecs()
	for i := 0; i < r; i++ {
		for j := 0; j < 3; j++ {
			v := F.At(i, j)
			v -= math.Floor(v)
			if v >= 1 {
				v = 0
			}
			F.Set(i, j, v)
		}
	}
}
