/*
 * v3_test.go, part of mdpost.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatrix(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(Te, err)
	assert.Equal(Te, 2, A.NVecs())
	assert.Equal(Te, [3]float64{4, 5, 6}, A.Vec(1))

	_, err = NewMatrix([]float64{1, 2, 3, 4})
	require.Error(Te, err)
}

func TestScale(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	A.Scale(2, A)
	assert.Equal(Te, [3]float64{2, 4, 6}, A.Vec(0))
	assert.Equal(Te, [3]float64{8, 10, 12}, A.Vec(1))
	B := Zeros(2)
	B.Scale(0.5, A.Dense)
	assert.Equal(Te, [3]float64{4, 5, 6}, B.Vec(1))
}

func TestVolume(Te *testing.T) {
	cubic, _ := NewMatrix([]float64{
		2, 0, 0,
		0, 3, 0,
		0, 0, 4,
	})
	assert.InDelta(Te, 24.0, Volume(cubic), 1e-12)

	//a left-handed cell still has a positive volume.
	left, _ := NewMatrix([]float64{
		0, 3, 0,
		2, 0, 0,
		0, 0, 4,
	})
	assert.InDelta(Te, 24.0, Volume(left), 1e-12)
}

func TestFracCart(Te *testing.T) {
	cell, _ := NewMatrix([]float64{
		5, 0, 0,
		1, 4, 0,
		0.5, 0.5, 6,
	})
	cart, _ := NewMatrix([]float64{
		1, 1, 1,
		3.2, 2.1, 5.5,
	})
	frac := Zeros(2)
	require.NoError(Te, frac.Frac(cart, cell))
	back := Zeros(2)
	back.Cart(frac, cell)
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(Te, cart.At(i, j), back.At(i, j), 1e-12)
		}
	}
	//the first lattice vector is fractional (1,0,0)
	a := Zeros(1)
	require.NoError(Te, a.Frac(cell.VecView(0), cell))
	assert.InDeltaSlice(Te, []float64{1, 0, 0}, a.RawRowView(0), 1e-12)
}

func TestSingularCell(Te *testing.T) {
	cell, _ := NewMatrix([]float64{
		1, 0, 0,
		2, 0, 0,
		0, 0, 1,
	})
	F := Zeros(1)
	pt, _ := NewMatrix([]float64{1, 1, 1})
	require.Error(Te, F.Frac(pt, cell))
}

func TestWrap(Te *testing.T) {
	F, _ := NewMatrix([]float64{1.25, -0.25, 0.5})
	F.Wrap()
	assert.InDeltaSlice(Te, []float64{0.25, 0.75, 0.5}, F.RawRowView(0), 1e-12)
}
