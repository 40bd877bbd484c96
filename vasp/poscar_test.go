/*
 * poscar_test.go, part of mdpost.
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

package vasp

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const li3ocl = `Li3OCl antiperovskite
   2.0
     2.0 0.0 0.0
     0.0 2.0 0.0
     0.0 0.0 2.0
   Li  O  Cl
   3   1  1
Direct
  0.5 0.5 0.0
  0.5 0.0 0.5
  0.0 0.5 0.5
  0.5 0.5 0.5
  0.0 0.0 0.0
`

func TestRead(Te *testing.T) {
	P, err := Read(strings.NewReader(li3ocl), "POSCAR")
	require.NoError(Te, err)
	assert.Equal(Te, "Li3OCl antiperovskite", P.Comment)
	assert.Equal(Te, []string{"Li", "O", "Cl"}, P.Species)
	assert.Equal(Te, 5, P.Len())
	assert.InDelta(Te, 64.0, P.Volume(), 1e-10)
	n, err := P.Count("Li")
	require.NoError(Te, err)
	assert.Equal(Te, 3, n)
	assert.Equal(Te, []string{"Li", "Li", "Li", "O", "Cl"}, P.Symbols())
	assert.Equal(Te, [3]float64{2, 2, 0}, P.Coords.Vec(0))
	assert.Equal(Te, [3]float64{2, 2, 2}, P.Coords.Vec(3))

	_, err = P.Count("Na")
	assert.True(Te, errors.Is(err, ErrSpeciesNotFound))
}

func TestReadNegativeScale(Te *testing.T) {
	//a negative scaling factor is the volume of the cell.
	neg := strings.Replace(li3ocl, "   2.0\n", "  -27.0\n", 1)
	P, err := Read(strings.NewReader(neg), "POSCAR")
	require.NoError(Te, err)
	assert.InDelta(Te, 27.0, P.Volume(), 1e-9)
	assert.InDelta(Te, 3.0, P.Lattice.At(0, 0), 1e-12)
}

func TestReadSelectiveCartesian(Te *testing.T) {
	cart := `triclinic
1.0
  4.0 0.0 0.0
  1.0 4.0 0.0
  0.0 0.0 5.0
Li Br
1 1
Selective dynamics
Cartesian
  1.0 1.0 1.0 T T F
  2.5 2.0 2.5 F F F
`
	P, err := Read(strings.NewReader(cart), "POSCAR")
	require.NoError(Te, err)
	assert.True(Te, P.Selective)
	assert.InDelta(Te, 80.0, P.Volume(), 1e-10)
	assert.Equal(Te, [3]float64{2.5, 2, 2.5}, P.Coords.Vec(1))

	//the scaling factor applies to the lattice and to Cartesian coordinates in place.
	scaled := strings.Replace(cart, "triclinic\n1.0\n", "triclinic\n2.0\n", 1)
	P, err = Read(strings.NewReader(scaled), "POSCAR")
	require.NoError(Te, err)
	assert.InDelta(Te, 640.0, P.Volume(), 1e-9)
	assert.Equal(Te, [3]float64{2, 8, 0}, P.Lattice.Vec(1))
	assert.Equal(Te, [3]float64{5, 4, 5}, P.Coords.Vec(1))
}

func TestReadErrors(Te *testing.T) {
	for name, content := range map[string]string{
		"empty":      "",
		"vasp4":      strings.Replace(li3ocl, "   Li  O  Cl\n", "", 1),
		"counts":     strings.Replace(li3ocl, "   3   1  1\n", "   3   1\n", 1),
		"truncated":  li3ocl[:strings.LastIndex(li3ocl, "  0.0 0.0 0.0")],
		"mode":       strings.Replace(li3ocl, "Direct", "Fractional", 1),
		"zero scale": strings.Replace(li3ocl, "   2.0\n", "   0.0\n", 1),
	} {
		_, err := Read(strings.NewReader(content), name)
		assert.Error(Te, err, name)
	}
}
