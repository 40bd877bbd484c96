/*
 * main_test.go, part of mdpost.
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

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mdpost/mdpost/config"
	"github.com/mdpost/mdpost/lammps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cubic = `Li3OCl antiperovskite
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

const tilted = `triclinic
1.0
  4.0 0.0 0.0
  1.0 4.0 0.0
  0.0 0.0 5.0
Li Br
1 1
Cartesian
  1.0 1.0 1.0
  2.5 2.0 2.5
`

func convert(Te *testing.T, poscar string) *lammps.Data {
	Te.Helper()
	dir := Te.TempDir()
	c := config.Default()
	v := &c.VASP2LAMMPS
	v.Poscar = filepath.Join(dir, "POSCAR")
	v.Out = filepath.Join(dir, "lammps.data")
	require.NoError(Te, os.WriteFile(v.Poscar, []byte(poscar), 0o644))
	require.NoError(Te, run(c))
	D, err := lammps.ReadDataFile(v.Out)
	require.NoError(Te, err)
	return D
}

func TestRunCubic(Te *testing.T) {
	D := convert(Te, cubic)
	require.Equal(Te, 5, D.Len())
	assert.Equal(Te, 4, D.NTypes())
	assert.Equal(Te, [3]float64{4, 4, 4}, D.Box.Hi)
	assert.False(Te, D.Box.Triclinic())
	var types []int
	for i := 0; i < D.Len(); i++ {
		types = append(types, D.Atom(i).Type)
	}
	assert.Equal(Te, []int{1, 1, 1, 3, 2}, types)
	assert.InDeltaSlice(Te, []float64{2, 2, 2}, D.Coords.RawRowView(3), 1e-9)
	require.Len(Te, D.Masses, 4)
	assert.InDelta(Te, 6.94, D.Masses[0], 1e-3)
}

func TestRunTriclinic(Te *testing.T) {
	D := convert(Te, tilted)
	require.Equal(Te, 2, D.Len())
	assert.True(Te, D.Box.Triclinic())
	assert.InDelta(Te, 1.0, D.Box.Tilt[0], 1e-9)
	assert.InDelta(Te, 80.0, D.Box.Volume(), 1e-9)
	assert.Equal(Te, 4, D.Atom(1).Type)
}

func TestRunUnknownSpecies(Te *testing.T) {
	dir := Te.TempDir()
	c := config.Default()
	c.VASP2LAMMPS.Poscar = filepath.Join(dir, "POSCAR")
	c.VASP2LAMMPS.Out = filepath.Join(dir, "lammps.data")
	c.VASP2LAMMPS.Order = []string{"Li", "Cl"}
	require.NoError(Te, os.WriteFile(c.VASP2LAMMPS.Poscar, []byte(cubic), 0o644))
	assert.Error(Te, run(c))
}
