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
	"strings"
	"testing"

	"github.com/mdpost/mdpost/config"
	"github.com/mdpost/mdpost/traj/stf"
	v3 "github.com/mdpost/mdpost/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const data = `Li, Cl and O

3 atoms
3 atom types

0 10 xlo xhi
0 10 ylo yhi
0 10 zlo zhi

Atoms # atomic

1 1 1.0 1.0 1.0
2 2 5.0 5.0 5.0
3 3 8.0 2.0 5.0
`

const dump = `ITEM: TIMESTEP
0
ITEM: NUMBER OF ATOMS
3
ITEM: BOX BOUNDS pp pp pp
0.0 10.0
0.0 10.0
0.0 10.0
ITEM: ATOMS id type x y z
1 1 1.0 1.0 1.0
2 2 5.0 5.0 5.0
3 3 8.0 2.0 5.0
ITEM: TIMESTEP
50
ITEM: NUMBER OF ATOMS
3
ITEM: BOX BOUNDS pp pp pp
0.0 10.0
0.0 10.0
0.0 10.0
ITEM: ATOMS id type x y z
1 1 1.5 1.25 1.0
2 2 5.0 5.0 5.0
3 3 8.0 2.0 5.0
`

func TestRun(Te *testing.T) {
	dir := Te.TempDir()
	c := config.Default()
	m := &c.Migration
	m.DPI = 72
	m.Scale = 2
	m.Data = filepath.Join(dir, "lammps.data")
	m.Traj = filepath.Join(dir, "traj_all.lammpstrj")
	m.Plot = filepath.Join(dir, "Li_XY_fulltrajectory_scaled.png")
	m.Cache = filepath.Join(dir, "li.stf")
	require.NoError(Te, os.WriteFile(m.Data, []byte(data), 0o644))
	require.NoError(Te, os.WriteFile(m.Traj, []byte(dump), 0o644))
	require.NoError(Te, run(c))

	png, err := os.ReadFile(m.Plot)
	require.NoError(Te, err)
	assert.True(Te, strings.HasPrefix(string(png), "\x89PNG"))

	//the cache keeps the unscaled Li coordinates, the box and the steps.
	S, err := stf.New(m.Cache)
	require.NoError(Te, err)
	defer S.Close()
	assert.Equal(Te, 1, S.Len())
	assert.Equal(Te, "false", S.Header["unwrapped"])
	coords := v3.Zeros(1)
	box := make([]float64, 3)
	require.NoError(Te, S.Next(coords, box))
	require.NoError(Te, S.Next(coords, box))
	assert.Equal(Te, 50, S.Timestep())
	assert.InDeltaSlice(Te, []float64{10, 10, 10}, box, 1e-9)
	assert.InDeltaSlice(Te, []float64{1.5, 1.25, 1}, coords.RawRowView(0), 1e-2)
}
