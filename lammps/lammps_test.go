/*
 * lammps_test.go, part of mdpost.
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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	mdpost "github.com/mdpost/mdpost"
	v3 "github.com/mdpost/mdpost/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dataFile = `LAMMPS data file via write_data

4 atoms
3 atom types

0.0 10.5 xlo xhi
-1.25 4.75 ylo yhi
0 7 zlo zhi

Masses

1 6.941 # Li
2 35.453
3 15.9994

Atoms # atomic

3 2 5.0 1.0 2.0 0 0 0
1 1 0.5 0.5 0.5 0 0 0
4 3 9.0 3.0 6.5 0 0 1
2 1 1.5 2.5 3.5 0 0 0

Velocities

1 0 0 0
2 0 0 0
3 0 0 0
4 0 0 0
`

func writeTemp(Te *testing.T, name, content string) string {
	Te.Helper()
	p := filepath.Join(Te.TempDir(), name)
	require.NoError(Te, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestReadBox(Te *testing.T) {
	B, err := ReadBox(writeTemp(Te, "lammps.data", dataFile))
	require.NoError(Te, err)
	assert.Equal(Te, [3]float64{0, -1.25, 0}, B.Lo)
	assert.Equal(Te, [3]float64{10.5, 4.75, 7}, B.Hi)
	assert.Equal(Te, [3]float64{10.5, 6, 7}, B.Lengths())
	assert.InDelta(Te, 6*7.0, B.CrossSection(0), 1e-12)

	_, err = ReadBox(writeTemp(Te, "bad.data", "title\n\n0 1 xlo xhi\n0 1 ylo yhi\n"))
	assert.Error(Te, err)
}

func TestReadData(Te *testing.T) {
	D, err := ReadData(strings.NewReader(dataFile), "lammps.data")
	require.NoError(Te, err)
	assert.Equal(Te, "atomic", D.Style)
	assert.Equal(Te, 4, D.Len())
	assert.Equal(Te, 3, D.NTypes())
	assert.Equal(Te, []string{"Li", "Cl", "O"}, D.TypeNames)
	for i := 0; i < D.Len(); i++ {
		assert.Equal(Te, i+1, D.Atom(i).ID, "atoms must be sorted by ID")
	}
	assert.Equal(Te, [3]float64{0.5, 0.5, 0.5}, D.Coords.Vec(0))
	assert.Equal(Te, [3]float64{9, 3, 6.5}, D.Coords.Vec(3))
	assert.Equal(Te, "Cl", D.Atom(2).Symbol)
	assert.Equal(Te, []int{0, 1}, mdpost.TypeIndexes(D, 1))

	x, y := TypeXY(D, 1, 2)
	assert.Equal(Te, []float64{1, 3}, x)
	assert.Equal(Te, []float64{1, 5}, y)
}

func TestReadDataFull(Te *testing.T) {
	full := "title\n\n2 atoms\n1 atom types\n0 5 xlo xhi\n0 5 ylo yhi\n0 5 zlo zhi\n\nAtoms # full\n\n1 1 1 -0.5 1 2 3\n2 1 1 0.5 4 4 4\n"
	D, err := ReadData(strings.NewReader(full), "full.data")
	require.NoError(Te, err)
	assert.Equal(Te, -0.5, D.Atom(0).Charge)
	assert.Equal(Te, [3]float64{4, 4, 4}, D.Coords.Vec(1))

	//image flags after the coordinates, with the style guessed from the field count.
	images := "title\n\n2 atoms\n1 atom types\n0 5 xlo xhi\n0 5 ylo yhi\n0 5 zlo zhi\n\nAtoms\n\n1 1 1 2 3 0 1 -1\n2 1 4 4 4 2 0 0\n"
	D, err = ReadData(strings.NewReader(images), "images.data")
	require.NoError(Te, err)
	assert.Equal(Te, [3]float64{1, 2, 3}, D.Coords.Vec(0))
	assert.Equal(Te, [3]float64{4, 4, 4}, D.Coords.Vec(1))

	_, err = ReadData(strings.NewReader("title\n\n3 atoms\n\nAtoms\n\n1 1 0 0 0\n"), "short.data")
	assert.Error(Te, err)
}

func TestChunkProfile(Te *testing.T) {
	chunks := `# Chunk-averaged data for fix tp and group all
# Timestep Number-of-chunks Total-count
# Chunk Coord1 Ncount v_temp
1000 3 300
  1 0.5 100 300.0
  2 1.5 100 310.0
  3 2.5 100 320.0
2000 3 300
  1 0.5 100 302.0
  2 1.5 100 312.0
  3 2.5 100 318.0
  3 2.5 100 325.0
`
	P, err := ReadChunkProfile(strings.NewReader(chunks), "temp_profile.dat", ChunkOptions{})
	require.NoError(Te, err)
	assert.Equal(Te, []int{1, 2, 3}, P.IDs)
	assert.Equal(Te, []int{2, 2, 3}, P.Samples)
	want := []float64{301, 311, (320.0 + 318 + 325) / 3}
	if diff := cmp.Diff(want, P.Values, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		Te.Errorf("chunk means mismatch (-want +got):\n%s", diff)
	}

	_, err = ReadChunkProfile(strings.NewReader("# nothing\n"), "empty.dat", ChunkOptions{})
	assert.Error(Te, err)
}

func TestChunkProfileGaps(Te *testing.T) {
	P, err := ReadChunkProfile(strings.NewReader("1 0 0 5\n4 0 0 7\n"), "gaps.dat", ChunkOptions{})
	require.NoError(Te, err)
	assert.Equal(Te, []int{1, 4}, P.IDs)
	assert.Equal(Te, []float64{5, 7}, P.Values)
}

const dumpFile = `ITEM: TIMESTEP
0
ITEM: NUMBER OF ATOMS
3
ITEM: BOX BOUNDS pp pp pp
0.0 10.0
0.0 10.0
0.0 10.0
ITEM: ATOMS id type x y z
2 2 5.0 5.0 5.0
3 1 9.5 1.0 1.0
1 1 1.0 2.0 3.0
ITEM: TIMESTEP
100
ITEM: NUMBER OF ATOMS
3
ITEM: BOX BOUNDS pp pp pp
0.0 10.0
0.0 10.0
0.0 10.0
ITEM: ATOMS id type x y z
1 1 1.5 2.0 3.0
2 2 5.0 5.0 5.0
3 1 0.5 1.0 1.0
`

func TestDump(Te *testing.T) {
	D, err := NewDump(writeTemp(Te, "traj_all.lammpstrj", dumpFile), DumpOptions{Type: 1})
	require.NoError(Te, err)
	require.True(Te, D.Readable())
	assert.Equal(Te, 2, D.Len())
	assert.Equal(Te, []int{1, 3}, D.IDs())
	assert.False(Te, D.Unwrapped())

	coords := v3.Zeros(D.Len())
	box := make([]float64, 3)
	require.NoError(Te, D.Next(coords, box))
	assert.Equal(Te, 0, D.Timestep())
	assert.Equal(Te, []float64{10, 10, 10}, box)
	assert.Equal(Te, [3]float64{1, 2, 3}, coords.Vec(0))
	assert.Equal(Te, [3]float64{9.5, 1, 1}, coords.Vec(1))

	require.NoError(Te, D.Next(coords))
	assert.Equal(Te, 100, D.Timestep())
	assert.Equal(Te, [3]float64{1.5, 2, 3}, coords.Vec(0))
	assert.Equal(Te, [3]float64{0.5, 1, 1}, coords.Vec(1))

	err = D.Next(coords)
	require.Error(Te, err)
	assert.True(Te, mdpost.IsLastFrame(err))
	assert.False(Te, D.Readable())
}

func TestDumpScaledTriclinic(Te *testing.T) {
	dump := `ITEM: TIMESTEP
5
ITEM: NUMBER OF ATOMS
1
ITEM: BOX BOUNDS xy xz yz pp pp pp
-1.0 10.0 -1.0
0.0 8.0 0.0
0.0 6.0 0.0
ITEM: ATOMS id type xs ys zs
1 1 0.5 0.5 0.5
`
	D, err := NewDumpReader(strings.NewReader(dump), "scaled", DumpOptions{})
	require.NoError(Te, err)
	coords := v3.Zeros(1)
	cell := make([]float64, 9)
	require.NoError(Te, D.Next(coords, cell))
	assert.Equal(Te, []float64{10, 0, 0, -1, 8, 0, 0, 0, 6}, cell)
	assert.Equal(Te, [3]float64{0, 0, 0}, D.Box().Lo)
	assert.Equal(Te, [3]float64{10, 8, 6}, D.Box().Hi)
	assert.Equal(Te, [3]float64{-1, 0, 0}, D.Box().Tilt)
	assert.Equal(Te, [3]float64{4.5, 4, 3}, coords.Vec(0))
}

func TestDumpErrors(Te *testing.T) {
	_, err := NewDumpReader(strings.NewReader(""), "empty", DumpOptions{})
	assert.Error(Te, err)
	_, err = NewDumpReader(strings.NewReader(dumpFile), "nolist", DumpOptions{Type: 7})
	assert.Error(Te, err)
	_, err = NewDumpReader(strings.NewReader(dumpFile), "cols", DumpOptions{Columns: []string{"xu", "yu", "zu"}})
	assert.Error(Te, err)

	truncated := dumpFile[:len(dumpFile)-len("3 1 0.5 1.0 1.0\n")]
	D, err := NewDumpReader(strings.NewReader(truncated), "truncated", DumpOptions{})
	require.NoError(Te, err)
	require.NoError(Te, D.Next(nil), "the first frame is complete")
	err = D.Next(nil)
	require.Error(Te, err)
	assert.False(Te, mdpost.IsLastFrame(err))
}

func TestXYPaths(Te *testing.T) {
	D, err := NewDumpReader(strings.NewReader(dumpFile), "xy", DumpOptions{Type: 1, Columns: []string{"x", "y", "z"}})
	require.NoError(Te, err)
	var steps []int
	paths, err := XYPaths(D, 2, func(ts int, _ *v3.Matrix) error {
		steps = append(steps, ts)
		return nil
	})
	require.NoError(Te, err)
	assert.Equal(Te, []int{0, 100}, steps)
	require.Len(Te, paths, 2)
	assert.Equal(Te, 1, paths[0].ID)
	assert.Equal(Te, []float64{2, 3}, paths[0].X)
	assert.Equal(Te, []float64{4, 4}, paths[0].Y)
	assert.Equal(Te, 3, paths[1].ID)
	assert.Equal(Te, []float64{19, 1}, paths[1].X)
}

func TestFromCell(Te *testing.T) {
	//a rotated cubic cell: a along y, b along -x.
	cell, _ := v3.NewMatrix([]float64{
		0, 4, 0,
		-4, 0, 0,
		0, 0, 4,
	})
	coords, _ := v3.NewMatrix([]float64{
		0, 2, 0,
		-1, 1, 5,
	})
	D, err := FromCell(cell, coords, []string{"Li", "O"}, []string{"Li", "Cl", "O", "Br"})
	require.NoError(Te, err)
	assert.Equal(Te, 4, D.NTypes())
	assert.Equal(Te, [3]float64{4, 4, 4}, D.Box.Hi)
	assert.False(Te, D.Box.Triclinic())
	assert.Equal(Te, 3, D.Atom(1).Type)
	want := []float64{2, 0, 0, 1, 1, 1}
	if diff := cmp.Diff(want, D.Coords.RawMatrix().Data, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		Te.Errorf("wrapped coordinates mismatch (-want +got):\n%s", diff)
	}

	_, err = FromCell(cell, coords, []string{"Li", "Na"}, []string{"Li", "Cl", "O", "Br"})
	assert.Error(Te, err)
	left, _ := v3.NewMatrix([]float64{4, 0, 0, 0, 0, 4, 0, 4, 0})
	_, err = FromCell(left, coords, []string{"Li", "O"}, []string{"Li", "O"})
	assert.Error(Te, err)
}

func TestFromCellTriclinic(Te *testing.T) {
	cell, _ := v3.NewMatrix([]float64{
		3, 0, 0,
		-1.5, 2.598076211353316, 0,
		0, 0, 5,
	})
	coords := v3.Zeros(1)
	D, err := FromCell(cell, coords, []string{"Cl"}, []string{"Li", "Cl"})
	require.NoError(Te, err)
	assert.True(Te, D.Box.Triclinic())
	assert.InDelta(Te, -1.5, D.Box.Tilt[0], 1e-12)
	assert.InDelta(Te, 2.598076211353316, D.Box.Hi[1], 1e-12)

	var buf bytes.Buffer
	require.NoError(Te, WriteData(&buf, D))
	assert.Contains(Te, buf.String(), "xy xz yz")
	assert.Contains(Te, buf.String(), "2 35.4500 # Cl")

	back, err := ReadData(&buf, "written.data")
	require.NoError(Te, err)
	assert.Equal(Te, D.Box, back.Box)
	assert.Equal(Te, D.TypeNames, back.TypeNames)
	assert.Equal(Te, 2, back.Atom(0).Type)
}
