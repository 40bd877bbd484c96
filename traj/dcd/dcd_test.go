/*
 * dcd_test.go, part of mdpost.
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

package dcd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	mdpost "github.com/mdpost/mdpost"
	v3 "github.com/mdpost/mdpost/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ mdpost.Traj = (*DCDObj)(nil)

func writeTraj(Te *testing.T, name string) [][3][3]float64 {
	Te.Helper()
	frames := [][3][3]float64{
		{{1, 2, 3}, {4.5, 5.5, 6.5}, {-1, 0, 9.75}},
		{{1.25, 2, 3}, {4.5, 5, 6.5}, {-1, 0.5, 9.75}},
		{{1.5, 2, 3}, {4.5, 4.5, 6.5}, {-1, 1, 9.75}},
	}
	W, err := NewWriter(name, 3, 1000, 50)
	require.NoError(Te, err)
	m := v3.Zeros(3)
	for _, fr := range frames {
		for i, v := range fr {
			m.SetVec(i, v)
		}
		require.NoError(Te, W.WNext(m, []float64{10, 11, 12}))
	}
	require.NoError(Te, W.Close())
	assert.Error(Te, W.WNext(m))
	return frames
}

func readTraj(Te *testing.T, name string, frames [][3][3]float64) {
	D, err := New(name)
	require.NoError(Te, err)
	defer D.Close()
	assert.Equal(Te, 3, D.Len())
	m := v3.Zeros(3)
	box := make([]float64, 3)
	for f, fr := range frames {
		require.NoError(Te, D.Next(m, box))
		assert.Equal(Te, 1000+50*f, D.Timestep())
		assert.Equal(Te, []float64{10, 11, 12}, box)
		for i, v := range fr {
			assert.Equal(Te, v, m.Vec(i))
		}
	}
	err = D.Next(m)
	assert.True(Te, mdpost.IsLastFrame(err), "%v", err)
	assert.False(Te, D.Readable())
}

func TestDCDRoundTrip(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "traj.dcd")
	frames := writeTraj(Te, name)
	D, err := New(name)
	require.NoError(Te, err)
	assert.Equal(Te, 3, D.Frames())
	require.NoError(Te, D.Close())
	readTraj(Te, name, frames)
}

func TestDCDCompressed(Te *testing.T) {
	dir := Te.TempDir()
	plain := filepath.Join(dir, "traj.dcd")
	frames := writeTraj(Te, plain)
	b, err := os.ReadFile(plain)
	require.NoError(Te, err)
	gz := filepath.Join(dir, "traj.dcd.gz")
	f, err := os.Create(gz)
	require.NoError(Te, err)
	w := gzip.NewWriter(f)
	_, err = w.Write(b)
	require.NoError(Te, err)
	require.NoError(Te, w.Close())
	require.NoError(Te, f.Close())
	readTraj(Te, gz, frames)
}

func TestDCDTruncated(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "traj.dcd")
	writeTraj(Te, name)
	b, err := os.ReadFile(name)
	require.NoError(Te, err)
	cut := filepath.Join(dir, "cut.dcd")
	require.NoError(Te, os.WriteFile(cut, b[:len(b)-10], 0o644))
	D, err := New(cut)
	require.NoError(Te, err)
	m := v3.Zeros(3)
	require.NoError(Te, D.Next(m))
	require.NoError(Te, D.Next(m))
	err = D.Next(m)
	require.Error(Te, err)
	assert.False(Te, mdpost.IsLastFrame(err))

	_, err = New(filepath.Join(dir, "nothere.dcd"))
	assert.Error(Te, err)
	require.NoError(Te, os.WriteFile(cut, []byte("not a dcd file at all"), 0o644))
	_, err = New(cut)
	assert.Error(Te, err)
}

func TestDCDTriclinic(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "tilted.dcd")
	cell := []float64{10, 0, 0, 4, 10, 0, -2, 3, 12}
	W, err := NewWriter(name, 1, 0, 1)
	require.NoError(Te, err)
	m := v3.Zeros(1)
	m.SetVec(0, [3]float64{1, 2, 3})
	require.NoError(Te, W.WNext(m, cell))
	require.NoError(Te, W.Close())

	D, err := New(name)
	require.NoError(Te, err)
	defer D.Close()
	got := make([]float64, 9)
	require.NoError(Te, D.Next(m, got))
	assert.InDeltaSlice(Te, cell, got, 1e-9)

	//CHARMM writes the angles in degrees.
	v := cellVectors([6]float64{10, 90, 10, 90, 90, 10})
	assert.InDeltaSlice(Te, []float64{10, 0, 0, 0, 10, 0, 0, 0, 10}, v[:], 1e-9)
}
