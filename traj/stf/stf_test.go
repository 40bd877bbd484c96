/*
 * stf_test.go, part of mdpost.
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

package stf

import (
	"path/filepath"
	"testing"

	mdpost "github.com/mdpost/mdpost"
	v3 "github.com/mdpost/mdpost/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ mdpost.Traj = (*StfR)(nil)

func frames() []*v3.Matrix {
	var ret []*v3.Matrix
	for f := 0; f < 3; f++ {
		m := v3.Zeros(2)
		m.SetVec(0, [3]float64{1.234 + float64(f), -2.5, 0})
		m.SetVec(1, [3]float64{10, 11.111, -0.004 * float64(f)})
		ret = append(ret, m)
	}
	return ret
}

func roundTrip(Te *testing.T, name string, header map[string]string, delta float64) {
	in := frames()
	W, err := NewWriter(name, 2, header)
	require.NoError(Te, err)
	for i, m := range in {
		require.NoError(Te, W.WNextStep(m, 100*i, []float64{20, 21, 22}))
	}
	assert.Equal(Te, 3, W.Frames())
	require.NoError(Te, W.Close())

	R, err := New(name)
	require.NoError(Te, err)
	assert.Equal(Te, 2, R.Len())
	assert.True(Te, R.Readable())
	out := v3.Zeros(2)
	box := make([]float64, 3)
	for i, m := range in {
		require.NoError(Te, R.Next(out, box))
		assert.Equal(Te, 100*i, R.Timestep())
		assert.Equal(Te, []float64{20, 21, 22}, box)
		for j := 0; j < 2; j++ {
			want, got := m.Vec(j), out.Vec(j)
			assert.InDeltaSlice(Te, want[:], got[:], delta)
		}
	}
	err = R.Next(out)
	assert.True(Te, mdpost.IsLastFrame(err), "%v", err)
	assert.False(Te, R.Readable())
}

func TestSTFRoundTrip(Te *testing.T) {
	roundTrip(Te, filepath.Join(Te.TempDir(), "test.stf"), nil, 0.005)
}

func TestSTFGzipPrecision(Te *testing.T) {
	roundTrip(Te, filepath.Join(Te.TempDir(), "test.stz"), map[string]string{"prec": "3", "species": "Li"}, 0.0005)
	name := filepath.Join(Te.TempDir(), "hdr.stz")
	W, err := NewWriter(name, 1, map[string]string{"species": "Li"})
	require.NoError(Te, err)
	require.NoError(Te, W.Close())
	R, err := New(name)
	require.NoError(Te, err)
	defer R.Close()
	assert.Equal(Te, map[string]string{"species": "Li", "prec": "2"}, R.Header)
}

func TestSTFNoBox(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "nobox.stf")
	W, err := NewWriter(name, 2, nil)
	require.NoError(Te, err)
	for _, m := range frames() {
		require.NoError(Te, W.WNext(m))
	}
	require.NoError(Te, W.Close())
	R, err := New(name)
	require.NoError(Te, err)
	box := []float64{-1, -1, -1}
	//frames can be skipped
	require.NoError(Te, R.Next(nil, box))
	require.NoError(Te, R.Next(v3.Zeros(2), box))
	assert.Equal(Te, []float64{-1, -1, -1}, box)
	assert.Equal(Te, 1, R.Timestep())
}

func TestSTFWriteErrors(Te *testing.T) {
	W, err := NewWriter(filepath.Join(Te.TempDir(), "e.stf"), 3, nil)
	require.NoError(Te, err)
	assert.Error(Te, W.WNext(nil))
	assert.Error(Te, W.WNext(v3.Zeros(2)))
	require.NoError(Te, W.Close())
	assert.Error(Te, W.WNext(v3.Zeros(3)))
	_, err = NewWriter(filepath.Join(Te.TempDir(), "p.stf"), 3, map[string]string{"prec": "x"})
	assert.Error(Te, err)
}
