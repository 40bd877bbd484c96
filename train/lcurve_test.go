/*
 * lcurve_test.go, part of mdpost.
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

package train

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCurve(Te *testing.T, content string) string {
	Te.Helper()
	p := filepath.Join(Te.TempDir(), "lcurve.out")
	require.NoError(Te, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestReadDefaultColumns(Te *testing.T) {
	name := writeCurve(Te, "0 1 2 3 4 5 6 7 8 1e-3\n100 .5 .6 .7 .8 .9 1 1.1 1.2 9e-4\n")
	C, err := Read(name)
	require.NoError(Te, err)
	assert.Equal(Te, DefaultColumns, C.Names)
	assert.Equal(Te, []float64{0, 100}, C.Step)
	lr, ok := C.Named("lr")
	require.True(Te, ok)
	assert.Equal(Te, []float64{1e-3, 9e-4}, lr)
	for _, P := range Panels() {
		assert.Equal(Te, P.Series, C.Available(P), P.File)
	}
}

func TestReadHeader(Te *testing.T) {
	//a model trained without virials, with a DeePMD-kit header.
	name := writeCurve(Te, "#  step      rmse_trn    rmse_e_trn    rmse_f_trn         lr\n"+
		"      0      1.2e+01      1.0e+00      4.0e-01    1.0e-03\n"+
		"   1000      3.1e+00      2.0e-01      1.1e-01    9.0e-04\n")
	C, err := Read(name)
	require.NoError(Te, err)
	assert.Equal(Te, []string{"step", "rmse_trn", "rmse_e_trn", "rmse_f_trn", "lr"}, C.Names)
	assert.Equal(Te, []float64{0, 1000}, C.Step)

	panels := Panels()
	require.Len(Te, panels, 6)
	assert.Equal(Te, []Series{{"rmse_trn", "Training RMSE"}}, C.Available(panels[0]))
	assert.Empty(Te, C.Available(panels[3]))
	assert.Len(Te, C.Available(panels[5]), 3)
}

func TestReadTooManyColumns(Te *testing.T) {
	_, err := Read(writeCurve(Te, "0 1 2 3 4 5 6 7 8 9 10\n"))
	assert.Error(Te, err)
}
