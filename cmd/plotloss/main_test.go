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
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mdpost/mdpost/config"
	"github.com/mdpost/mdpost/train"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(Te *testing.T) {
	dir := Te.TempDir()
	var b strings.Builder
	for s := 0; s <= 5; s++ {
		r := 10 / float64(s+1)
		fmt.Fprintf(&b, "%d %g %g %g %g %g %g %g %g %g\n", s*1000, r, r*0.9, r/10, r/11, r/5, r/6, r/2, r/3, 1e-3/float64(s+1))
	}
	c := config.Default()
	c.DPI = 72
	c.PlotLoss.Lcurve = filepath.Join(dir, "lcurve.out")
	c.PlotLoss.Dir = dir
	require.NoError(Te, os.WriteFile(c.PlotLoss.Lcurve, []byte(b.String()), 0o644))
	require.NoError(Te, run(c))
	for _, P := range train.Panels() {
		png, err := os.ReadFile(filepath.Join(dir, P.File))
		require.NoError(Te, err, P.File)
		assert.True(Te, strings.HasPrefix(string(png), "\x89PNG"), P.File)
	}
}

func TestRunNoVirials(Te *testing.T) {
	dir := Te.TempDir()
	c := config.Default()
	c.DPI = 72
	c.PlotLoss.Lcurve = filepath.Join(dir, "lcurve.out")
	c.PlotLoss.Dir = dir
	content := "# step rmse_val rmse_trn rmse_e_val rmse_e_trn rmse_f_val rmse_f_trn lr\n" +
		"0 12 11 1 0.9 0.5 0.4 1e-3\n" +
		"1000 3 2.9 0.2 0.19 0.1 0.09 9e-4\n"
	require.NoError(Te, os.WriteFile(c.PlotLoss.Lcurve, []byte(content), 0o644))
	require.NoError(Te, run(c))
	_, err := os.Stat(filepath.Join(dir, "virial_rmse_evolution.png"))
	assert.True(Te, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "force_rmse_evolution.png"))
	assert.NoError(Te, err)
}
