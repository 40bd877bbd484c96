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
	"strconv"
	"strings"
	"testing"

	"github.com/mdpost/mdpost/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(Te *testing.T) {
	dir := Te.TempDir()
	//V = 1000 + 0.05 T and L = 10 + 0.0002 T
	for _, K := range []int{300, 600, 900} {
		var b strings.Builder
		b.WriteString("# step temp vol lx\n")
		for i, d := range []float64{-2, 2} {
			T := float64(K) + d
			fmt.Fprintf(&b, "%d %g %g %g\n", i*100, T, 1000+0.05*T, 10+0.0002*T)
		}
		name := filepath.Join(dir, fmt.Sprintf("thermal_expansion_%dK.txt", K))
		require.NoError(Te, os.WriteFile(name, []byte(b.String()), 0o644))
	}
	c := config.Default()
	c.DPI = 72
	c.Expansion.Dir = dir
	c.Expansion.Report = filepath.Join(dir, "expansion_coefficients.txt")
	c.Expansion.Plot = filepath.Join(dir, "thermal_expansion.png")
	require.NoError(Te, run(c))

	png, err := os.ReadFile(c.Expansion.Plot)
	require.NoError(Te, err)
	assert.True(Te, strings.HasPrefix(string(png), "\x89PNG"))
	rep, err := os.ReadFile(c.Expansion.Report)
	require.NoError(Te, err)
	const prefix = "Volume thermal expansion coefficient α_V = "
	i := strings.Index(string(rep), prefix)
	require.GreaterOrEqual(Te, i, 0)
	alpha, err := strconv.ParseFloat(strings.Fields(string(rep)[i+len(prefix):])[0], 64)
	require.NoError(Te, err)
	assert.InEpsilon(Te, 0.05/1015, alpha, 1e-5)

	c.Expansion.Dir = filepath.Join(dir, "empty")
	assert.Error(Te, run(c))
}
