/*
 * report_test.go, part of mdpost.
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

package report

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mdpost/mdpost/diffusion"
	"github.com/mdpost/mdpost/fit"
	"github.com/mdpost/mdpost/thermal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNEMD(Te *testing.T) {
	var b bytes.Buffer
	R := &thermal.NEMDResult{Length: 1.6e-8, Area: 1e-18, Flux: 2.5e9, Gradient: fit.Line{Slope: -1.25e9}, K: 2}
	require.NoError(Te, NEMD(&b, R))
	want := "Box length (x): 1.60000e-08 m\n" +
		"Cross-sectional area: 1.00000e-18 m²\n" +
		"Heat flux J: 2.50000e+09 W/m²\n" +
		"Temperature gradient dT/dx: -1250000000.00000 K/m\n" +
		"Thermal conductivity k: 2.00000 W/m·K\n"
	assert.Equal(Te, want, b.String())
}

func TestExpansion(Te *testing.T) {
	R := &thermal.ExpansionResult{
		VFit:   fit.Line{Slope: 0.01, Intercept: 1000},
		LFit:   fit.Line{Slope: 0.0001, Intercept: 10},
		AlphaV: 1e-5,
		AlphaL: 1e-5 / 3,
	}
	name := filepath.Join(Te.TempDir(), "expansion_coefficients.txt")
	require.NoError(Te, WriteFile(name, func(w io.Writer) error { return Expansion(w, R) }))
	b, err := os.ReadFile(name)
	require.NoError(Te, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(Te, lines, 6)
	assert.Equal(Te, "Thermal Expansion Coefficients (from LAMMPS output)", lines[0])
	assert.Equal(Te, "Volume thermal expansion coefficient α_V = 1.000000e-05 K^-1", lines[2])
	assert.Equal(Te, "Linear thermal expansion coefficient α_L = 3.333333e-06 K^-1", lines[3])
	assert.Equal(Te, "Fitted V(T): V = 0.010000 * T + 1000.000", lines[4])
	assert.Equal(Te, "Fitted L(T): L = 0.000100 * T + 10.000", lines[5])
}

func TestMSDFit(Te *testing.T) {
	var b bytes.Buffer
	R := &diffusion.Result{Volume: 1000, Ions: 24, Concentration: 2.4e22, Temperature: 600,
		FitStart: 0, FitEnd: 5000, Fit: fit.Line{N: 51, R2: 0.99}, D: 1.5e-5, Sigma: 0.1}
	require.NoError(Te, MSDFit(&b, "Li", R))
	s := b.String()
	assert.Contains(Te, s, "Number of Li atoms = 24\n")
	assert.Contains(Te, s, "Fitting range: 0 - 5000 steps (51 points, R² = 0.99000)\n")
	assert.Contains(Te, s, "Diffusivity D = 1.500e-05 cm²/s\n")
	assert.Contains(Te, s, "Ionic conductivity σ = 1.000e-01 S/cm\n")
}

func TestSummary(Te *testing.T) {
	s := Summary("NEMD", R("k", "%.3f W/m·K", 1.23456), R("Heat flux", "%.2e W/m²", 3e9))
	assert.Contains(Te, s, "NEMD")
	assert.Contains(Te, s, "1.235 W/m·K")
	assert.Contains(Te, s, "3.00e+09 W/m²")
	assert.Contains(Te, s, "Heat flux")
}
