/*
 * report.go, part of mdpost.
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

//Package report writes the text results of the mdpost analyses, and renders short
//summaries for the terminal.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mdpost/mdpost/diffusion"
	"github.com/mdpost/mdpost/thermal"
)

//errWriter keeps the first error of a series of writes.
type errWriter struct {
	w   *bufio.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *errWriter) flush() error {
	if e.err != nil {
		return e.err
	}
	return e.w.Flush()
}

//NEMD writes the thermal conductivity results.
func NEMD(w io.Writer, R *thermal.NEMDResult) error {
	e := &errWriter{w: bufio.NewWriter(w)}
	e.printf("Box length (x): %.5e m\n", R.Length)
	e.printf("Cross-sectional area: %.5e m²\n", R.Area)
	e.printf("Heat flux J: %.5e W/m²\n", R.Flux)
	e.printf("Temperature gradient dT/dx: %.5f K/m\n", R.Gradient.Slope)
	e.printf("Thermal conductivity k: %.5f W/m·K\n", R.K)
	return e.flush()
}

//Expansion writes the thermal expansion coefficients and the fitted lines.
func Expansion(w io.Writer, R *thermal.ExpansionResult) error {
	e := &errWriter{w: bufio.NewWriter(w)}
	e.printf("Thermal Expansion Coefficients (from LAMMPS output)\n")
	e.printf("-----------------------------------------------------\n")
	e.printf("Volume thermal expansion coefficient α_V = %.6e K^-1\n", R.AlphaV)
	e.printf("Linear thermal expansion coefficient α_L = %.6e K^-1\n", R.AlphaL)
	e.printf("Fitted V(T): V = %.6f * T + %.3f\n", R.VFit.Slope, R.VFit.Intercept)
	e.printf("Fitted L(T): L = %.6f * T + %.3f\n", R.LFit.Slope, R.LFit.Intercept)
	return e.flush()
}

//MSDFit writes the diffusivity and conductivity of the mobile species, and the data they come from.
func MSDFit(w io.Writer, species string, R *diffusion.Result) error {
	e := &errWriter{w: bufio.NewWriter(w)}
	e.printf("Volume from POSCAR: V = %.3f Å³\n", R.Volume)
	e.printf("Number of %s atoms = %d\n", species, R.Ions)
	e.printf("Ionic concentration c_ion_cm3 = %.3e ions/cm³\n", R.Concentration)
	e.printf("Temperature: %g K\n", R.Temperature)
	e.printf("Fitting range: %g - %g steps (%d points, R² = %.5f)\n", R.FitStart, R.FitEnd, R.Fit.N, R.Fit.R2)
	e.printf("Diffusivity D = %.3e cm²/s\n", R.D)
	e.printf("Ionic conductivity σ = %.3e S/cm\n", R.Sigma)
	return e.flush()
}

//WriteFile creates the file name and writes a report to it with the given function.
func WriteFile(name string, report func(io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := report(f); err != nil {
		f.Close()
		return fmt.Errorf("report: writing %s: %w", name, err)
	}
	return f.Close()
}
