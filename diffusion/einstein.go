/*
 * einstein.go, part of mdpost.
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

//Package diffusion obtains tracer diffusivities from mean square displacements, and
//the ionic conductivities that follow from them through the Nernst-Einstein relation.
package diffusion

import (
	"fmt"

	mdpost "github.com/mdpost/mdpost"
	"github.com/mdpost/mdpost/fit"
	"github.com/mdpost/mdpost/table"
	"github.com/mdpost/mdpost/vasp"
)

//Einstein fits MSD(t) = 6Dt + b, with t in s and the MSD in m², and returns D in m²/s
//together with the fitted line.
func Einstein(t, msd []float64) (float64, fit.Line, error) {
	L, err := fit.Linear(t, msd)
	if err != nil {
		return 0, L, fmt.Errorf("diffusion.Einstein: %w", err)
	}
	return L.Slope / 6, L, nil
}

//Concentration returns the number density, in 1/cm³, of n ions in a volume given in Å³.
func Concentration(n int, volume float64) float64 {
	return float64(n) / (volume * mdpost.A3ToCm3)
}

//NernstEinstein returns the ionic conductivity, in S/cm, of monovalent carriers with diffusivity
//D (cm²/s) and concentration c (1/cm³) at the temperature T (K). Correlations between ions are neglected.
func NernstEinstein(D, c, T float64) float64 {
	e := mdpost.ElementaryCharge
	return D * e * e * c / (mdpost.Boltzmann * T)
}

//Options are the parameters of a diffusivity calculation from an MSD file.
type Options struct {
	Species     string  //the mobile species
	Temperature float64 //K
	TimestepFs  float64 //femtoseconds per step in the MSD file
	//FitStart and FitEnd limit the fit to the rows whose step is in [FitStart, FitEnd].
	//A zero FitEnd means the last step, and a zero FitStart the first one.
	FitStart, FitEnd float64
}

//DefaultOptions returns the options for Li at 600 K, with MSD files where the steps are femtoseconds.
func DefaultOptions() Options {
	return Options{Species: "Li", Temperature: 600, TimestepFs: 1}
}

//Result holds what a diffusivity calculation produces.
type Result struct {
	Volume        float64 //Å³
	Ions          int
	Concentration float64 //1/cm³
	//Time (ps, from the first row) and MSD (Å²) are the whole series, for plotting.
	Time, MSD        []float64
	FitTime          []float64 //ps, the times of the fitted points
	FitStart, FitEnd float64   //steps
	Fit              fit.Line  //MSD (m²) vs t (s)
	D                float64   //cm²/s
	Sigma            float64   //S/cm
	Temperature      float64   //K
}

//FitMSD computes the diffusivity and conductivity of the mobile species from a POSCAR of the simulated cell
//and an MSD file (step, MSD in Å², "#" comments). Both files can be compressed.
func FitMSD(poscarFile, msdFile string, opts Options) (*Result, error) {
	P, err := vasp.ReadFile(poscarFile)
	if err != nil {
		return nil, mdpost.ErrDecorate(err, "FitMSD")
	}
	R := &Result{Volume: P.Volume(), Temperature: opts.Temperature}
	if R.Ions, err = P.Count(opts.Species); err != nil {
		return nil, err
	}
	if R.Ions == 0 || R.Volume == 0 {
		return nil, fmt.Errorf("diffusion.FitMSD: %d %s ions in a volume of %g Å³", R.Ions, opts.Species, R.Volume)
	}
	R.Concentration = Concentration(R.Ions, R.Volume)

	T, err := table.ReadFile(msdFile, table.Options{})
	if err != nil {
		return nil, mdpost.ErrDecorate(err, "FitMSD")
	}
	if T.NCols() < 2 {
		return nil, fmt.Errorf("diffusion.FitMSD: %s has %d columns, 2 needed", msdFile, T.NCols())
	}
	steps, msd := T.Col(0), T.Col(1)
	ts := opts.TimestepFs
	if ts <= 0 {
		ts = 1
	}
	seconds := make([]float64, len(steps))
	m2 := make([]float64, len(steps))
	R.Time = make([]float64, len(steps))
	R.MSD = msd
	for i, s := range steps {
		fs := (s - steps[0]) * ts
		seconds[i] = fs * mdpost.Femtosecond
		R.Time[i] = fs * mdpost.PsPerFs
		m2[i] = msd[i] * mdpost.A2ToM2
	}
	R.FitStart, R.FitEnd = opts.FitStart, opts.FitEnd
	if R.FitStart == 0 {
		R.FitStart = steps[0]
	}
	if R.FitEnd == 0 {
		R.FitEnd = steps[len(steps)-1]
	}
	x, y, err := fit.Range(steps, seconds, m2, R.FitStart, R.FitEnd)
	if err != nil {
		return nil, fmt.Errorf("diffusion.FitMSD: %w", err)
	}
	R.FitTime = make([]float64, len(x))
	for i, t := range x {
		R.FitTime[i] = t / mdpost.Picosecond
	}
	var D float64
	if D, R.Fit, err = Einstein(x, y); err != nil {
		return nil, err
	}
	R.D = D * mdpost.M2ToCm2
	R.Sigma = NernstEinstein(R.D, R.Concentration, R.Temperature)
	return R, nil
}
