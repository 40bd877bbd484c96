/*
 * nemd.go, part of mdpost.
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

//Package thermal computes thermal transport and thermal expansion properties from
//LAMMPS outputs: the thermal conductivity from a non-equilibrium (Muller-Plathe or
//Langevin-reservoir) run, and the expansion coefficients from a set of NPT runs.
package thermal

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	mdpost "github.com/mdpost/mdpost"
	"github.com/mdpost/mdpost/fit"
	"github.com/mdpost/mdpost/lammps"
	"github.com/mdpost/mdpost/table"
)

//ErrZeroGradient is returned when the fitted temperature profile is flat, so the
//conductivity is not defined.
var ErrZeroGradient = errors.New("zero temperature gradient")

//MinHeatflowRows is the smallest number of rows a heat flow file can have: the fits use the
//second half of the series, which must have at least 2 points.
const MinHeatflowRows = 4

//HeatFlux returns the heat flux, in W/m², through a cross section of area (in m²) between a hot
//and a cold reservoir, given the cumulative energy (eV) added to the hot one (EL) and
//removed from the cold one (ER) at each time (fs). Only the second half of the series is fitted,
//so the start-up transient is left out. The factor 2 accounts for the heat flowing both ways
//from the reservoir in a periodic cell.
func HeatFlux(times, EL, ER []float64, area float64) (float64, error) {
	if len(times) != len(EL) || len(times) != len(ER) {
		return 0, fmt.Errorf("thermal.HeatFlux: series of different lengths: %d, %d, %d", len(times), len(EL), len(ER))
	}
	if len(times) < MinHeatflowRows {
		return 0, fmt.Errorf("thermal.HeatFlux: %d rows, at least %d needed: %w", len(times), MinHeatflowRows, fit.ErrTooFewPoints)
	}
	if area <= 0 {
		return 0, fmt.Errorf("thermal.HeatFlux: non-positive area %g", area)
	}
	t, el := fit.SecondHalf(times, EL)
	_, er := fit.SecondHalf(times, ER)
	left, err := fit.Linear(t, el)
	if err != nil {
		return 0, fmt.Errorf("thermal.HeatFlux: hot reservoir: %w", err)
	}
	right, err := fit.Linear(t, er)
	if err != nil {
		return 0, fmt.Errorf("thermal.HeatFlux: cold reservoir: %w", err)
	}
	J := (left.Slope - right.Slope) / (2 * area) //eV/fs/m²
	return J * mdpost.EVPerFs, nil
}

//Conductivity fits a line to the temperature profile T(x) (x in m, T in K) after dropping
//trim points at each end, where the reservoirs distort it, and returns the thermal conductivity
//J/(dT/dx) in W/m/K for the heat flux J (W/m²), together with the fitted line.
func Conductivity(x, T []float64, J float64, trim int) (float64, fit.Line, error) {
	if len(x) != len(T) {
		return 0, fit.Line{}, fmt.Errorf("thermal.Conductivity: %d positions for %d temperatures", len(x), len(T))
	}
	cx, cT, err := fit.Trim(x, T, trim)
	if err != nil {
		return 0, fit.Line{}, fmt.Errorf("thermal.Conductivity: %w", err)
	}
	L, err := fit.Linear(cx, cT)
	if err != nil {
		return 0, L, fmt.Errorf("thermal.Conductivity: %w", err)
	}
	if L.Slope == 0 {
		return 0, L, fmt.Errorf("thermal.Conductivity: %w", ErrZeroGradient)
	}
	return J / L.Slope, L, nil
}

//ChunkPositions maps chunk IDs to positions along a box of the given length: the chunk
//with the largest ID sits at the end of the box. Positions and values are returned
//sorted by position.
func ChunkPositions(ids []int, values []float64, length float64) ([]float64, []float64) {
	if len(ids) == 0 {
		return nil, nil
	}
	top := ids[0]
	for _, id := range ids {
		if id > top {
			top = id
		}
	}
	idx := make([]int, len(ids))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return ids[idx[i]] < ids[idx[j]] })
	x := make([]float64, len(ids))
	v := make([]float64, len(ids))
	for i, j := range idx {
		x[i] = float64(ids[j]) / float64(top) * length
		v[i] = values[j]
	}
	return x, v
}

//NEMDOptions are the parameters of a thermal conductivity calculation.
type NEMDOptions struct {
	//Replicas multiplies the box lengths read from the data file, for runs where the data file
	//has one unit that is replicated in LAMMPS. Zeros are taken as 1.
	Replicas [3]int
	//Trim is the number of profile points dropped at each end before the gradient fit.
	Trim int
	//HeatflowSkip is the number of leading lines of the heat flow file that are not data.
	HeatflowSkip int
	Chunk        lammps.ChunkOptions
}

//DefaultNEMDOptions returns the options for a box replicated 8 times along x, the transport direction.
func DefaultNEMDOptions() NEMDOptions {
	return NEMDOptions{Replicas: [3]int{8, 1, 1}, Trim: 10, HeatflowSkip: 1}
}

//NEMDResult holds everything a thermal conductivity calculation produces.
type NEMDResult struct {
	Length float64 //m, along x
	Area   float64 //m², normal to x
	//X and T are the temperature profile: chunk positions (m) and mean temperatures (K).
	X, T     []float64
	Flux     float64 //W/m²
	Gradient fit.Line
	K        float64 //W/m/K
}

//NEMD computes the thermal conductivity along x from the LAMMPS data file, the ave/chunk temperature
//profile and the heat flow file (time, hot reservoir energy, cold reservoir energy), all of which
//can be compressed.
func NEMD(dataFile, profileFile, heatflowFile string, opts NEMDOptions) (*NEMDResult, error) {
	B, err := lammps.ReadBox(dataFile)
	if err != nil {
		return nil, mdpost.ErrDecorate(err, "NEMD")
	}
	L := B.Meters(opts.Replicas)
	R := &NEMDResult{Length: L[0], Area: L[1] * L[2]}
	slog.Debug("box", "Lx", R.Length, "area", R.Area)

	P, err := lammps.ReadChunkProfileFile(profileFile, opts.Chunk)
	if err != nil {
		return nil, mdpost.ErrDecorate(err, "NEMD")
	}
	R.X, R.T = ChunkPositions(P.IDs, P.Values, R.Length)
	if len(R.X) < 2*opts.Trim+2 {
		return R, fmt.Errorf("thermal.NEMD: %d profile points, at least %d needed with trim %d: %w", len(R.X), 2*opts.Trim+2, opts.Trim, fit.ErrTooFewPoints)
	}

	hf, err := table.ReadFile(heatflowFile, table.Options{SkipRows: opts.HeatflowSkip})
	if err != nil {
		return R, mdpost.ErrDecorate(err, "NEMD")
	}
	if hf.NCols() < 3 {
		return R, fmt.Errorf("thermal.NEMD: %s has %d columns, 3 needed (time, hot, cold)", heatflowFile, hf.NCols())
	}
	if R.Flux, err = HeatFlux(hf.Col(0), hf.Col(1), hf.Col(2), R.Area); err != nil {
		return R, err
	}
	R.K, R.Gradient, err = Conductivity(R.X, R.T, R.Flux, opts.Trim)
	return R, err
}
