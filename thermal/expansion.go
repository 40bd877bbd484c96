/*
 * expansion.go, part of mdpost.
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

package thermal

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	mdpost "github.com/mdpost/mdpost"
	"github.com/mdpost/mdpost/fit"
	"github.com/mdpost/mdpost/table"
)

//ExpansionGlob matches the per-temperature outputs of a thermal expansion run.
const ExpansionGlob = "thermal_expansion_*K.txt"

var kelvinRe = regexp.MustCompile(`(\d+)K`)

//ExpansionPoint is the time average of one NPT run.
type ExpansionPoint struct {
	File    string
	Nominal int     //the temperature in the file name
	T       float64 //mean temperature, K
	V       float64 //mean volume, Å³
	L       float64 //mean lattice constant (Lx), Å
}

//ExpansionFiles returns the files in dir that match ExpansionGlob, sorted by the
//temperature in their names.
func ExpansionFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, ExpansionGlob))
	if err != nil {
		return nil, err
	}
	kelvin := make(map[string]int, len(files))
	for _, f := range files {
		m := kelvinRe.FindStringSubmatch(filepath.Base(f))
		if m == nil {
			return nil, fmt.Errorf("thermal.ExpansionFiles: no temperature in %s", f)
		}
		kelvin[f], _ = strconv.Atoi(m[1])
	}
	sort.SliceStable(files, func(i, j int) bool { return kelvin[files[i]] < kelvin[files[j]] })
	return files, nil
}

//ReadExpansionPoint averages the temperature (column 1), volume (column 2) and Lx (column 3)
//of a thermal expansion output. Column 0 is usually the step.
func ReadExpansionPoint(name string) (ExpansionPoint, error) {
	P := ExpansionPoint{File: name}
	if m := kelvinRe.FindStringSubmatch(filepath.Base(name)); m != nil {
		P.Nominal, _ = strconv.Atoi(m[1])
	}
	T, err := table.ReadFile(name, table.Options{})
	if err != nil {
		return P, mdpost.ErrDecorate(err, "ReadExpansionPoint")
	}
	if T.NCols() < 4 {
		return P, fmt.Errorf("thermal.ReadExpansionPoint: %s has %d columns, at least 4 needed", name, T.NCols())
	}
	means := T.Means()
	P.T, P.V, P.L = means[1], means[2], means[3]
	return P, nil
}

//ExpansionResult holds the thermal expansion coefficients and the fits they come from.
type ExpansionResult struct {
	Points []ExpansionPoint
	VFit   fit.Line //V(T)
	LFit   fit.Line //L(T)
	AlphaV float64  //volumetric coefficient, 1/K
	AlphaL float64  //linear coefficient, 1/K
}

//Expansion fits V(T) and L(T) over the given points, which must be sorted by temperature,
//and returns the expansion coefficients relative to the first (coldest) point.
func Expansion(points []ExpansionPoint) (*ExpansionResult, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("thermal.Expansion: %d temperatures: %w", len(points), fit.ErrTooFewPoints)
	}
	T := make([]float64, len(points))
	V := make([]float64, len(points))
	L := make([]float64, len(points))
	for i, p := range points {
		T[i], V[i], L[i] = p.T, p.V, p.L
	}
	R := &ExpansionResult{Points: points}
	var err error
	if R.VFit, err = fit.Linear(T, V); err != nil {
		return nil, fmt.Errorf("thermal.Expansion: volume: %w", err)
	}
	if R.LFit, err = fit.Linear(T, L); err != nil {
		return nil, fmt.Errorf("thermal.Expansion: lattice: %w", err)
	}
	if V[0] == 0 || L[0] == 0 {
		return nil, fmt.Errorf("thermal.Expansion: zero reference volume or length")
	}
	R.AlphaV = R.VFit.Slope / V[0]
	R.AlphaL = R.LFit.Slope / L[0]
	return R, nil
}

//ExpansionDir reads all the thermal expansion outputs in dir and computes the coefficients.
func ExpansionDir(dir string) (*ExpansionResult, error) {
	files, err := ExpansionFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) < 2 {
		return nil, fmt.Errorf("thermal.ExpansionDir: %d files matching %s in %s: %w", len(files), ExpansionGlob, dir, fit.ErrTooFewPoints)
	}
	points := make([]ExpansionPoint, 0, len(files))
	for _, f := range files {
		p, err := ReadExpansionPoint(f)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return Expansion(points)
}
