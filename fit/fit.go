/*
 * fit.go, part of mdpost.
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

//Package fit provides the least-squares straight lines every analysis in mdpost
//ends up in, plus the helpers to pick the part of a series that gets fitted.
package fit

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//ErrTooFewPoints is returned when a fit is requested on fewer than 2 points,
//or when a window leaves fewer than 2 points.
var ErrTooFewPoints = errors.New("too few points to fit a line")

//Line is y = Slope*x + Intercept, with the coefficient of determination of the fit.
type Line struct {
	Slope     float64
	Intercept float64
	R2        float64
	N         int //the number of points used in the fit
}

//Eval returns the value of the line at x.
func (L Line) Eval(x float64) float64 {
	return L.Slope*x + L.Intercept
}

//EvalAll returns the value of the line at each x, in dst if given and large enough.
func (L Line) EvalAll(x []float64, dst ...[]float64) []float64 {
	var ret []float64
	if len(dst) > 0 && len(dst[0]) >= len(x) {
		ret = dst[0][:len(x)]
	} else {
		ret = make([]float64, len(x))
	}
	for i, v := range x {
		ret[i] = L.Eval(v)
	}
	return ret
}

func (L Line) String() string {
	return fmt.Sprintf("y = %g * x + %g (R2 = %.4f, N = %d)", L.Slope, L.Intercept, L.R2, L.N)
}

//Linear fits a straight line to the points (x[i], y[i]) by ordinary least squares.
func Linear(x, y []float64) (Line, error) {
	if len(x) != len(y) {
		return Line{}, fmt.Errorf("fit.Linear: x and y have different lengths: %d, %d", len(x), len(y))
	}
	if len(x) < 2 {
		return Line{}, fmt.Errorf("fit.Linear: %d points: %w", len(x), ErrTooFewPoints)
	}
	if floats.Max(x) == floats.Min(x) {
		return Line{}, fmt.Errorf("fit.Linear: all x values are equal to %g", x[0])
	}
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) || math.IsInf(x[i], 0) || math.IsInf(y[i], 0) {
			return Line{}, fmt.Errorf("fit.Linear: non-finite value at point %d", i)
		}
	}
	alpha, beta := stat.LinearRegression(x, y, nil, false)
	L := Line{Slope: beta, Intercept: alpha, N: len(x)}
	if floats.Max(y) == floats.Min(y) {
		L.R2 = 1 //a flat line fits flat data perfectly, stat.RSquared would give NaN.
	} else {
		L.R2 = stat.RSquared(x, y, nil, alpha, beta)
	}
	return L, nil
}
