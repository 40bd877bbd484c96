/*
 * window.go, part of mdpost.
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

package fit

import "fmt"

//Windows return views (not copies) of the given slices.

//SecondHalf returns the points from len/2 on. For an odd number of points
//the middle one is included.
func SecondHalf(x, y []float64) ([]float64, []float64) {
	n := len(x) / 2
	return x[n:], y[n:]
}

//Trim drops n points at each end of the series. It returns ErrTooFewPoints
//if that leaves fewer than 2 points.
func Trim(x, y []float64, n int) ([]float64, []float64, error) {
	if n < 0 {
		return nil, nil, fmt.Errorf("fit.Trim: negative trim %d", n)
	}
	if len(x)-2*n < 2 {
		return nil, nil, fmt.Errorf("fit.Trim: trimming %d points at each end of %d: %w", n, len(x), ErrTooFewPoints)
	}
	return x[n : len(x)-n], y[n : len(y)-n], nil
}

//Range returns the points whose key is in [lo, hi]. keys must be sorted in
//ascending order and have the same length as x and y. The keys are often
//different from x, i.e. timesteps selecting points of a series in seconds.
func Range(keys, x, y []float64, lo, hi float64) ([]float64, []float64, error) {
	if len(keys) != len(x) || len(x) != len(y) {
		return nil, nil, fmt.Errorf("fit.Range: keys, x and y must have the same length")
	}
	start, end := -1, -1
	for i, k := range keys {
		if k >= lo && start < 0 {
			start = i
		}
		if k <= hi {
			end = i + 1
		}
	}
	if start < 0 || end <= start || end-start < 2 {
		return nil, nil, fmt.Errorf("fit.Range: window [%g, %g]: %w", lo, hi, ErrTooFewPoints)
	}
	return x[start:end], y[start:end], nil
}
