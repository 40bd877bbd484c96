/*
 * histo.go, part of mdpost.
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

//Package histo bins values by a key, and averages them per bin. It is what
//turns the per-step rows of a LAMMPS ave/chunk file into a single profile.
package histo

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Data is a histogram that accumulates, for each bin, the number of
//keys that fell in it and the sum of the values associated to those keys.
type Data struct {
	dividers []float64
	counts   []float64
	sums     []float64
	total    int
	omitted  int
}

//NewData returns an empty histogram with the given dividers, which must be
//sorted in increasing order. There are len(dividers)-1 bins, and bin i covers [dividers[i], dividers[i+1]).
func NewData(dividers []float64) *Data {
	if len(dividers) < 2 {
		panic("mdpost/histo.NewData: at least 2 dividers are needed")
	}
	if !sort.Float64sAreSorted(dividers) {
		panic("mdpost/histo.NewData: dividers must be sorted")
	}
	d := new(Data)
	//I prefer to copy the slice to avoid somebody changing it from outside
	d.dividers = make([]float64, len(dividers))
	copy(d.dividers, dividers)
	d.counts = make([]float64, len(dividers)-1)
	d.sums = make([]float64, len(dividers)-1)
	return d
}

//IntegerDividers returns dividers for one bin per integer key from min to max,
//both included. The bin of key k is [k-0.5, k+0.5).
func IntegerDividers(min, max int) []float64 {
	if max < min {
		panic("mdpost/histo.IntegerDividers: max < min")
	}
	d := make([]float64, 0, max-min+2)
	for k := min; k <= max+1; k++ {
		d = append(d, float64(k)-0.5)
	}
	return d
}

//bin returns the bin of the key, or -1 if the key is out of range.
func (D *Data) bin(key float64) int {
	if key < D.dividers[0] || key >= D.dividers[len(D.dividers)-1] {
		return -1
	}
	//the first divider greater than key closes the bin.
	return sort.SearchFloat64s(D.dividers, math.Nextafter(key, math.Inf(1))) - 1
}

//Add adds one value with the given key to the histogram. Keys outside the
//dividers are just omitted, and counted as such.
func (D *Data) Add(key, value float64) {
	D.total++
	b := D.bin(key)
	if b < 0 {
		D.omitted++
		return
	}
	D.counts[b]++
	D.sums[b] += value
}

//AddAll adds a batch of keys and values. keys and values are not modified.
func (D *Data) AddAll(keys, values []float64) {
	if len(keys) != len(values) {
		panic("mdpost/histo.AddAll: keys and values must have the same length")
	}
	if len(keys) == 0 {
		return
	}
	k := make([]float64, len(keys))
	copy(k, keys)
	inds := make([]int, len(k))
	floats.Argsort(k, inds)
	w := make([]float64, len(k))
	for i, j := range inds {
		w[i] = values[j]
	}
	//stat.Histogram just panics instead of omitting the values that are off limits
	//so we remove them here before the call.
	lo := sort.SearchFloat64s(k, D.dividers[0])
	hi := sort.SearchFloat64s(k, D.dividers[len(D.dividers)-1])
	D.total += len(k)
	D.omitted += len(k) - (hi - lo)
	k, w = k[lo:hi], w[lo:hi]
	if len(k) == 0 {
		return
	}
	floats.Add(D.counts, stat.Histogram(nil, D.dividers, k, nil))
	floats.Add(D.sums, stat.Histogram(nil, D.dividers, k, w))
}

//Counts returns a copy of the number of keys in each bin.
func (D *Data) Counts() []float64 {
	ret := make([]float64, len(D.counts))
	copy(ret, D.counts)
	return ret
}

//Means returns the mean of the values in each bin. Empty bins get NaN.
func (D *Data) Means() []float64 {
	ret := make([]float64, len(D.sums))
	for i, s := range D.sums {
		if D.counts[i] == 0 {
			ret[i] = math.NaN()
			continue
		}
		ret[i] = s / D.counts[i]
	}
	return ret
}

//Centers returns the center of each bin.
func (D *Data) Centers() []float64 {
	ret := make([]float64, len(D.dividers)-1)
	for i := range ret {
		ret[i] = (D.dividers[i] + D.dividers[i+1]) / 2
	}
	return ret
}

//Total returns the number of values added, including the omitted ones.
func (D *Data) Total() int { return D.total }

//Omitted returns the number of values whose key was out of range.
func (D *Data) Omitted() int { return D.omitted }

//String prints a -hopefully- pretty string representation of
//the histogram. The representation uses 3 lines of text
func (D *Data) String() string {
	ret := fmt.Sprintf("Total: %d, Omitted: %d\n", D.total, D.omitted)
	d := make([]string, 0, len(D.dividers)-1)
	h := make([]string, 0, len(D.dividers)-1)
	for i, v := range D.Means() {
		d = append(d, fmt.Sprintf("%4.2f-%4.2f", D.dividers[i], D.dividers[i+1]))
		h = append(h, fmt.Sprintf("%9.3f", v))
	}
	return ret + fmt.Sprintf("%s\n%s", strings.Join(d, " "), strings.Join(h, " "))
}
