/*
 * atomicdata.go, part of mdpost.
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

package mdpost

import "fmt"

//A map for assigning mass (in g/mol) to elements.
//Light elements plus the usual suspects of solid electrolytes and battery materials.
var symbolMass = map[string]float64{
	"H":  1.008,
	"He": 4.0026,
	"Li": 6.94,
	"Be": 9.0122,
	"B":  10.81,
	"C":  12.011,
	"N":  14.007,
	"O":  15.999,
	"F":  18.998,
	"Na": 22.990,
	"Mg": 24.305,
	"Al": 26.982,
	"Si": 28.085,
	"P":  30.974,
	"S":  32.06,
	"Cl": 35.45,
	"K":  39.098,
	"Ca": 40.078,
	"Sc": 44.956,
	"Ti": 47.867,
	"V":  50.942,
	"Cr": 51.996,
	"Mn": 54.938,
	"Fe": 55.845,
	"Co": 58.933,
	"Ni": 58.693,
	"Cu": 63.546,
	"Zn": 65.38,
	"Ga": 69.723,
	"Ge": 72.630,
	"Se": 78.971,
	"Br": 79.904,
	"Y":  88.906,
	"Zr": 91.224,
	"Nb": 92.906,
	"In": 114.82,
	"Sn": 118.71,
	"Sb": 121.76,
	"I":  126.90,
	"La": 138.91,
	"Ta": 180.95,
	"W":  183.84,
}

//Mass returns the standard atomic mass, in g/mol, of the element with the given symbol.
func Mass(symbol string) (float64, error) {
	m, ok := symbolMass[symbol]
	if !ok {
		return 0, fmt.Errorf("no mass available for element %q", symbol)
	}
	return m, nil
}

//SymbolFromMass guesses the element symbol from a mass in g/mol, accepting
//a difference of up to tol. It returns an empty string if no element matches.
func SymbolFromMass(mass, tol float64) string {
	best := ""
	bestdiff := tol
	for s, m := range symbolMass {
		d := m - mass
		if d < 0 {
			d = -d
		}
		if d <= bestdiff {
			best = s
			bestdiff = d
		}
	}
	return best
}
