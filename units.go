/*
 * units.go, part of mdpost.
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

//Physical constants (CODATA 2018, exact in the SI) and the unit conversions
//used to go from LAMMPS "metal" units to the SI.
const (
	Boltzmann        = 1.380649e-23    //J/K
	ElementaryCharge = 1.602176634e-19 //C
	ElectronVolt     = 1.602176634e-19 //J

	Angstrom    = 1e-10 //m
	Femtosecond = 1e-15 //s
	Picosecond  = 1e-12 //s

	A2ToM2  = 1e-20                      //square Angstrom to square meters
	A3ToCm3 = 1e-24                      //cubic Angstrom to cubic centimeters
	M2ToCm2 = 1e4                        //square meters to square centimeters
	EVPerFs = ElectronVolt / Femtosecond //eV/fs to W
	PsPerFs = 1e-3
)
