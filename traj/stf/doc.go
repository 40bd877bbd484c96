/*
 * doc.go, part of mdpost.
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

//Package stf implements the simple trajectory format, a compressed text trajectory
//that mdpost uses to cache the frames of the atoms it cares about, so a large LAMMPS
//dump needs to be parsed only once.
//
//An STF file is compressed with Z-standard (the default), gzip (names ending in "z",
//e.g. ".stz") or deflate (names ending in "r"). Once decompressed it contains only ASCII.
//
//The header is a set of key=value lines, ended by a line starting with "**" followed by
//spaces and the number of atoms per frame. The key "prec" gives the precision (an integer
//greater than 0, 2 if not given).
//
//After the header comes one line per atom, per frame, with the x, y and z coordinates in
//Angstrom, multiplied by 10^prec and rounded to integers. Each frame ends with a line starting
//with "*", optionally followed by the 9 numbers of the box vectors (a, b, c, in Angstrom), and,
//after those, optionally, the MD timestep of the frame.
//
//"**" can only appear at the end of the header.
package stf
