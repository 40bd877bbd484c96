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

/*Package mdpost is the main package of the mdpost tools. It provides the atom, box and
trajectory types shared by the readers, the error types used across the library, and
transparent opening of compressed input files.

	**mdpost Capabilities**

    Reads LAMMPS data files, ave/chunk profiles and dump trajectories.

    Reads VASP POSCAR files and converts them into LAMMPS data files.

    Reads and writes STF compressed trajectories.

    Computes thermal conductivities from NEMD runs (heat flux over temperature gradient).

    Computes linear and volumetric thermal expansion coefficients.

    Computes mean squared displacements (FFT algorithm), diffusivities (Einstein relation)
	and ionic conductivities (Nernst-Einstein relation).

    Plots temperature profiles, MSD fits, ion trajectories and MLP training curves
	(uses the gonum plot library).

The commands under cmd/ are thin, run-once pipelines on top of these packages. Every
command reads fixed-name files from the working directory unless a YAML configuration
is given with -c.

Inputs with a ".gz" or ".zst" extension are decompressed on the fly.
*/
package mdpost
