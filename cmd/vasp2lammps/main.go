/*
 * main.go, part of mdpost.
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

//Command vasp2lammps converts a POSCAR into a LAMMPS data file, atomic style, with a
//fixed assignment of atom types to elements.
package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mdpost/mdpost/config"
	"github.com/mdpost/mdpost/internal/cli"
	"github.com/mdpost/mdpost/lammps"
	"github.com/mdpost/mdpost/report"
	"github.com/mdpost/mdpost/vasp"
)

func main() {
	c := cli.Setup("vasp2lammps", "Converts a POSCAR into a LAMMPS data file.")
	cli.Check(run(c))
}

func run(c *config.Config) error {
	v := c.VASP2LAMMPS
	slog.Info("Reading", "file", v.Poscar)
	P, err := vasp.ReadFile(v.Poscar)
	if err != nil {
		return err
	}
	D, err := lammps.FromCell(P.Lattice, P.Coords, P.Symbols(), v.Order)
	if err != nil {
		return err
	}
	D.Title = fmt.Sprintf("%s (from %s)", strings.TrimSpace(P.Comment), v.Poscar)
	slog.Info("Writing", "file", v.Out)
	if err := lammps.WriteDataFile(v.Out, D); err != nil {
		return err
	}
	rows := []report.Row{
		report.R("Atoms", "%d", D.Len()),
		report.R("Box", "%.4f x %.4f x %.4f Å", D.Box.Hi[0], D.Box.Hi[1], D.Box.Hi[2]),
	}
	if D.Box.Triclinic() {
		rows = append(rows, report.R("Tilt (xy xz yz)", "%.4f %.4f %.4f", D.Box.Tilt[0], D.Box.Tilt[1], D.Box.Tilt[2]))
	}
	for i, s := range v.Order {
		n, _ := P.Count(s)
		rows = append(rows, report.R(fmt.Sprintf("Type %d", i+1), "%s (%d atoms)", s, n))
	}
	fmt.Println(report.Summary("POSCAR to LAMMPS", rows...))
	return nil
}
