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

//Command expansion computes the volumetric and linear thermal expansion coefficients from
//a set of LAMMPS NPT runs at different temperatures.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/mdpost/mdpost/config"
	"github.com/mdpost/mdpost/internal/cli"
	"github.com/mdpost/mdpost/mdplot"
	"github.com/mdpost/mdpost/report"
	"github.com/mdpost/mdpost/thermal"
)

func main() {
	c := cli.Setup("expansion", "Thermal expansion coefficients from "+thermal.ExpansionGlob+" files.")
	cli.Check(run(c))
}

func run(c *config.Config) error {
	e := c.Expansion
	slog.Info("Reading", "files", filepath.Join(e.Dir, thermal.ExpansionGlob))
	R, err := thermal.ExpansionDir(e.Dir)
	if err != nil {
		return err
	}
	slog.Info("Writing", "file", e.Report)
	if err := report.WriteFile(e.Report, func(w io.Writer) error { return report.Expansion(w, R) }); err != nil {
		return err
	}
	slog.Info("Writing", "file", e.Plot)
	if err := mdplot.Expansion(R, e.Plot, c.DPI); err != nil {
		return err
	}
	fmt.Println(report.Summary("Thermal expansion",
		report.R("Temperatures", "%d (%g-%g K)", len(R.Points), R.Points[0].T, R.Points[len(R.Points)-1].T),
		report.R("α_V", "%.3e K^-1", R.AlphaV),
		report.R("α_L", "%.3e K^-1", R.AlphaL),
	))
	return nil
}
