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

//Command msdfit obtains the diffusivity of the mobile ions from their MSD, and the
//ionic conductivity from the Nernst-Einstein relation.
package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mdpost/mdpost/config"
	"github.com/mdpost/mdpost/diffusion"
	"github.com/mdpost/mdpost/internal/cli"
	"github.com/mdpost/mdpost/mdplot"
	"github.com/mdpost/mdpost/report"
)

func main() {
	c := cli.Setup("msdfit", "Diffusivity and ionic conductivity from a POSCAR and an MSD file.")
	cli.Check(run(c))
}

func run(c *config.Config) error {
	m := c.MSDFit
	opts := diffusion.Options{
		Species:     m.Species,
		Temperature: m.Temperature,
		TimestepFs:  m.Timestep,
		FitStart:    m.FitStart,
		FitEnd:      m.FitEnd,
	}
	slog.Info("Reading", "poscar", m.Poscar, "msd", m.MSD)
	R, err := diffusion.FitMSD(m.Poscar, m.MSD, opts)
	if err != nil {
		return err
	}
	if R.Fit.R2 < 0.9 {
		slog.Warn("poor linear fit of the MSD, check the fit range", "r2", R.Fit.R2)
	}
	slog.Info("Writing", "file", m.Plot)
	if err := mdplot.MSDFit(R, m.Species, m.Plot, c.DPI); err != nil {
		return err
	}
	slog.Info("Writing", "file", m.Report)
	if err := report.WriteFile(m.Report, func(w io.Writer) error { return report.MSDFit(w, m.Species, R) }); err != nil {
		return err
	}
	fmt.Println(report.Summary(m.Species+" diffusion",
		report.R("Volume", "%.3f Å³", R.Volume),
		report.R("Ions", "%d", R.Ions),
		report.R("Concentration", "%.3e ions/cm³", R.Concentration),
		report.R("Fit range", "%g - %g steps", R.FitStart, R.FitEnd),
		report.R("D", "%.3e cm²/s", R.D),
		report.R("σ", "%.3e S/cm", R.Sigma),
	))
	return nil
}
