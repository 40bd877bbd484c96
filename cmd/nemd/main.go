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

//Command nemd computes the thermal conductivity along x from a LAMMPS non-equilibrium
//MD run with hot and cold reservoirs.
package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mdpost/mdpost/config"
	"github.com/mdpost/mdpost/internal/cli"
	"github.com/mdpost/mdpost/lammps"
	"github.com/mdpost/mdpost/mdplot"
	"github.com/mdpost/mdpost/report"
	"github.com/mdpost/mdpost/table"
	"github.com/mdpost/mdpost/thermal"
)

func main() {
	c := cli.Setup("nemd", "Thermal conductivity from the temperature profile and heat flow of a NEMD run.")
	cli.Check(run(c))
}

func run(c *config.Config) error {
	n := c.NEMD
	opts := thermal.NEMDOptions{Replicas: n.Replicas, Trim: n.Trim, HeatflowSkip: n.HeatflowSkip, Chunk: lammps.ChunkOptions{}}
	slog.Info("Reading", "data", n.Data, "profile", n.Profile, "heatflow", n.Heatflow)
	R, err := thermal.NEMD(n.Data, n.Profile, n.Heatflow, opts)
	if err != nil {
		return err
	}
	slog.Info("Writing", "file", n.CSV)
	if err := table.WriteCSVFile(n.CSV, []string{"X_Position", "Temperature"}, R.X, R.T); err != nil {
		return err
	}
	slog.Info("Writing", "file", n.Plot)
	if err := mdplot.TemperatureProfile(R.X, R.T, n.Plot, c.DPI); err != nil {
		return err
	}
	slog.Info("Writing", "file", n.Report)
	if err := report.WriteFile(n.Report, func(w io.Writer) error { return report.NEMD(w, R) }); err != nil {
		return err
	}
	fmt.Println(report.Summary("Thermal conductivity (NEMD)",
		report.R("Box length (x)", "%.2e m", R.Length),
		report.R("Area", "%.2e m²", R.Area),
		report.R("Heat flux J", "%.3e W/m²", R.Flux),
		report.R("dT/dx", "%.3f K/m", R.Gradient.Slope),
		report.R("k", "%.3f W/m·K", R.K),
	))
	return nil
}
