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

//Command plotloss plots the learning curve of a DeePMD-kit training.
package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/mdpost/mdpost/config"
	"github.com/mdpost/mdpost/internal/cli"
	"github.com/mdpost/mdpost/mdplot"
	"github.com/mdpost/mdpost/report"
	"github.com/mdpost/mdpost/train"
)

func main() {
	c := cli.Setup("plotloss", "Plots the RMSE and learning rate evolution from lcurve.out.")
	cli.Check(run(c))
}

func run(c *config.Config) error {
	p := c.PlotLoss
	slog.Info("Reading", "file", p.Lcurve)
	C, err := train.Read(p.Lcurve)
	if err != nil {
		return err
	}
	var rows []report.Row
	for _, P := range train.Panels() {
		series := C.Available(P)
		if len(series) == 0 {
			slog.Warn("Skipping plot, no columns for it", "plot", P.File)
			continue
		}
		slog.Info("Writing", "file", filepath.Join(p.Dir, P.File))
		if err := mdplot.LossCurve(C, P, series, p.Dir, c.DPI); err != nil {
			return err
		}
		rows = append(rows, report.R(P.File, "%d series", len(series)))
	}
	if len(C.Step) > 0 {
		last := len(C.Step) - 1
		rows = append(rows, report.R("Steps", "%g", C.Step[last]))
		for _, col := range []string{"rmse_e_trn", "rmse_f_trn", "lr"} {
			if y, ok := C.Named(col); ok {
				rows = append(rows, report.R("Final "+col, "%.3e", y[last]))
			}
		}
	}
	fmt.Println(report.Summary("Learning curve", rows...))
	return nil
}
