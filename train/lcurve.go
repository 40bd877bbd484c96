/*
 * lcurve.go, part of mdpost.
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

//Package train reads the learning curves that DeePMD-kit writes while training a
//machine-learning potential, and describes the standard plots made from them.
package train

import (
	"fmt"
	"log/slog"

	mdpost "github.com/mdpost/mdpost"
	"github.com/mdpost/mdpost/table"
)

//DefaultColumns are the columns of an lcurve.out for an energy/force/virial model,
//used when the file doesn't name them.
var DefaultColumns = []string{"step", "rmse_val", "rmse_trn", "rmse_e_val", "rmse_e_trn",
	"rmse_f_val", "rmse_f_trn", "rmse_v_val", "rmse_v_trn", "lr"}

//Curve is a learning curve.
type Curve struct {
	*table.Table
	Step []float64
}

//Read reads the learning curve in the file name, which can be compressed. The column names are taken
//from the first comment line if it names every column (DeePMD-kit writes such a header), otherwise
//DefaultColumns are used, as far as they go.
func Read(name string) (*Curve, error) {
	T, err := table.ReadFile(name, table.Options{})
	if err != nil {
		return nil, mdpost.ErrDecorate(err, "train.Read")
	}
	if T.Names == nil {
		n := T.NCols()
		if n > len(DefaultColumns) {
			return nil, fmt.Errorf("train.Read: %s has %d unnamed columns, only %d known", name, n, len(DefaultColumns))
		}
		T.Names = DefaultColumns[:n]
	}
	step, ok := T.Named("step")
	if !ok {
		step = T.Col(0)
	}
	return &Curve{Table: T, Step: step}, nil
}

//Series is one line of a plot: a column of the curve and its legend.
type Series struct {
	Column string
	Label  string
}

//Panel describes one plot of a learning curve.
type Panel struct {
	File   string
	Title  string
	YLabel string
	LogY   bool
	Series []Series
}

var (
	total  = []Series{{"rmse_val", "Validation RMSE"}, {"rmse_trn", "Training RMSE"}}
	energy = []Series{{"rmse_e_val", "Validation Energy RMSE"}, {"rmse_e_trn", "Training Energy RMSE"}}
	force  = []Series{{"rmse_f_val", "Validation Force RMSE"}, {"rmse_f_trn", "Training Force RMSE"}}
	virial = []Series{{"rmse_v_val", "Validation Virial RMSE"}, {"rmse_v_trn", "Training Virial RMSE"}}
)

//Panels returns the standard plots of a learning curve.
func Panels() []Panel {
	all := []Series{
		{"rmse_val", "Validation Total RMSE"}, {"rmse_trn", "Training Total RMSE"},
	}
	for _, s := range [][]Series{energy, force, virial} {
		all = append(all, s...)
	}
	return []Panel{
		{File: "total_rmse_evolution.png", Title: "Total RMSE Evolution During Training", YLabel: "Total RMSE", Series: total},
		{File: "energy_rmse_evolution.png", Title: "Energy RMSE Evolution During Training", YLabel: "Energy RMSE", Series: energy},
		{File: "force_rmse_evolution.png", Title: "Force RMSE Evolution During Training", YLabel: "Force RMSE", Series: force},
		{File: "virial_rmse_evolution.png", Title: "Virial RMSE Evolution During Training", YLabel: "Virial RMSE", Series: virial},
		{File: "learning_rate_evolution.png", Title: "Learning Rate Evolution During Training", YLabel: "Learning Rate", LogY: true,
			Series: []Series{{"lr", "Learning Rate"}}},
		{File: "all_rmse_metrics_evolution_log.png", Title: "All RMSE Metrics Evolution During Training", YLabel: "RMSE Values (log scale)", LogY: true,
			Series: all},
	}
}

//Available returns the series of P that C has. If some are missing a warning is logged.
//Models trained without virials, for instance, have no rmse_v columns.
func (C *Curve) Available(P Panel) []Series {
	var ret []Series
	for _, s := range P.Series {
		if _, ok := C.Named(s.Column); !ok {
			slog.Warn("column missing from the learning curve", "column", s.Column, "plot", P.File)
			continue
		}
		ret = append(ret, s)
	}
	return ret
}
