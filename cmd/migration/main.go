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

//Command migration draws the trajectories of the Li ions in the XY plane, over the
//starting positions of all the ions.
package main

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/mdpost/mdpost/config"
	"github.com/mdpost/mdpost/internal/cli"
	"github.com/mdpost/mdpost/lammps"
	"github.com/mdpost/mdpost/mdplot"
	"github.com/mdpost/mdpost/report"
	"github.com/mdpost/mdpost/traj/stf"
	v3 "github.com/mdpost/mdpost/v3"
	"gonum.org/v1/plot/vg"
)

func main() {
	c := cli.Setup("migration", "Li trajectories in the XY plane from a LAMMPS data file and dump.")
	cli.Check(run(c))
}

//markers for the LAMMPS types 1, 2 and 3, matplotlib sizes turned into radii.
var markers = []struct {
	label string
	size  float64 //pt²
}{
	{"Li+", 120},
	{"Cl-", 220},
	{"O2-", 180},
}

func run(c *config.Config) error {
	m := c.Migration
	slog.Info("Reading", "file", m.Data)
	data, err := lammps.ReadDataFile(m.Data)
	if err != nil {
		return err
	}
	colors := []mdplot.Species{{Color: mdplot.Green}, {Color: mdplot.PureBlue}, {Color: mdplot.Red}}
	var species []mdplot.Species
	for i, mk := range markers {
		sp := colors[i]
		sp.Label = mk.label
		sp.Radius = vg.Points(math.Sqrt(mk.size) / 2)
		sp.X, sp.Y = lammps.TypeXY(data, i+1, m.Scale)
		species = append(species, sp)
	}

	slog.Info("Reading", "traj", m.Traj, "type", m.LiType)
	D, err := lammps.NewDump(m.Traj, lammps.DumpOptions{Type: m.LiType, Columns: []string{"x", "y", "z"}})
	if err != nil {
		return err
	}
	defer D.Close()
	var onframe lammps.FrameFunc
	var W *stf.StfW
	if m.Cache != "" {
		header := map[string]string{"source": m.Traj, "type": strconv.Itoa(m.LiType), "unwrapped": "false"}
		if W, err = stf.NewWriter(m.Cache, D.Len(), header); err != nil {
			return err
		}
		defer W.Close()
		onframe = func(step int, coords *v3.Matrix) error {
			l := D.Box().Lengths()
			return W.WNextStep(coords, step, l[:])
		}
	}
	paths, err := lammps.XYPaths(D, m.Scale, onframe)
	if err != nil {
		return err
	}
	if W != nil {
		slog.Info("Writing", "file", m.Cache, "frames", W.Frames())
		if err := W.Close(); err != nil {
			return err
		}
	}
	slog.Info("Writing", "file", m.Plot)
	if err := mdplot.Migration(paths, species, "Li+ Trajectories in XY Plane", m.Plot, cli.DPI(m.DPI, c)); err != nil {
		return err
	}
	frames := 0
	if len(paths) > 0 {
		frames = len(paths[0].X)
	}
	fmt.Println(report.Summary("Li migration",
		report.R("Li atoms", "%d", len(paths)),
		report.R("Frames", "%d", frames),
		report.R("Plot", "%s", m.Plot),
	))
	return nil
}
