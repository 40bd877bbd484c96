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

//Command msd computes the mean square displacement of one atom type over all the lag
//times of a LAMMPS dump, a DCD trajectory, or an STF trajectory written by the
//migration command.
package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	mdpost "github.com/mdpost/mdpost"
	"github.com/mdpost/mdpost/config"
	"github.com/mdpost/mdpost/diffusion"
	"github.com/mdpost/mdpost/internal/cli"
	"github.com/mdpost/mdpost/lammps"
	"github.com/mdpost/mdpost/report"
	"github.com/mdpost/mdpost/traj/dcd"
	"github.com/mdpost/mdpost/traj/stf"
)

func main() {
	c := cli.Setup("msd", "MSD of one atom type from a LAMMPS dump, or of all the atoms of a DCD or STF trajectory.")
	cli.Check(run(c))
}

//isSTF returns true if name looks like an STF trajectory.
func isSTF(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".stf", ".stz", ".str":
		return true
	}
	return false
}

//isDCD returns true if name is a DCD trajectory, maybe compressed.
func isDCD(name string) bool {
	return strings.ToLower(filepath.Ext(mdpost.TrimCompression(name))) == ".dcd"
}

//open returns the trajectory in m.Traj and whether its coordinates need unwrapping.
func open(m config.MSD) (mdpost.Traj, func(), bool, error) {
	if isDCD(m.Traj) {
		//DCD files keep all the atoms, so the type selection doesn't apply.
		if m.Type != 0 {
			slog.Warn("DCD trajectories have no atom types, all atoms are used", "type", m.Type)
		}
		D, err := dcd.New(m.Traj)
		if err != nil {
			return nil, nil, false, err
		}
		return D, func() { D.Close() }, !m.NoUnwrap, nil
	}
	if isSTF(m.Traj) {
		S, err := stf.New(m.Traj)
		if err != nil {
			return nil, nil, false, err
		}
		//the migration cache records where its coordinates came from.
		wrapped := S.Header["unwrapped"] != "true"
		return S, S.Close, wrapped && !m.NoUnwrap, nil
	}
	D, err := lammps.NewDump(m.Traj, lammps.DumpOptions{Type: m.Type, Columns: m.Columns})
	if err != nil {
		return nil, nil, false, err
	}
	closer := func() {
		if err := D.Close(); err != nil {
			slog.Warn("closing the trajectory", "error", err)
		}
	}
	return D, closer, !D.Unwrapped() && !m.NoUnwrap, nil
}

func run(c *config.Config) error {
	m := c.MSD
	slog.Info("Reading", "traj", m.Traj, "type", m.Type)
	T, closer, unwrap, err := open(m)
	if err != nil {
		return err
	}
	defer closer()
	if unwrap {
		slog.Info("Unwrapping coordinates with the minimum image convention")
	}
	S, err := diffusion.TrajMSD(T, unwrap)
	if err != nil {
		return err
	}
	slog.Info("Writing", "file", m.Out)
	if err := S.WriteFile(m.Out); err != nil {
		return err
	}
	last := 0.0
	if len(S.MSD) > 0 {
		last = S.MSD[len(S.MSD)-1]
	}
	fmt.Println(report.Summary("Mean square displacement",
		report.R("Atoms", "%d", T.Len()),
		report.R("Frames", "%d", len(S.MSD)),
		report.R("Unwrapped here", "%t", unwrap),
		report.R("Last MSD", "%.4g Å²", last),
	))
	return nil
}
