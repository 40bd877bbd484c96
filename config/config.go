/*
 * config.go, part of mdpost.
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

//Package config holds the parameters of the mdpost commands. They all have defaults,
//and can be changed with a YAML file with one section per command.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//NEMD are the parameters of the thermal conductivity analysis.
type NEMD struct {
	Data     string `yaml:"data"`
	Profile  string `yaml:"profile"`
	Heatflow string `yaml:"heatflow"`
	CSV      string `yaml:"csv"`
	Plot     string `yaml:"plot"`
	Report   string `yaml:"report"`
	//Replicas multiplies the box lengths of the data file along x, y and z.
	Replicas [3]int `yaml:"replicas"`
	//Trim is the number of profile points left out at each end of the gradient fit.
	Trim int `yaml:"trim"`
	//HeatflowSkip is the number of lines at the top of the heat flow file that are not data.
	HeatflowSkip int `yaml:"heatflow_skip"`
}

//Expansion are the parameters of the thermal expansion analysis.
type Expansion struct {
	Dir    string `yaml:"dir"` //where the thermal_expansion_*K.txt files are
	Report string `yaml:"report"`
	Plot   string `yaml:"plot"`
}

//MSDFit are the parameters of the diffusivity fit.
type MSDFit struct {
	Poscar      string  `yaml:"poscar"`
	MSD         string  `yaml:"msd"`
	Plot        string  `yaml:"plot"`
	Report      string  `yaml:"report"`
	Species     string  `yaml:"species"`
	Temperature float64 `yaml:"temperature"` //K
	Timestep    float64 `yaml:"timestep"`    //fs per step of the MSD file
	//FitStart and FitEnd are the steps that limit the fit. Zeros mean the ends of the series.
	FitStart float64 `yaml:"fit_start"`
	FitEnd   float64 `yaml:"fit_end"`
}

//MSD are the parameters of the MSD calculation from a trajectory.
type MSD struct {
	Traj string `yaml:"traj"` //a LAMMPS dump, a DCD or an STF file
	Out  string `yaml:"out"`
	Type int    `yaml:"type"` //LAMMPS atom type of the mobile ions, 0 for all atoms
	//Columns are the 3 coordinate columns of the dump to use. Empty means the best available.
	Columns []string `yaml:"columns"`
	//NoUnwrap disables the unwrapping of wrapped coordinates.
	NoUnwrap bool `yaml:"no_unwrap"`
}

//Migration are the parameters of the XY migration plot.
type Migration struct {
	Data   string  `yaml:"data"`
	Traj   string  `yaml:"traj"`
	Plot   string  `yaml:"plot"`
	Scale  float64 `yaml:"scale"`
	LiType int     `yaml:"li_type"`
	//Cache, if not empty, is an STF file where the frames of the Li atoms are saved.
	Cache string `yaml:"cache"`
	DPI   int    `yaml:"dpi"`
}

//VASP2LAMMPS are the parameters of the POSCAR conversion.
type VASP2LAMMPS struct {
	Poscar string `yaml:"poscar"`
	Out    string `yaml:"out"`
	//Order gives the LAMMPS type of each species: the first one is type 1, and so on.
	Order []string `yaml:"order"`
}

//PlotLoss are the parameters of the learning curve plots.
type PlotLoss struct {
	Lcurve string `yaml:"lcurve"`
	Dir    string `yaml:"dir"` //where the plots go
}

//Config holds the parameters of all the commands.
type Config struct {
	//DPI is the resolution of the figures, unless a command sets its own.
	DPI         int         `yaml:"dpi"`
	NEMD        NEMD        `yaml:"nemd"`
	Expansion   Expansion   `yaml:"expansion"`
	MSDFit      MSDFit      `yaml:"msdfit"`
	MSD         MSD         `yaml:"msd"`
	Migration   Migration   `yaml:"migration"`
	VASP2LAMMPS VASP2LAMMPS `yaml:"vasp2lammps"`
	PlotLoss    PlotLoss    `yaml:"plotloss"`
}

//Default returns the configuration that reproduces the usual file names and parameters.
func Default() *Config {
	return &Config{
		DPI: 300,
		NEMD: NEMD{
			Data:         "lammps.data",
			Profile:      "temp_profile.dat",
			Heatflow:     "heatflow.dat",
			CSV:          "temperature_distribution.csv",
			Plot:         "temp_profile.png",
			Report:       "thermal_conductivity_results.txt",
			Replicas:     [3]int{8, 1, 1},
			Trim:         10,
			HeatflowSkip: 1,
		},
		Expansion: Expansion{
			Dir:    ".",
			Report: "expansion_coefficients.txt",
			Plot:   "thermal_expansion.png",
		},
		MSDFit: MSDFit{
			Poscar:      "POSCAR",
			MSD:         "msd_Li.out",
			Plot:        "msd_fit.png",
			Report:      "msd_fit_results.txt",
			Species:     "Li",
			Temperature: 600,
			Timestep:    1,
		},
		MSD: MSD{
			Traj: "traj_all.lammpstrj",
			Out:  "msd_Li.out",
			Type: 1,
		},
		Migration: Migration{
			Data:   "lammps.data",
			Traj:   "traj_all.lammpstrj",
			Plot:   "Li_XY_fulltrajectory_scaled.png",
			Scale:  1,
			LiType: 1,
			DPI:    600,
		},
		VASP2LAMMPS: VASP2LAMMPS{
			Poscar: "POSCAR",
			Out:    "lammps.data",
			Order:  []string{"Li", "Cl", "O", "Br"},
		},
		PlotLoss: PlotLoss{
			Lcurve: "lcurve.out",
			Dir:    ".",
		},
	}
}

//New returns the default configuration, changed by whatever the YAML file in path sets.
//An empty path gives the defaults. This method calls Check on the result.
func New(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := c.Decode(bufio.NewReader(f)); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

//Decode overwrites the fields of c that the YAML document in r sets, and checks the result.
//Unknown keys are an error.
func (c *Config) Decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if err := c.Check(); err != nil {
		return fmt.Errorf("Check: %w", err)
	}
	return nil
}

//Check returns an error if a field doesn't meet its requirements.
func (c *Config) Check() error {
	if c.DPI <= 0 {
		return fmt.Errorf("dpi must be greater than 0")
	}
	for i, r := range c.NEMD.Replicas {
		if r < 0 {
			return fmt.Errorf("nemd: replica %d can't be negative", i)
		}
	}
	if c.NEMD.Trim < 0 || c.NEMD.HeatflowSkip < 0 {
		return fmt.Errorf("nemd: trim and heatflow_skip can't be negative")
	}
	if c.MSDFit.Species == "" {
		return fmt.Errorf("msdfit: species must be given")
	}
	if c.MSDFit.Temperature <= 0 {
		return fmt.Errorf("msdfit: temperature must be greater than 0")
	}
	if c.MSDFit.Timestep <= 0 {
		return fmt.Errorf("msdfit: timestep must be greater than 0")
	}
	if c.MSDFit.FitStart < 0 || (c.MSDFit.FitEnd != 0 && c.MSDFit.FitEnd <= c.MSDFit.FitStart) {
		return fmt.Errorf("msdfit: fit_end must be greater than fit_start")
	}
	if c.MSD.Type < 0 {
		return fmt.Errorf("msd: type can't be negative")
	}
	if n := len(c.MSD.Columns); n != 0 && n != 3 {
		return fmt.Errorf("msd: %d columns given, 3 needed", n)
	}
	if c.Migration.Scale <= 0 {
		return fmt.Errorf("migration: scale must be greater than 0")
	}
	if c.Migration.LiType <= 0 {
		return fmt.Errorf("migration: li_type must be greater than 0")
	}
	if c.Migration.DPI < 0 {
		return fmt.Errorf("migration: dpi can't be negative")
	}
	if len(c.VASP2LAMMPS.Order) == 0 {
		return fmt.Errorf("vasp2lammps: the species order can't be empty")
	}
	seen := make(map[string]bool)
	for _, s := range c.VASP2LAMMPS.Order {
		if seen[s] {
			return fmt.Errorf("vasp2lammps: species %s repeated in the order", s)
		}
		seen[s] = true
	}
	return nil
}
