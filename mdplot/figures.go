/*
 * figures.go, part of mdpost.
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

package mdplot

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	mdpost "github.com/mdpost/mdpost"
	"github.com/mdpost/mdpost/diffusion"
	"github.com/mdpost/mdpost/fit"
	"github.com/mdpost/mdpost/lammps"
	"github.com/mdpost/mdpost/thermal"
	"github.com/mdpost/mdpost/train"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

//TemperatureProfile plots the temperature (K) against the position (m) along the transport direction.
func TemperatureProfile(x, T []float64, name string, dpi int) error {
	pts, err := xys(x, T)
	if err != nil {
		return err
	}
	p := newPlot("Temperature Profile from NEMD", "x position (m)", "Temperature (K)")
	if err := addLinePoints(p, pts, Blue, vg.Points(3), "Temperature profile"); err != nil {
		return err
	}
	return save(p, 6.4*vg.Inch, 4.8*vg.Inch, dpi, name)
}

//MSDFit plots the MSD against time, the Einstein fit over the fitted window, and the
//resulting diffusivity and conductivity.
func MSDFit(R *diffusion.Result, species string, name string, dpi int) error {
	pts, err := xys(R.Time, R.MSD)
	if err != nil {
		return err
	}
	if len(pts) == 0 {
		return fmt.Errorf("mdplot.MSDFit: no data")
	}
	p := newPlot(species+" MSD and Diffusion Fitting", "Time (ps)", "MSD (Å²)")
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	l.LineStyle.Color = Blue
	l.LineStyle.Width = vg.Points(2)
	p.Add(l)
	p.Legend.Add("MSD data", l)

	//the fit is MSD (m²) vs t (s), the plot is in Å² and ps.
	fitted := make(plotter.XYs, len(R.FitTime))
	for i, t := range R.FitTime {
		fitted[i] = plotter.XY{X: t, Y: R.Fit.Eval(t*mdpost.Picosecond) / mdpost.A2ToM2}
	}
	if err := addDashed(p, fitted, Red, "Linear fit"); err != nil {
		return err
	}
	text := fmt.Sprintf("Diffusivity = %.3e cm²/s\nConductivity = %.3e S/cm", R.D, R.Sigma)
	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: 0.05 * floats.Max(R.Time), Y: 0.15 * floats.Max(R.MSD)}},
		Labels: []string{text},
	})
	if err != nil {
		return err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Font.Size = vg.Points(13)
	}
	p.Add(labels)
	return save(p, 8*vg.Inch, 6*vg.Inch, dpi, name)
}

//Expansion plots the volume and the lattice constant against the temperature, side by side,
//each with its linear fit.
func Expansion(R *thermal.ExpansionResult, name string, dpi int) error {
	T := make([]float64, len(R.Points))
	V := make([]float64, len(R.Points))
	L := make([]float64, len(R.Points))
	for i, pt := range R.Points {
		T[i], V[i], L[i] = pt.T, pt.V, pt.L
	}
	vol := newPlot("Thermal Expansion (Volume)", "Temperature (K)", "Volume (Å³)")
	lat := newPlot("Thermal Expansion (Lattice)", "Temperature (K)", "Lattice Constant (Å)")
	for _, panel := range []struct {
		p         *plot.Plot
		y         []float64
		line      fit.Line
		label     string
		c, fitcol color.Color
	}{
		{vol, V, R.VFit, "Volume (avg)", PureBlue, Navy},
		{lat, L, R.LFit, "Lattice Const (Lx)", Green, DarkGreen},
	} {
		pts, err := xys(T, panel.y)
		if err != nil {
			return err
		}
		if err := addLinePoints(panel.p, pts, panel.c, vg.Points(3), panel.label); err != nil {
			return err
		}
		line, err := xys(T, panel.line.EvalAll(T))
		if err != nil {
			return err
		}
		if err := addDashed(panel.p, line, panel.fitcol, "Linear Fit"); err != nil {
			return err
		}
	}
	c := canvas(10*vg.Inch, 5*vg.Inch, dpi)
	dc := draw.New(c)
	tiles := draw.Tiles{Rows: 1, Cols: 2, PadX: 6 * vg.Millimeter, PadTop: 2 * vg.Millimeter, PadBottom: 2 * vg.Millimeter, PadLeft: 2 * vg.Millimeter, PadRight: 2 * vg.Millimeter}
	plots := [][]*plot.Plot{{vol, lat}}
	canvases := plot.Align(plots, tiles, dc)
	for j, p := range plots[0] {
		p.Draw(canvases[0][j])
	}
	return writePNG(c, name)
}

//LossCurve draws one learning-curve panel with the given series, which must be columns of C,
//and saves it in dir, with the file name of the panel.
func LossCurve(C *train.Curve, P train.Panel, series []train.Series, dir string, dpi int) error {
	if len(series) == 0 {
		return fmt.Errorf("mdplot.LossCurve: nothing to plot in %s", P.File)
	}
	p := newPlot(P.Title, "Step", P.YLabel)
	if P.LogY {
		logY(p)
	}
	for i, s := range series {
		y, ok := C.Named(s.Column)
		if !ok {
			return fmt.Errorf("mdplot.LossCurve: no column %s", s.Column)
		}
		pts, err := xys(C.Step, y)
		if err != nil {
			return err
		}
		if P.LogY {
			pts = positive(pts)
		}
		if len(pts) == 0 {
			continue
		}
		if err := addLinePoints(p, pts, Palette(i, len(series)), vg.Points(1.5), s.Label); err != nil {
			return err
		}
	}
	w, h := 10*vg.Inch, 6*vg.Inch
	if len(series) > 2 {
		w, h = 12*vg.Inch, 8*vg.Inch
	}
	return save(p, w, h, dpi, filepath.Join(dir, P.File))
}

//Species is a set of atoms drawn as markers in the migration plot.
type Species struct {
	Label  string
	X, Y   []float64
	Color  color.Color
	Radius vg.Length
}

//Migration draws the XY paths of the mobile ions over the positions of the atoms in the
//starting structure, with the same scale on both axes.
func Migration(paths []*lammps.Path, species []Species, title, name string, dpi int) error {
	p := newPlot(title, "X (Å)", "Y (Å)")
	xmin, xmax := math.Inf(1), math.Inf(-1)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	bounds := func(x, y []float64) {
		if len(x) == 0 {
			return
		}
		xmin, xmax = math.Min(xmin, floats.Min(x)), math.Max(xmax, floats.Max(x))
		ymin, ymax = math.Min(ymin, floats.Min(y)), math.Max(ymax, floats.Max(y))
	}
	for _, path := range paths {
		pts, err := xys(path.X, path.Y)
		if err != nil {
			return err
		}
		if len(pts) < 2 {
			continue
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		l.LineStyle.Color = LightGreen
		l.LineStyle.Width = vg.Points(0.7)
		p.Add(l)
		bounds(path.X, path.Y)
	}
	for _, sp := range species {
		if len(sp.X) == 0 {
			continue
		}
		pts, err := xys(sp.X, sp.Y)
		if err != nil {
			return err
		}
		//a black disk under the colored one makes the edge.
		edge, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		edge.GlyphStyle = draw.GlyphStyle{Color: Black, Radius: sp.Radius + vg.Points(0.8), Shape: draw.CircleGlyph{}}
		fill, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		fill.GlyphStyle = draw.GlyphStyle{Color: sp.Color, Radius: sp.Radius, Shape: draw.CircleGlyph{}}
		p.Add(edge, fill)
		p.Legend.Add(sp.Label, edge, fill)
		bounds(sp.X, sp.Y)
	}
	if math.IsInf(xmin, 1) {
		return fmt.Errorf("mdplot.Migration: nothing to plot")
	}
	//equal aspect: both axes get the larger span.
	span := math.Max(xmax-xmin, ymax-ymin) * 1.05
	if span == 0 {
		span = 1
	}
	cx, cy := (xmin+xmax)/2, (ymin+ymax)/2
	p.X.Min, p.X.Max = cx-span/2, cx+span/2
	p.Y.Min, p.Y.Max = cy-span/2, cy+span/2
	return save(p, 8*vg.Inch, 8*vg.Inch, dpi, name)
}
