/*
 * plot.go, part of mdpost.
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

//Package mdplot draws the figures of mdpost with gonum/plot, and saves them as PNG files.
package mdplot

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

//DefaultDPI is the resolution of the figures when none is given.
const DefaultDPI = 300

//Font sizes, in points.
var (
	TitleSize  = vg.Points(18)
	LabelSize  = vg.Points(14)
	LegendSize = vg.Points(12)
)

//Some named colors.
var (
	Blue       = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	Navy       = color.RGBA{B: 128, A: 255}
	Green      = color.RGBA{G: 128, A: 255}
	DarkGreen  = color.RGBA{G: 100, A: 255}
	LightGreen = color.RGBA{R: 144, G: 238, B: 144, A: 180}
	Red        = color.RGBA{R: 255, A: 255}
	PureBlue   = color.RGBA{B: 255, A: 255}
	Black      = color.RGBA{A: 255}
)

var dashed = []vg.Length{vg.Points(6), vg.Points(4)}

//newPlot returns a plot with the given title and axis labels, and a grid.
func newPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.TextStyle.Font.Size = TitleSize
	p.X.Label.Text = xlabel
	p.X.Label.TextStyle.Font.Size = LabelSize
	p.Y.Label.Text = ylabel
	p.Y.Label.TextStyle.Font.Size = LabelSize
	p.Legend.TextStyle.Font.Size = LegendSize
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

//xys builds a plotter.XYs from two slices of equal length.
func xys(x, y []float64) (plotter.XYs, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("mdplot: %d x values for %d y values", len(x), len(y))
	}
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts, nil
}

//positive removes the points with y <= 0, which can't go in a log axis.
func positive(pts plotter.XYs) plotter.XYs {
	ret := pts[:0:0]
	for _, p := range pts {
		if p.Y > 0 && !math.IsNaN(p.Y) {
			ret = append(ret, p)
		}
	}
	return ret
}

//addLinePoints adds a line with markers, a matplotlib 'o-', to p.
func addLinePoints(p *plot.Plot, pts plotter.XYs, c color.Color, radius vg.Length, label string) error {
	l, s, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	l.LineStyle.Color = c
	l.LineStyle.Width = vg.Points(1.5)
	s.GlyphStyle.Color = c
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Radius = radius
	p.Add(l, s)
	if label != "" {
		p.Legend.Add(label, l, s)
	}
	return nil
}

//addDashed adds a dashed line without markers to p.
func addDashed(p *plot.Plot, pts plotter.XYs, c color.Color, label string) error {
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	l.LineStyle.Color = c
	l.LineStyle.Width = vg.Points(1.5)
	l.LineStyle.Dashes = dashed
	p.Add(l)
	if label != "" {
		p.Legend.Add(label, l)
	}
	return nil
}

//logY puts the Y axis of p in a log scale.
func logY(p *plot.Plot) {
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
}

//canvas returns an image canvas of the given size and resolution.
func canvas(w, h vg.Length, dpi int) *vgimg.Canvas {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
}

//writePNG writes the canvas c as a PNG image to the file name.
func writePNG(c *vgimg.Canvas, name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("mdplot: writing %s: %w", name, err)
	}
	return f.Close()
}

//save draws p in a w x h PNG image, at the given resolution.
func save(p *plot.Plot, w, h vg.Length, dpi int, name string) error {
	c := canvas(w, h, dpi)
	p.Draw(draw.New(c))
	return writePNG(c, name)
}

//takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var i, f, p, q, t float64
	var r, g, b float64
	maxcolor := 255.0
	conversion := maxcolor * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = h / 60
	i = math.Floor(h)
	f = h - i
	p = v * (1 - s)
	q = v * (1 - s*f)
	t = v * (1 - s*(1-f))
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default: //case 5
		r, g, b = v, p, q
	}
	return uint8(r * maxcolor), uint8(g * maxcolor), uint8(b * maxcolor)
}

//Palette returns the color number key of a set of steps colors spread over the hue wheel,
//skipping the yellows, which are hard to see on white.
func Palette(key, steps int) color.RGBA {
	norm := 260.0 / float64(steps)
	hp := float64(key)*norm + 20.0
	var h float64
	if hp < 55 {
		h = hp - 20.0
	} else {
		h = hp + 20.0
	}
	r, g, b := iHVS2RGB(h, 0.85, 1)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
