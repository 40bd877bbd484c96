/*
 * xy.go, part of mdpost.
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

package lammps

import (
	mdpost "github.com/mdpost/mdpost"
	v3 "github.com/mdpost/mdpost/v3"
)

//Path is the projection on the XY plane of the trajectory of one atom.
type Path struct {
	ID   int
	X, Y []float64
}

//FrameFunc is called by XYPaths for each frame read, with the timestep of the frame
//and the (unscaled) coordinates of the selected atoms. The matrix is reused between calls.
type FrameFunc func(timestep int, coords *v3.Matrix) error

//XYPaths reads every frame of the trajectory D, and returns, for each selected atom, its path on the
//XY plane with the coordinates multiplied by scale. Paths are sorted by atom ID. If onframe is not nil,
//it is called for every frame, and an error from it stops the reading.
func XYPaths(D *DumpReader, scale float64, onframe FrameFunc) ([]*Path, error) {
	ids := D.IDs()
	paths := make([]*Path, len(ids))
	for i, id := range ids {
		paths[i] = &Path{ID: id}
	}
	coords := v3.Zeros(D.Len())
	for {
		err := D.Next(coords)
		if err != nil {
			if mdpost.IsLastFrame(err) {
				break
			}
			return nil, mdpost.ErrDecorate(err, "XYPaths")
		}
		for i, p := range paths {
			c := coords.Vec(i)
			p.X = append(p.X, c[0]*scale)
			p.Y = append(p.Y, c[1]*scale)
		}
		if onframe != nil {
			if err := onframe(D.Timestep(), coords); err != nil {
				return nil, err
			}
		}
	}
	return paths, nil
}

//TypeXY returns the XY positions, multiplied by scale, of the atoms of type t in D.
func TypeXY(D *Data, t int, scale float64) (x, y []float64) {
	for _, i := range mdpost.TypeIndexes(D, t) {
		c := D.Coords.Vec(i)
		x = append(x, c[0]*scale)
		y = append(y, c[1]*scale)
	}
	return x, y
}
