/*
 * dcd_write.go, part of mdpost.
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

package dcd

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"

	mdpost "github.com/mdpost/mdpost"
	v3 "github.com/mdpost/mdpost/v3"
)

//DCDWObj is a DCD trajectory open for writing. Frames always carry a unit cell,
//as in the files LAMMPS writes.
type DCDWObj struct {
	natoms   int32
	frames   int32
	writable bool
	filename string
	dcd      *os.File
	buf      bytes.Buffer
	fields   [3][]float32
}

//NewWriter creates the DCD file filename for frames of natoms atoms. start is the
//timestep of the first frame, and every the number of timesteps between frames.
func NewWriter(filename string, natoms, start, every int) (*DCDWObj, error) {
	D := &DCDWObj{natoms: int32(natoms), filename: filename}
	if natoms <= 0 {
		return nil, D.errorf("NewWriter", nil, "%d atoms in trajectory", natoms)
	}
	var err error
	D.dcd, err = os.Create(filename)
	if err != nil {
		return nil, D.errorf("NewWriter", err, "can't create file")
	}
	if err := D.writeHeader(int32(start), int32(every)); err != nil {
		D.dcd.Close()
		return nil, err
	}
	for i := range D.fields {
		D.fields[i] = make([]float32, natoms)
	}
	D.writable = true
	return D, nil
}

func (D *DCDWObj) errorf(caller string, cause error, msg string, args ...any) error {
	return mdpost.NewFileError(format, D.filename, caller, cause, msg, args...)
}

//le writes each of the values to D.buf, little endian.
func (D *DCDWObj) le(values ...any) {
	for _, v := range values {
		//writing fixed-size data to a bytes.Buffer can't fail.
		binary.Write(&D.buf, binary.LittleEndian, v)
	}
}

//flush writes the content of D.buf to the file.
func (D *DCDWObj) flush(caller string) error {
	_, err := D.buf.WriteTo(D.dcd)
	D.buf.Reset()
	if err != nil {
		return D.errorf(caller, err, "can't write")
	}
	return nil
}

func (D *DCDWObj) writeHeader(start, every int32) error {
	D.le(int32(84), []byte("CORD"))
	//frames (updated after each one is written), first step, interval, last step
	D.le(int32(0), start, every, start)
	D.le(make([]int32, 5))
	D.le(float32(1)) //delta time
	D.le(int32(1))   //unit cell in every frame
	D.le(make([]int32, 8))
	D.le(int32(24)) //pretend to be CHARMM 24
	D.le(int32(84))

	title := make([]byte, 2*maxTitle)
	copy(title, "Written by mdpost")
	for i := len("Written by mdpost"); i < len(title); i++ {
		title[i] = ' '
	}
	D.le(int32(4+2*maxTitle), int32(2), title, int32(4+2*maxTitle))
	D.le(int32(4), D.natoms, int32(4))
	return D.flush("NewWriter")
}

//WNext writes coords as the next frame. If box is given, it can hold the 3 orthogonal
//box lengths or the 9 components of the cell vectors. Otherwise the unit cell is left at zero.
func (D *DCDWObj) WNext(coords *v3.Matrix, box ...[]float64) error {
	if !D.writable {
		return D.errorf("WNext", nil, "Traj object uninitialized to write")
	}
	if coords == nil {
		return D.errorf("WNext", nil, "got nil coordinates")
	}
	if int32(coords.NVecs()) != D.natoms {
		return D.errorf("WNext", nil, "%d coordinates given, but %d expected", coords.NVecs(), D.natoms)
	}
	var cell [6]float64
	if len(box) > 0 {
		switch {
		case len(box[0]) >= 9:
			cell = cellRecord(box[0][:9])
		case len(box[0]) >= 3:
			cell[0], cell[2], cell[5] = box[0][0], box[0][1], box[0][2]
		}
	}
	D.le(int32(cellSize), cell, int32(cellSize))
	for i := 0; i < int(D.natoms); i++ {
		D.fields[0][i] = float32(coords.At(i, 0))
		D.fields[1][i] = float32(coords.At(i, 1))
		D.fields[2][i] = float32(coords.At(i, 2))
	}
	size := D.natoms * 4
	for _, f := range D.fields {
		D.le(size, f, size)
	}
	if err := D.flush("WNext"); err != nil {
		return err
	}
	D.frames++
	return D.updateFrames()
}

//updateFrames writes the number of frames in the header. DCD requires it at the beginning.
func (D *DCDWObj) updateFrames() error {
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], uint32(D.frames))
	if _, err := D.dcd.WriteAt(n[:], 8); err != nil {
		return D.errorf("updateFrames", err, "can't write")
	}
	return nil
}

//Close closes the file. The object can't be written to afterwards.
func (D *DCDWObj) Close() error {
	if !D.writable {
		return nil
	}
	D.writable = false
	if err := D.dcd.Close(); err != nil {
		return D.errorf("Close", err, "can't close")
	}
	return nil
}

//cellRecord returns the A, cos(gamma), B, cos(beta), cos(alpha), C unit cell record of the
//cell vectors in v.
func cellRecord(v []float64) [6]float64 {
	a, b, c := v[0:3], v[3:6], v[6:9]
	norm := func(x []float64) float64 { return math.Sqrt(x[0]*x[0] + x[1]*x[1] + x[2]*x[2]) }
	cos := func(x, y []float64, nx, ny float64) float64 {
		if nx == 0 || ny == 0 {
			return 0
		}
		return (x[0]*y[0] + x[1]*y[1] + x[2]*y[2]) / (nx * ny)
	}
	na, nb, nc := norm(a), norm(b), norm(c)
	return [6]float64{na, cos(a, b, na, nb), nb, cos(a, c, na, nc), cos(b, c, nb, nc), nc}
}
