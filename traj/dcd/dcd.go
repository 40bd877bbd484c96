/*
 * dcd.go, part of mdpost.
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

//Package dcd reads and writes CHARMM-style DCD trajectories, the binary format of the
//LAMMPS "dump dcd" command.
package dcd

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"math"

	mdpost "github.com/mdpost/mdpost"
	v3 "github.com/mdpost/mdpost/v3"
)

const (
	format   = "dcd"
	maxTitle = 80
	cellSize = 48 //6 float64
)

//Error messages
const (
	TrajUnIni      = "Traj object uninitialized to read"
	NotEnoughSpace = "Not enough space in passed matrix"
	WrongFormat    = "Wrong format in the DCD file or frame"
)

//DCDObj is a DCD trajectory open for reading. It implements mdpost.Traj.
type DCDObj struct {
	natoms   int32
	nframes  int32 //as given in the header, it can be 0 for unfinished files
	start    int32 //timestep of the first frame
	every    int32 //timesteps between frames
	frame    int
	readable bool
	filename string
	cell     bool //each frame has a unit cell record
	fourdim  bool
	r        *bufio.Reader
	closer   io.Closer
	endian   binary.ByteOrder
	fields   [3][]float32
	cellbuf  [6]float64
}

func (D *DCDObj) errorf(caller string, cause error, msg string, args ...any) error {
	return mdpost.NewFileError(format, D.filename, caller, cause, msg, args...)
}

//New opens the DCD file filename for reading. Files ending in .gz or .zst are decompressed
//on the fly. Big and little endian files, in the CHARMM flavor, without fixed atoms, are supported.
func New(filename string) (*DCDObj, error) {
	f, err := mdpost.Open(filename)
	if err != nil {
		return nil, mdpost.NewFileError(format, filename, "New", err, "can't open file")
	}
	D := &DCDObj{filename: filename, r: bufio.NewReader(f), closer: f}
	if err := D.readHeader(); err != nil {
		f.Close()
		return nil, err
	}
	for i := range D.fields {
		D.fields[i] = make([]float32, D.natoms)
	}
	D.readable = true
	return D, nil
}

//Readable returns true if the object is ready to be read from. It doesn't
//guarantee that there is something left to read.
func (D *DCDObj) Readable() bool {
	return D.readable
}

//Len returns the number of atoms per frame.
func (D *DCDObj) Len() int {
	return int(D.natoms)
}

//Frames returns the number of frames the header announces.
func (D *DCDObj) Frames() int {
	return int(D.nframes)
}

//Timestep returns the MD timestep of the last frame read, from the first
//step and the interval given in the header.
func (D *DCDObj) Timestep() int {
	return int(D.start) + (D.frame-1)*int(D.every)
}

//Close closes the file. The object can't be read afterwards.
func (D *DCDObj) Close() error {
	if D.closer == nil {
		return nil
	}
	D.readable = false
	err := D.closer.Close()
	D.closer = nil
	return err
}

func (D *DCDObj) int32(caller string) (int32, error) {
	var i int32
	if err := binary.Read(D.r, D.endian, &i); err != nil {
		return 0, D.errorf(caller, err, "can't read")
	}
	return i, nil
}

//marker reads a Fortran record marker and checks that it is want.
func (D *DCDObj) marker(want int32, caller string) error {
	m, err := D.int32(caller)
	if err != nil {
		return err
	}
	if m != want {
		return D.errorf(caller, nil, "%s: record of %d bytes, %d expected", WrongFormat, m, want)
	}
	return nil
}

//record reads a whole Fortran record of size bytes into data.
func (D *DCDObj) record(size int32, data any, caller string) error {
	if err := D.marker(size, caller); err != nil {
		return err
	}
	if err := binary.Read(D.r, D.endian, data); err != nil {
		return D.errorf(caller, err, "can't read record")
	}
	return D.marker(size, caller)
}

func (D *DCDObj) readHeader() error {
	var first [4]byte
	if _, err := io.ReadFull(D.r, first[:]); err != nil {
		return D.errorf("New", err, "can't read header")
	}
	//the first record is always 84 bytes long, which gives away the byte order.
	switch {
	case binary.LittleEndian.Uint32(first[:]) == 84:
		D.endian = binary.LittleEndian
	case binary.BigEndian.Uint32(first[:]) == 84:
		D.endian = binary.BigEndian
	default:
		return D.errorf("New", nil, "%s: not a DCD file", WrongFormat)
	}
	var magic [4]byte
	var buf [80]byte
	if _, err := io.ReadFull(D.r, magic[:]); err != nil {
		return D.errorf("New", err, "can't read header")
	}
	if string(magic[:]) != "CORD" {
		return D.errorf("New", nil, "wrong magic number %q", magic[:])
	}
	if _, err := io.ReadFull(D.r, buf[:]); err != nil {
		return D.errorf("New", err, "can't read header")
	}
	i32 := func(off int) int32 { return int32(D.endian.Uint32(buf[off:])) }
	D.nframes, D.start, D.every = i32(0), i32(4), i32(8)
	if D.every <= 0 {
		D.every = 1
	}
	//X-plor sets the last int to zero, CHARMM to its version number.
	if i32(76) == 0 {
		return D.errorf("New", nil, "X-plor DCD not supported")
	}
	if i32(32) != 0 {
		return D.errorf("New", nil, "fixed atoms not supported")
	}
	D.cell = i32(40) != 0
	D.fourdim = i32(44) == 1
	if err := D.marker(84, "New"); err != nil {
		return err
	}

	size, err := D.int32("New")
	if err != nil {
		return err
	}
	ntitle, err := D.int32("New")
	if err != nil {
		return err
	}
	if ntitle < 0 || size != 4+ntitle*maxTitle {
		return D.errorf("New", nil, "%s: title record of %d bytes for %d lines", WrongFormat, size, ntitle)
	}
	if _, err := D.r.Discard(int(ntitle * maxTitle)); err != nil {
		return D.errorf("New", err, "can't read title")
	}
	if err := D.marker(size, "New"); err != nil {
		return err
	}
	if err := D.record(4, &D.natoms, "New"); err != nil {
		return err
	}
	if D.natoms <= 0 {
		return D.errorf("New", nil, "%d atoms in trajectory", D.natoms)
	}
	return nil
}

//Next reads the next frame into output, or discards it if output is nil. If box is
//given and the frame has a unit cell, the lengths of the A, B and C vectors are put
//in box[0][0:3], or, if box[0] has room for them, the 9 components of the vectors,
//with A along x and B in the xy plane. After the last frame, an mdpost.LastFrameError is returned.
func (D *DCDObj) Next(output *v3.Matrix, box ...[]float64) error {
	if !D.readable {
		return D.errorf("Next", nil, TrajUnIni)
	}
	if output != nil && output.NVecs() < int(D.natoms) {
		return D.errorf("Next", nil, NotEnoughSpace)
	}
	blocksize := D.natoms * 4
	first, err := D.int32("Next")
	if err != nil {
		if errors.Is(err, io.EOF) {
			D.Close()
			return mdpost.NewLastFrameError(format, D.filename, "Next")
		}
		return err
	}
	//some writers leave out the unit cell of some frames, so the size tells which record this is.
	if D.cell && first == cellSize {
		if err := binary.Read(D.r, D.endian, &D.cellbuf); err != nil {
			return D.errorf("Next", err, "can't read unit cell")
		}
		if err := D.marker(cellSize, "Next"); err != nil {
			return err
		}
		if len(box) > 0 {
			switch {
			case len(box[0]) >= 9:
				v := cellVectors(D.cellbuf)
				copy(box[0], v[:])
			case len(box[0]) >= 3:
				//CHARMM order: A, cos(gamma), B, cos(beta), cos(alpha), C
				box[0][0], box[0][1], box[0][2] = D.cellbuf[0], D.cellbuf[2], D.cellbuf[5]
			}
		}
		if err := D.marker(blocksize, "Next"); err != nil {
			return err
		}
	} else if first != blocksize {
		return D.errorf("Next", nil, "%s: record of %d bytes, %d expected", WrongFormat, first, blocksize)
	}
	if err := binary.Read(D.r, D.endian, D.fields[0]); err != nil {
		return D.errorf("Next", err, "frame %d cut", D.frame)
	}
	if err := D.marker(blocksize, "Next"); err != nil {
		return err
	}
	for _, f := range D.fields[1:] {
		if err := D.record(blocksize, f, "Next"); err != nil {
			return err
		}
	}
	if D.fourdim {
		size, err := D.int32("Next")
		if err != nil {
			return err
		}
		if _, err := D.r.Discard(int(size)); err != nil {
			return D.errorf("Next", err, "can't skip the fourth dimension")
		}
		if err := D.marker(size, "Next"); err != nil {
			return err
		}
	}
	D.frame++
	if output == nil {
		return nil
	}
	for i := 0; i < int(D.natoms); i++ {
		output.Set(i, 0, float64(D.fields[0][i]))
		output.Set(i, 1, float64(D.fields[1][i]))
		output.Set(i, 2, float64(D.fields[2][i]))
	}
	return nil
}

//cosine takes an angle field of the unit cell record. LAMMPS writes cosines, while
//CHARMM and NAMD write the angle in degrees.
func cosine(v float64) float64 {
	if math.Abs(v) > 1 {
		return math.Cos(v * math.Pi / 180)
	}
	return v
}

//cellVectors returns the A, B and C vectors of a unit cell record, A along x and B in the xy plane.
func cellVectors(c [6]float64) [9]float64 {
	a, b, cl := c[0], c[2], c[5]
	cg, cb, ca := cosine(c[1]), cosine(c[3]), cosine(c[4])
	sg := math.Sqrt(1 - cg*cg)
	var v [9]float64
	v[0] = a
	v[3], v[4] = b*cg, b*sg
	v[6] = cl * cb
	if sg != 0 {
		v[7] = cl * (ca - cb*cg) / sg
	}
	v[8] = math.Sqrt(math.Max(cl*cl-v[6]*v[6]-v[7]*v[7], 0))
	return v
}
