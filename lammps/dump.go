/*
 * dump.go, part of mdpost.
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
	"bufio"
	"errors"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	mdpost "github.com/mdpost/mdpost"
	v3 "github.com/mdpost/mdpost/v3"
)

const dumpFormat = "lammpstrj"

//Coordinate kinds, in the order they are looked for when no columns are requested.
var coordColumns = [][3]string{
	{"xu", "yu", "zu"},
	{"x", "y", "z"},
	{"xsu", "ysu", "zsu"},
	{"xs", "ys", "zs"},
}

//DumpOptions controls which atoms and which coordinates a DumpReader returns.
type DumpOptions struct {
	//Type selects the atoms of one type. Zero means all atoms.
	Type int
	//Columns names the 3 coordinate columns to read. If empty, unwrapped coordinates
	//(xu yu zu) are used if present, then x y z, then the scaled ones.
	Columns []string
}

//frame is one snapshot, as read from the file.
type frame struct {
	timestep int
	box      mdpost.Box
	ids      []int
	types    []int
	xyz      [][3]float64
}

//DumpReader reads LAMMPS text dumps (dump atom or dump custom). It implements mdpost.Traj.
//Atoms are always returned sorted by ID, regardless of the order in the file.
type DumpReader struct {
	filename string
	f        io.ReadCloser
	r        *bufio.Reader
	opts     DumpOptions
	readable bool

	cols     [3]int //column of each coordinate
	idcol    int
	typecol  int
	scaled   bool
	unwrap   bool
	ids      []int       //selected atom IDs, sorted
	index    map[int]int //atom ID to row of the output
	natoms   int         //atoms per frame in the file
	pending  *frame
	nexterr  error //error found reading the frame after pending
	timestep int   //timestep of the last frame returned by Next
	box      mdpost.Box
	lineno   int
}

//NewDump opens the dump file name, which can be compressed, and reads its first frame
//to find the atoms and columns. The first call to Next returns that frame.
func NewDump(name string, opts DumpOptions) (*DumpReader, error) {
	f, err := mdpost.Open(name)
	if err != nil {
		return nil, err
	}
	D, err := NewDumpReader(f, name, opts)
	if err != nil {
		f.Close()
		return nil, err
	}
	return D, nil
}

//NewDumpReader is like NewDump, but reads from r. If r is an io.Closer, Close closes it.
func NewDumpReader(r io.Reader, name string, opts DumpOptions) (*DumpReader, error) {
	D := &DumpReader{filename: name, r: bufio.NewReader(r), opts: opts}
	if c, ok := r.(io.ReadCloser); ok {
		D.f = c
	}
	fr, err := D.readFrame(true)
	if err != nil {
		if err == io.EOF {
			return nil, D.errorf("NewDump", nil, "no frames in file")
		}
		return nil, mdpost.ErrDecorate(err, "NewDump")
	}
	D.pending = fr
	D.readable = true
	return D, nil
}

func (D *DumpReader) errorf(caller string, cause error, msg string, args ...any) error {
	return mdpost.NewFileError(dumpFormat, D.filename, caller, cause, "line %d: "+msg, append([]any{D.lineno}, args...)...)
}

//Readable returns true if the handle is readable (if it is possible to call Next on it)
func (D *DumpReader) Readable() bool {
	return D.readable
}

//Len returns the number of (selected) atoms in each frame.
func (D *DumpReader) Len() int {
	return len(D.ids)
}

//IDs returns the IDs of the selected atoms, in the order they are returned by Next.
func (D *DumpReader) IDs() []int {
	return D.ids
}

//Unwrapped returns true if the coordinates read are unwrapped (xu yu zu or xsu ysu zsu).
func (D *DumpReader) Unwrapped() bool {
	return D.unwrap
}

//Timestep returns the timestep of the last frame returned by Next.
func (D *DumpReader) Timestep() int {
	return D.timestep
}

//Box returns the box of the last frame returned by Next.
func (D *DumpReader) Box() mdpost.Box {
	return D.box
}

//Close closes the file, and marks the reader as unreadable.
func (D *DumpReader) Close() error {
	D.readable = false
	if D.f != nil {
		f := D.f
		D.f = nil
		return f.Close()
	}
	return nil
}

//Next puts the coordinates of the next frame in output, which must have Len() vectors, or just
//skips the frame if output is nil. If box is given, box[0][0:3] gets the box lengths of the frame,
//or, if box[0] has room for them, box[0][0:9] gets the cell vectors, tilts included.
//At the end of the trajectory, it returns an mdpost.LastFrameError, and closes the file.
func (D *DumpReader) Next(output *v3.Matrix, box ...[]float64) error {
	if !D.readable {
		return mdpost.NewFileError(dumpFormat, D.filename, "Next", nil, "trajectory not readable")
	}
	fr := D.pending
	if fr == nil {
		D.Close()
		if D.nexterr != nil {
			return mdpost.ErrDecorate(D.nexterr, "Next")
		}
		return mdpost.NewLastFrameError(dumpFormat, D.filename, "Next")
	}
	next, err := D.readFrame(false)
	//a bare io.EOF means the file ended cleanly after a frame.
	if err != nil && err != io.EOF {
		D.nexterr = err
	}
	D.pending = next //nil at EOF or on error
	D.timestep = fr.timestep
	D.box = fr.box
	if len(box) > 0 {
		switch {
		case len(box[0]) >= 9:
			v := fr.box.Vectors()
			copy(box[0], v[:])
		case len(box[0]) >= 3:
			l := fr.box.Lengths()
			copy(box[0], l[:])
		}
	}
	if output == nil {
		return nil
	}
	if output.NVecs() != len(D.ids) {
		return mdpost.NewFileError(dumpFormat, D.filename, "Next", nil, "output has %d vectors, %d expected", output.NVecs(), len(D.ids))
	}
	for i, id := range fr.ids {
		row, ok := D.index[id]
		if !ok {
			continue
		}
		output.SetVec(row, fr.xyz[i])
	}
	return nil
}

//readLine reads one line, without the trailing newline. At the end of the file it returns io.EOF
//only if nothing was read.
func (D *DumpReader) readLine() (string, error) {
	l, err := D.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && l != "") {
		return "", err
	}
	D.lineno++
	return strings.TrimRight(l, "\r\n"), nil
}

//expectItem reads lines until one starts with "ITEM: "+item, and returns what follows it.
func (D *DumpReader) expectItem(item string) (string, error) {
	for {
		l, err := D.readLine()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(l) == "" {
			continue
		}
		rest, ok := strings.CutPrefix(l, "ITEM: "+item)
		if !ok {
			return "", D.errorf("readFrame", nil, "expected ITEM: %s, found %q", item, l)
		}
		return strings.TrimSpace(rest), nil
	}
}

//readFrame reads the next frame. If first is true, the atom columns are located and the atom
//selection is built from this frame. It returns io.EOF if the file ended before a frame started.
func (D *DumpReader) readFrame(first bool) (*frame, error) {
	fr := new(frame)
	if _, err := D.expectItem("TIMESTEP"); err != nil {
		return nil, err
	}
	l, err := D.readLine()
	if err != nil {
		return nil, D.errorf("readFrame", err, "truncated frame")
	}
	if fr.timestep, err = strconv.Atoi(strings.TrimSpace(l)); err != nil {
		return nil, D.errorf("readFrame", err, "timestep")
	}
	if _, err := D.expectItem("NUMBER OF ATOMS"); err != nil {
		return nil, D.errorf("readFrame", err, "truncated frame")
	}
	if l, err = D.readLine(); err != nil {
		return nil, D.errorf("readFrame", err, "truncated frame")
	}
	n, err := strconv.Atoi(strings.TrimSpace(l))
	if err != nil {
		return nil, D.errorf("readFrame", err, "number of atoms")
	}
	bounds, err := D.expectItem("BOX BOUNDS")
	if err != nil {
		return nil, D.errorf("readFrame", err, "truncated frame")
	}
	if err := D.readBox(fr, strings.Contains(bounds, "xy")); err != nil {
		return nil, err
	}
	header, err := D.expectItem("ATOMS")
	if err != nil {
		return nil, D.errorf("readFrame", err, "truncated frame")
	}
	names := strings.Fields(header)
	if first {
		if err := D.findColumns(names); err != nil {
			return nil, err
		}
		D.natoms = n
	} else if n != D.natoms {
		//the selection is built from the first frame, so atoms can't come and go.
		return nil, D.errorf("readFrame", nil, "frame at timestep %d has %d atoms, the first one had %d", fr.timestep, n, D.natoms)
	}
	maxcol := D.idcol
	for _, c := range append(D.cols[:], D.typecol) {
		if c > maxcol {
			maxcol = c
		}
	}
	L := fr.box.Lengths()
	for i := 0; i < n; i++ {
		l, err := D.readLine()
		if err != nil {
			return nil, D.errorf("readFrame", err, "truncated frame at timestep %d", fr.timestep)
		}
		fields := strings.Fields(l)
		if len(fields) != len(names) || len(fields) <= maxcol {
			return nil, D.errorf("readFrame", nil, "%d fields, %d columns in the header", len(fields), len(names))
		}
		id, err := strconv.Atoi(fields[D.idcol])
		if err != nil {
			return nil, D.errorf("readFrame", err, "atom ID")
		}
		t := 0
		if D.typecol >= 0 {
			if t, err = strconv.Atoi(fields[D.typecol]); err != nil {
				return nil, D.errorf("readFrame", err, "atom type")
			}
		}
		if D.opts.Type != 0 && t != D.opts.Type {
			continue
		}
		var c [3]float64
		for k, col := range D.cols {
			if c[k], err = strconv.ParseFloat(fields[col], 64); err != nil {
				return nil, D.errorf("readFrame", err, "coordinate")
			}
		}
		if D.scaled {
			c = unscale(c, fr.box, L)
		}
		fr.ids = append(fr.ids, id)
		fr.types = append(fr.types, t)
		fr.xyz = append(fr.xyz, c)
	}
	if first {
		D.ids = make([]int, len(fr.ids))
		copy(D.ids, fr.ids)
		sort.Ints(D.ids)
		D.index = make(map[int]int, len(D.ids))
		for i, id := range D.ids {
			D.index[id] = i
		}
		if len(D.ids) == 0 {
			return nil, D.errorf("readFrame", nil, "no atoms of type %d in the first frame", D.opts.Type)
		}
	}
	return fr, nil
}

//unscale turns the fractional coordinates s into cartesian ones for the box B with edge lengths L.
func unscale(s [3]float64, B mdpost.Box, L [3]float64) [3]float64 {
	xy, xz, yz := B.Tilt[0], B.Tilt[1], B.Tilt[2]
	return [3]float64{
		B.Lo[0] + s[0]*L[0] + s[1]*xy + s[2]*xz,
		B.Lo[1] + s[1]*L[1] + s[2]*yz,
		B.Lo[2] + s[2]*L[2],
	}
}

//readBox reads the 3 box lines of a frame. Triclinic bounds are converted from the
//bounding box LAMMPS writes to the actual lo/hi of the cell.
func (D *DumpReader) readBox(fr *frame, triclinic bool) error {
	var bounds [3][3]float64
	for k := 0; k < 3; k++ {
		l, err := D.readLine()
		if err != nil {
			return D.errorf("readBox", err, "truncated box")
		}
		fields := strings.Fields(l)
		need := 2
		if triclinic {
			need = 3
		}
		if len(fields) < need {
			return D.errorf("readBox", nil, "unable to get the size of the box from %q", l)
		}
		for j := 0; j < need; j++ {
			if bounds[k][j], err = strconv.ParseFloat(fields[j], 64); err != nil {
				return D.errorf("readBox", err, "box")
			}
		}
	}
	if !triclinic {
		for k := 0; k < 3; k++ {
			fr.box.Lo[k], fr.box.Hi[k] = bounds[k][0], bounds[k][1]
		}
		return nil
	}
	xy, xz, yz := bounds[0][2], bounds[1][2], bounds[2][2]
	fr.box.Tilt = [3]float64{xy, xz, yz}
	fr.box.Lo[0] = bounds[0][0] - math.Min(math.Min(0, xy), math.Min(xz, xy+xz))
	fr.box.Hi[0] = bounds[0][1] - math.Max(math.Max(0, xy), math.Max(xz, xy+xz))
	fr.box.Lo[1] = bounds[1][0] - math.Min(0, yz)
	fr.box.Hi[1] = bounds[1][1] - math.Max(0, yz)
	fr.box.Lo[2], fr.box.Hi[2] = bounds[2][0], bounds[2][1]
	return nil
}

//findColumns locates the id, type and coordinate columns in the ITEM: ATOMS header.
func (D *DumpReader) findColumns(names []string) error {
	pos := make(map[string]int, len(names))
	for i, n := range names {
		pos[n] = i
	}
	var ok bool
	if D.idcol, ok = pos["id"]; !ok {
		return D.errorf("findColumns", nil, "no id column in %v", names)
	}
	if D.typecol, ok = pos["type"]; !ok {
		if D.opts.Type != 0 {
			return D.errorf("findColumns", nil, "atoms of type %d requested, but there is no type column", D.opts.Type)
		}
		D.typecol = -1
	}
	candidates := coordColumns
	if len(D.opts.Columns) > 0 {
		if len(D.opts.Columns) != 3 {
			return D.errorf("findColumns", nil, "3 coordinate columns needed, %d given", len(D.opts.Columns))
		}
		candidates = [][3]string{{D.opts.Columns[0], D.opts.Columns[1], D.opts.Columns[2]}}
	}
	for _, c := range candidates {
		found := 0
		for k, n := range c {
			if i, ok := pos[n]; ok {
				D.cols[k] = i
				found++
			}
		}
		if found == 3 {
			D.scaled = strings.HasSuffix(c[0], "s") || strings.HasSuffix(c[0], "su")
			D.unwrap = strings.HasSuffix(c[0], "u")
			return nil
		}
	}
	return D.errorf("findColumns", nil, "can't find the coordinate columns in %v", names)
}
