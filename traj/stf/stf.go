/*
 * stf.go, part of mdpost.
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

package stf

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	mdpost "github.com/mdpost/mdpost"
	v3 "github.com/mdpost/mdpost/v3"
)

const (
	format      = "stf"
	defaultPrec = 2
)

//Error messages
const (
	TrajUnIniRead  = "Traj object uninitialized to read"
	TrajUnIniWrite = "Traj object uninitialized to write"
	NilCoordinates = "Given nil coordinates"
	WrongFormat    = "Wrong format in the STF file or frame"
)

func newError(filename, caller string, cause error, msg string, args ...any) error {
	return mdpost.NewFileError(format, filename, caller, cause, msg, args...)
}

//Write!

//StfW writes STF trajectories.
type StfW struct {
	f         *os.File
	h         io.WriteCloser
	w         *bufio.Writer
	natoms    int
	filename  string
	writeable bool
	prec      int
	mult      float64
	frames    int
}

//NewWriter creates the STF file name for frames of natoms atoms. The header, if not nil,
//is written to the file; its "prec" key sets the precision. The compression is chosen from
//the last letter of the name, see the package documentation.
func NewWriter(name string, natoms int, header map[string]string) (*StfW, error) {
	S := &StfW{natoms: natoms, filename: name, prec: defaultPrec}
	if header != nil {
		if p, ok := header["prec"]; ok {
			prec, err := strconv.Atoi(p)
			if err != nil || prec <= 0 {
				return nil, newError(name, "NewWriter", err, "invalid precision %q", p)
			}
			S.prec = prec
		}
	}
	S.mult = math.Pow(10, float64(S.prec))
	var err error
	S.f, err = os.Create(name)
	if err != nil {
		return nil, newError(name, "NewWriter", err, "can't create file")
	}
	switch compression(name) {
	case 'z':
		S.h, err = gzip.NewWriterLevel(S.f, gzip.BestCompression)
	case 'r':
		S.h, err = flate.NewWriter(S.f, flate.BestCompression)
	default:
		S.h, err = zstd.NewWriter(S.f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	}
	if err != nil {
		S.f.Close()
		return nil, newError(name, "NewWriter", err, "can't start the compressor")
	}
	S.w = bufio.NewWriter(S.h)
	//sorted, so the same header gives the same file.
	keys := make([]string, 0, len(header))
	for k := range header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(S.w, "%s=%s\n", k, header[k])
	}
	if _, ok := header["prec"]; !ok {
		fmt.Fprintf(S.w, "prec=%d\n", S.prec)
	}
	fmt.Fprintf(S.w, "** %d\n", S.natoms)
	S.writeable = true
	return S, nil
}

//compression returns the letter that selects the compression of the file name.
func compression(name string) byte {
	name = strings.ToLower(name)
	if name == "" {
		return 0
	}
	return name[len(name)-1]
}

//Len returns the number of atoms per frame.
func (S *StfW) Len() int {
	return S.natoms
}

//Frames returns the number of frames written so far.
func (S *StfW) Frames() int {
	return S.frames
}

//Close flushes the trajectory and closes the file. The writer can't be used afterwards.
func (S *StfW) Close() error {
	if S == nil || !S.writeable {
		return nil
	}
	S.writeable = false
	err := S.w.Flush()
	if e := S.h.Close(); err == nil {
		err = e
	}
	if e := S.f.Close(); err == nil {
		err = e
	}
	if err != nil {
		return newError(S.filename, "Close", err, "can't finish the file")
	}
	return nil
}

//WNext writes the coordinates in coord as a new frame. If box is given it can hold
//the 3 orthogonal box lengths or the 9 components of the box vectors.
func (S *StfW) WNext(coord *v3.Matrix, box ...[]float64) error {
	return S.WNextStep(coord, -1, box...)
}

//WNextStep is like WNext, but also records the MD timestep of the frame, unless step is negative.
func (S *StfW) WNextStep(coord *v3.Matrix, step int, box ...[]float64) error {
	if !S.writeable {
		return newError(S.filename, "WNext", nil, TrajUnIniWrite)
	}
	if coord == nil {
		return newError(S.filename, "WNext", nil, NilCoordinates)
	}
	v := coord.NVecs()
	if v != S.natoms {
		return newError(S.filename, "WNext", nil, "%d coordinates given, but %d expected", v, S.natoms)
	}
	var temp [3]int
	for i := 0; i < v; i++ {
		c := coord.Vec(i)
		for j, f := range c {
			temp[j] = int(math.RoundToEven(f * S.mult))
		}
		fmt.Fprintf(S.w, "%d %d %d\n", temp[0], temp[1], temp[2])
	}
	var b []float64
	if len(box) > 0 {
		switch {
		case len(box[0]) >= 9:
			b = box[0][:9]
		case len(box[0]) >= 3:
			b = []float64{box[0][0], 0, 0, 0, box[0][1], 0, 0, 0, box[0][2]}
		}
	}
	switch {
	case b != nil:
		S.w.WriteString("*")
		for _, f := range b {
			S.w.WriteString(" " + strconv.FormatFloat(f, 'f', 4, 64))
		}
		if step >= 0 {
			fmt.Fprintf(S.w, " %d", step)
		}
		S.w.WriteString("\n")
	case step >= 0:
		//a step needs a box before it, a zero box means "no box".
		fmt.Fprintf(S.w, "* 0 0 0 0 0 0 0 0 0 %d\n", step)
	default:
		S.w.WriteString("*\n")
	}
	S.frames++
	return nil
}

//Read!

//StfR reads STF trajectories. It implements mdpost.Traj.
type StfR struct {
	f        *os.File
	dec      io.ReadCloser
	h        *bufio.Reader
	natoms   int
	filename string
	prec     int
	mult     float64
	readable bool
	step     int
	frame    int
	Header   map[string]string
}

//zstd.Decoder doesn't implement io.ReadCloser.
type zstdCloser struct {
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

//New opens a STF trajectory for reading. The header is available in the Header field
//of the returned reader.
func New(name string) (*StfR, error) {
	S := &StfR{natoms: -1, filename: name, prec: defaultPrec, step: -1, Header: map[string]string{}}
	var err error
	S.f, err = os.Open(name)
	if err != nil {
		return nil, newError(name, "New", err, "can't open file")
	}
	in := bufio.NewReader(S.f)
	switch compression(name) {
	case 'z':
		S.dec, err = gzip.NewReader(in)
	case 'r':
		S.dec = flate.NewReader(in)
	default:
		var z *zstd.Decoder
		z, err = zstd.NewReader(in)
		if err == nil {
			S.dec = zstdCloser{z}
		}
	}
	if err != nil {
		S.f.Close()
		return nil, newError(name, "New", err, "can't read header")
	}
	S.h = bufio.NewReader(S.dec)
	if err := S.readHeader(); err != nil {
		S.Close()
		return nil, err
	}
	S.mult = math.Pow(10, float64(S.prec))
	S.readable = true
	return S, nil
}

func (S *StfR) readHeader() error {
	for {
		str, err := S.h.ReadString('\n')
		if err != nil {
			return newError(S.filename, "New", err, "can't read header")
		}
		str = strings.TrimSpace(str)
		if strings.HasPrefix(str, "**") {
			nat := strings.Fields(str)
			if len(nat) < 2 {
				return newError(S.filename, "New", nil, "can't read atom number from '%s'", str)
			}
			S.natoms, err = strconv.Atoi(nat[1])
			if err != nil || S.natoms < 0 {
				return newError(S.filename, "New", err, "can't read atom number from '%s'", nat[1])
			}
			break
		}
		k, v, ok := strings.Cut(str, "=")
		if !ok {
			return newError(S.filename, "New", nil, "malformed header line '%s'", str)
		}
		S.Header[k] = v
	}
	if p, ok := S.Header["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err != nil || prec <= 0 {
			return newError(S.filename, "New", err, "invalid precision %q", p)
		}
		S.prec = prec
	}
	return nil
}

//Readable returns true if the handle is readable (if it is possible to call Next on it)
func (S *StfR) Readable() bool {
	return S.readable
}

//Len returns the number of atoms in each frame of the trajectory.
func (S *StfR) Len() int {
	return S.natoms
}

//Timestep returns the MD timestep of the last frame read, if the file records it.
//Otherwise, it returns the index of the frame, counting from 0.
func (S *StfR) Timestep() int {
	if S.step >= 0 {
		return S.step
	}
	return S.frame - 1
}

func (S *StfR) coordsDecode(str string, temp *[3]float64) error {
	s := strings.Fields(str)
	if len(s) != 3 {
		return fmt.Errorf("ill formatted coordinates line, %d fields: %s", len(s), str)
	}
	for i, v := range s {
		f, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("can't parse coordinate %d (%s): %w", i, v, err)
		}
		temp[i] = float64(f) / S.mult
	}
	return nil
}

//Next puts in the given matrix (c) the coordinates for the next frame of the trajectory.
//If c is nil the frame is read and checked, but discarded. If box is given, and the frame
//has box information, the box lengths are put in box[0][0:3], or, if box[0] has room for them,
//the 9 components of the box vectors. The end of the trajectory gives an mdpost.LastFrameError.
func (S *StfR) Next(c *v3.Matrix, box ...[]float64) error {
	if !S.readable {
		return newError(S.filename, "Next", nil, TrajUnIniRead)
	}
	var temp [3]float64
	for i := 0; i < S.natoms; i++ {
		str, err := S.h.ReadString('\n')
		if err != nil {
			if err == io.EOF && i == 0 && str == "" {
				S.Close()
				return mdpost.NewLastFrameError(format, S.filename, "Next")
			}
			return newError(S.filename, "Next", err, "frame %d cut at atom %d", S.frame, i)
		}
		if err := S.coordsDecode(str, &temp); err != nil {
			return newError(S.filename, "Next", err, WrongFormat)
		}
		if c != nil {
			c.SetVec(i, temp)
		}
	}
	s, err := S.h.ReadString('\n')
	if err != nil && !(err == io.EOF && s != "") {
		return newError(S.filename, "Next", err, "can't read the frame termination mark")
	}
	if s == "" || s[0] != '*' {
		return newError(S.filename, "Next", nil, "wrong number of atoms in frame %d", S.frame)
	}
	S.frame++
	fields := strings.Fields(s)[1:]
	if len(fields) == 0 {
		return nil
	}
	if len(fields) != 9 && len(fields) != 10 {
		slog.Warn("malformed box in STF frame", "file", S.filename, "frame", S.frame-1)
		return nil
	}
	var b [9]float64
	for j, v := range fields[:9] {
		if b[j], err = strconv.ParseFloat(v, 64); err != nil {
			slog.Warn("can't read the box of an STF frame", "file", S.filename, "frame", S.frame-1)
			return nil
		}
	}
	if len(fields) == 10 {
		if S.step, err = strconv.Atoi(fields[9]); err != nil {
			return newError(S.filename, "Next", err, "can't read the timestep of frame %d", S.frame-1)
		}
	}
	if b == [9]float64{} || len(box) == 0 {
		return nil
	}
	switch {
	case len(box[0]) >= 9:
		copy(box[0], b[:])
	case len(box[0]) >= 3:
		box[0][0], box[0][1], box[0][2] = b[0], b[4], b[8]
	}
	return nil
}

//Close closes the object, and marks it as unreadable
func (S *StfR) Close() {
	if S.dec != nil {
		S.dec.Close()
		S.dec = nil
	}
	if S.f != nil {
		S.f.Close()
		S.f = nil
	}
	S.readable = false
}
