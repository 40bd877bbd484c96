/*
 * chunk.go, part of mdpost.
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
	"io"
	"math"
	"strconv"
	"strings"

	mdpost "github.com/mdpost/mdpost"
	"github.com/mdpost/mdpost/histo"
)

const chunkFormat = "lammps-ave/chunk"

//ChunkOptions selects the columns of an ave/chunk file. The zero value
//is replaced by the layout of "fix ave/chunk ... temp" output: Chunk Coord1 Ncount v_temp.
type ChunkOptions struct {
	IDCol    int //column with the chunk ID
	ValueCol int //column with the averaged quantity
}

func (o ChunkOptions) withDefaults() ChunkOptions {
	if o.IDCol == 0 && o.ValueCol == 0 {
		o.ValueCol = 3
	}
	return o
}

//Profile is a per-chunk average over all the steps in an ave/chunk file.
//IDs are sorted in increasing order, and only chunks that appear in the file are included.
type Profile struct {
	IDs     []int
	Values  []float64
	Samples []int //how many rows were averaged for each chunk
}

//ReadChunkProfile reads a LAMMPS ave/chunk output from r and averages, for each chunk ID,
//the value column over all the output steps. Comment lines ("#") and "ITEM" lines are skipped,
//and so are lines with too few fields, which includes the per-step "Timestep Nchunks Total-count" lines.
//name is only used in error messages.
func ReadChunkProfile(r io.Reader, name string, opts ChunkOptions) (*Profile, error) {
	opts = opts.withDefaults()
	need := opts.IDCol + 1
	if opts.ValueCol+1 > need {
		need = opts.ValueCol + 1
	}
	if need < 4 {
		need = 4
	}
	var (
		keys, values []float64
		lo, hi       = math.MaxInt, math.MinInt
		lineno       int
	)
	s := bufio.NewScanner(r)
	for s.Scan() {
		lineno++
		line := strings.TrimSpace(s.Text())
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "ITEM") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < need {
			continue
		}
		id, err := strconv.Atoi(fields[opts.IDCol])
		if err != nil {
			return nil, mdpost.NewFileError(chunkFormat, name, "ReadChunkProfile", err, "line %d: chunk ID", lineno)
		}
		v, err := strconv.ParseFloat(fields[opts.ValueCol], 64)
		if err != nil {
			return nil, mdpost.NewFileError(chunkFormat, name, "ReadChunkProfile", err, "line %d: value", lineno)
		}
		if id < lo {
			lo = id
		}
		if id > hi {
			hi = id
		}
		keys = append(keys, float64(id))
		values = append(values, v)
	}
	if err := s.Err(); err != nil {
		return nil, mdpost.NewFileError(chunkFormat, name, "ReadChunkProfile", err, "reading")
	}
	if len(keys) == 0 {
		return nil, mdpost.NewFileError(chunkFormat, name, "ReadChunkProfile", nil, "no chunk data found")
	}
	H := histo.NewData(histo.IntegerDividers(lo, hi))
	H.AddAll(keys, values)
	P := new(Profile)
	counts := H.Counts()
	for i, m := range H.Means() {
		if counts[i] == 0 {
			continue
		}
		P.IDs = append(P.IDs, lo+i)
		P.Values = append(P.Values, m)
		P.Samples = append(P.Samples, int(counts[i]))
	}
	return P, nil
}

//ReadChunkProfileFile reads the ave/chunk file name. See ReadChunkProfile.
func ReadChunkProfileFile(name string, opts ChunkOptions) (*Profile, error) {
	f, err := mdpost.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadChunkProfile(f, name, opts)
}
