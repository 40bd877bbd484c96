/*
 * table.go, part of mdpost.
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

//Package table reads the whitespace-separated numeric columns that MD codes
//write as logs (LAMMPS fix print and ave/time files, DeePMD's lcurve.out, MSD files)
//and writes CSV files.
package table

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	mdpost "github.com/mdpost/mdpost"
	"gonum.org/v1/gonum/stat"
)

//Options controls how a table is read. The zero value reads every line, with '#'
//as the comment character.
type Options struct {
	//Comment starts a comment. Everything after it in a line is ignored. Defaults to "#".
	Comment string
	//SkipRows is the number of lines, counted from the top of the file, that are skipped
	//before anything else is done.
	SkipRows int
	//Names gives names to the columns. If nil, the names are taken from the first
	//comment line that has as many fields as the data, if there is one.
	Names []string
}

//Table is a set of numeric columns of equal length.
type Table struct {
	Names []string
	cols  [][]float64
}

//NCols returns the number of columns in the table.
func (T *Table) NCols() int { return len(T.cols) }

//NRows returns the number of rows in the table.
func (T *Table) NRows() int {
	if len(T.cols) == 0 {
		return 0
	}
	return len(T.cols[0])
}

//Col returns the ith column. It panics if i is out of range.
func (T *Table) Col(i int) []float64 {
	if i >= len(T.cols) {
		panic(fmt.Sprintf("mdpost/table: column %d requested in a table with %d columns", i, len(T.cols)))
	}
	return T.cols[i]
}

//Named returns the column with the given name, and whether it exists.
func (T *Table) Named(name string) ([]float64, bool) {
	for i, n := range T.Names {
		if n == name && i < len(T.cols) {
			return T.cols[i], true
		}
	}
	return nil, false
}

//Means returns the mean of each column.
func (T *Table) Means() []float64 {
	ret := make([]float64, len(T.cols))
	for i, c := range T.cols {
		ret[i] = stat.Mean(c, nil)
	}
	return ret
}

//Read reads a table from r. name is only used for the error messages.
//Blank lines are skipped. All data lines must have the same number of fields.
func Read(r io.Reader, name string, opts Options) (*Table, error) {
	comment := opts.Comment
	if comment == "" {
		comment = "#"
	}
	var (
		T        = new(Table)
		comments [][]string
		ncols    = -1
	)
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for lineno := 1; s.Scan(); lineno++ {
		if lineno <= opts.SkipRows {
			continue
		}
		line := s.Text()
		if i := strings.Index(line, comment); i >= 0 {
			comments = append(comments, strings.Fields(line[i+len(comment):]))
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if ncols < 0 {
			ncols = len(fields)
			T.cols = make([][]float64, ncols)
		}
		if len(fields) != ncols {
			return nil, mdpost.NewFileError("table", name, "table.Read", nil, "line %d has %d fields, expected %d", lineno, len(fields), ncols)
		}
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, mdpost.NewFileError("table", name, "table.Read", err, "line %d, field %d", lineno, i+1)
			}
			T.cols[i] = append(T.cols[i], v)
		}
	}
	if err := s.Err(); err != nil {
		return nil, mdpost.NewFileError("table", name, "table.Read", err, "reading")
	}
	if ncols < 0 {
		return nil, mdpost.NewFileError("table", name, "table.Read", nil, "no data found")
	}
	T.Names = opts.Names
	if T.Names == nil {
		for _, c := range comments {
			if len(c) == ncols {
				T.Names = c
				break
			}
		}
	}
	return T, nil
}

//ReadFile reads a table from the file name, which can be compressed.
func ReadFile(name string, opts Options) (*Table, error) {
	f, err := mdpost.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, name, opts)
}
