/*
 * csv.go, part of mdpost.
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

package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

//WriteCSV writes the columns to w as CSV, with a header line with the given names.
//All columns must have the same length.
func WriteCSV(w io.Writer, names []string, cols ...[]float64) error {
	if len(names) != len(cols) {
		return fmt.Errorf("table.WriteCSV: %d names for %d columns", len(names), len(cols))
	}
	for i, c := range cols {
		if len(c) != len(cols[0]) {
			return fmt.Errorf("table.WriteCSV: column %s has %d rows, expected %d", names[i], len(c), len(cols[0]))
		}
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(names); err != nil {
		return err
	}
	record := make([]string, len(cols))
	if len(cols) > 0 {
		for r := range cols[0] {
			for i, c := range cols {
				record[i] = strconv.FormatFloat(c[r], 'g', -1, 64)
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

//WriteCSVFile is WriteCSV to the file name, which is created or truncated.
func WriteCSVFile(name string, names []string, cols ...[]float64) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, names, cols...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
