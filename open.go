/*
 * open.go, part of mdpost.
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

package mdpost

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//compressed wraps a decompressing reader so closing it also
//closes the file underneath.
type compressed struct {
	io.Reader
	closers []func() error
}

func (c *compressed) Close() error {
	var err error
	for _, f := range c.closers {
		if e := f(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

//Open opens the file name for reading. Files ending in ".gz" are read through
//a gzip decompressor, and files ending in ".zst" or ".zstd" through a Z-standard one.
//Anything else is returned as is. Closing the returned ReadCloser closes the file.
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".gz"):
		r, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, NewFileError("gzip", name, "Open", err, "can't read gzip header")
		}
		return &compressed{Reader: r, closers: []func() error{r.Close, f.Close}}, nil
	case strings.HasSuffix(lower, ".zst"), strings.HasSuffix(lower, ".zstd"):
		r, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, NewFileError("zstd", name, "Open", err, "can't start zstd decoder")
		}
		//Why couldn't *zstd.Decoder implement io.ReadCloser? :-(
		zclose := func() error { r.Close(); return nil }
		return &compressed{Reader: r, closers: []func() error{zclose, f.Close}}, nil
	default:
		return f, nil
	}
}

//TrimCompression returns name without a trailing ".gz", ".zst" or ".zstd" extension,
//so the format of the file underneath can be guessed from what is left.
func TrimCompression(name string) string {
	lower := strings.ToLower(name)
	for _, ext := range []string{".gz", ".zst", ".zstd"} {
		if strings.HasSuffix(lower, ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}
