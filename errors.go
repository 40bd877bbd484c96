/*
 * errors.go, part of mdpost.
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
	"fmt"
	"strings"
)

// FileError is the error returned by the file readers of mdpost. It fulfills
// Error and TrajError. The underlying cause, if any, is available through errors.Unwrap.
type FileError struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	format   string
	deco     []string
	critical bool
	err      error
}

// NewFileError returns a critical error for the file filename in the given format,
// decorated with caller.
func NewFileError(format, filename, caller string, cause error, message string, args ...any) *FileError {
	E := &FileError{
		message:  fmt.Sprintf(message, args...),
		filename: filename,
		format:   format,
		critical: true,
		err:      cause,
	}
	if caller != "" {
		E.deco = []string{caller}
	}
	return E
}

func (E *FileError) Error() string {
	s := fmt.Sprintf("%s file %s error: %s", E.format, E.filename, E.message)
	if E.err != nil {
		s += ": " + E.err.Error()
	}
	if len(E.deco) > 0 {
		s += " (" + strings.Join(E.deco, " <- ") + ")"
	}
	return s
}

// Decorate adds the caller information to the error and returns the current decoration.
func (E *FileError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func (E *FileError) Unwrap() error { return E.err }

// FileName returns the file to which the error was associated
func (E *FileError) FileName() string { return E.filename }

// Format returns the format of the file associated to the error
func (E *FileError) Format() string { return E.format }

// Critical returns true if the error is critical, false otherwise
func (E *FileError) Critical() bool { return E.critical }

// lastFrameError implements LastFrameError
type lastFrameError struct {
	deco     []string
	fileName string
	format   string
}

// NewLastFrameError returns the error a trajectory gives when there are no more frames to read.
func NewLastFrameError(format, filename, caller string) LastFrameError {
	return &lastFrameError{deco: []string{caller}, fileName: filename, format: format}
}

// NormalLastFrameTermination does nothing
func (E *lastFrameError) NormalLastFrameTermination() {}

func (E *lastFrameError) FileName() string { return E.fileName }

func (E *lastFrameError) Error() string { return "EOF" }

func (E *lastFrameError) Critical() bool { return false }

func (E *lastFrameError) Format() string { return E.format }

func (E *lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

// IsLastFrame returns true if err marks the normal end of a trajectory.
func IsLastFrame(err error) bool {
	_, ok := err.(LastFrameError)
	return ok
}

// ErrDecorate decorates err with the caller's name if it implements Error, and
// returns it. Other errors are wrapped with the caller's name.
func ErrDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(Error); ok {
		e.Decorate(caller)
		return e
	}
	return fmt.Errorf("%s: %w", caller, err)
}
