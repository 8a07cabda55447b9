// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mmfmt reads matrix-multiplication benchmark records.
//
// The input is CSV text with a header row. Each data row is one
// trial: the matrix size, the number of processes it ran on, the
// elapsed wall-clock time in seconds, and the measured GFLOPS. The
// header may name these columns in several ways (see Columns) and in
// any order; unrecognized columns are ignored.
package mmfmt

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// A Record is one benchmark trial.
type Record struct {
	// Size is the matrix dimension N of an N×N multiplication.
	Size int

	// Procs is the number of processes the trial ran on.
	Procs int

	// Seconds is the elapsed time of the trial.
	Seconds float64

	// GFLOPS is the throughput measured for the trial.
	GFLOPS float64

	fileName string
	line     int
}

// Pos returns the file name and 1-based line number this record was
// read from. If the record was not read from a file, it returns "", 0.
func (r *Record) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// A FormatError reports input that cannot be turned into Records: a
// missing or unusable header, a malformed row, or a cell that does
// not parse as its column's type.
type FormatError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *FormatError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *FormatError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.FileName, e.Msg)
	}
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// A Reader reads Records from CSV input.
//
// Its API is modeled on bufio.Scanner. Unlike the Go benchmark
// format, a malformed row ends the scan: a report over partially
// parsed input would silently misstate the results.
type Reader struct {
	cr       *csv.Reader
	fileName string

	cols   [numFields]int // input column index of each field
	header bool           // header has been read

	rec Record
	err error
}

// NewReader constructs a reader to parse records from r.
// fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	return &Reader{cr: cr, fileName: fileName}
}

// Scan advances the reader to the next record and reports whether one
// was read. The caller should use the Record method to get it. At the
// end of the input, or on the first error, Scan returns false and the
// caller should check Err.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	if !r.header {
		if err := r.readHeader(); err != nil {
			r.err = err
			return false
		}
		r.header = true
	}

	row, err := r.cr.Read()
	if err == io.EOF {
		return false
	} else if err != nil {
		r.err = r.csvError(err)
		return false
	}
	line, _ := r.cr.FieldPos(0)
	if err := r.parseRow(row, line); err != nil {
		r.err = err
		return false
	}
	return true
}

// Record returns the record read by the most recent call to Scan.
// The caller should not retain it; it is overwritten by the next
// call to Scan. Use Clone to keep a copy.
func (r *Reader) Record() *Record {
	return &r.rec
}

// Err returns the first error encountered by the Reader. It is either
// a *FormatError or an I/O error from the underlying reader.
func (r *Reader) Err() error {
	return r.err
}

// Clone returns a copy of r.
func (r *Record) Clone() *Record {
	r2 := *r
	return &r2
}

func (r *Reader) newFormatError(line int, msg string) *FormatError {
	return &FormatError{r.fileName, line, msg}
}

// csvError converts an error from the CSV tokenizer into a
// *FormatError where it describes the input.
func (r *Reader) csvError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return r.newFormatError(pe.Line, pe.Err.Error())
	}
	return err
}

func (r *Reader) readHeader() error {
	row, err := r.cr.Read()
	if err == io.EOF {
		return r.newFormatError(0, "missing header")
	} else if err != nil {
		return r.csvError(err)
	}
	cols, err := mapColumns(row)
	if err != nil {
		return r.newFormatError(1, err.Error())
	}
	r.cols = cols
	return nil
}

func (r *Reader) parseRow(row []string, line int) error {
	cell := func(f field) string {
		return strings.TrimSpace(row[r.cols[f]])
	}
	bad := func(f field, err error) error {
		var ne *strconv.NumError
		if errors.As(err, &ne) {
			err = ne.Err
		}
		return r.newFormatError(line, fmt.Sprintf("parsing %s %q: %s", fieldNames[f], cell(f), err))
	}

	var err error
	r.rec = Record{fileName: r.fileName, line: line}
	if r.rec.Size, err = strconv.Atoi(cell(fieldSize)); err != nil {
		return bad(fieldSize, err)
	}
	if r.rec.Procs, err = strconv.Atoi(cell(fieldProcs)); err != nil {
		return bad(fieldProcs, err)
	}
	if r.rec.Seconds, err = strconv.ParseFloat(cell(fieldSeconds), 64); err != nil {
		return bad(fieldSeconds, err)
	}
	if r.rec.GFLOPS, err = strconv.ParseFloat(cell(fieldGFLOPS), 64); err != nil {
		return bad(fieldGFLOPS, err)
	}

	switch {
	case r.rec.Size < 1:
		return bad(fieldSize, errors.New("must be at least 1"))
	case r.rec.Procs < 1:
		return bad(fieldProcs, errors.New("must be at least 1"))
	case !(r.rec.Seconds > 0) || math.IsInf(r.rec.Seconds, 0):
		return bad(fieldSeconds, errors.New("must be positive and finite"))
	case !(r.rec.GFLOPS >= 0) || math.IsInf(r.rec.GFLOPS, 0):
		return bad(fieldGFLOPS, errors.New("must be finite and not negative"))
	}
	return nil
}
