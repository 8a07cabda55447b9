// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmreport

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// SummarySuffix is appended to the base name of an input file to name
// its report.
const SummarySuffix = "_resumen.txt"

// OutputPath returns the path of the report for the benchmark file at
// input: the same directory and base name, with the extension
// replaced by SummarySuffix. For example, "runs/mm.csv" becomes
// "runs/mm_resumen.txt".
func OutputPath(input string) string {
	ext := filepath.Ext(input)
	if ext == filepath.Base(input) {
		// A dot file such as ".csv" has no base name to keep.
		ext = ""
	}
	return strings.TrimSuffix(input, ext) + SummarySuffix
}

// A WriteError reports a failure to write a report.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %s", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Write writes report to the file at path and then to stdout.
//
// The file is written first so that a failure leaves nothing on
// stdout. If either write fails, the file is removed. Errors are
// *WriteErrors.
func Write(stdout io.Writer, path string, report []byte) error {
	if err := writeFile(path, report); err != nil {
		return &WriteError{path, err}
	}
	if _, err := stdout.Write(report); err != nil {
		os.Remove(path)
		return &WriteError{"standard output", err}
	}
	return nil
}

func writeFile(path string, data []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	_, err = f.Write(data)
	return err
}
