// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmfmt

import (
	"fmt"
	"strings"
)

type field int

const (
	fieldSize field = iota
	fieldProcs
	fieldSeconds
	fieldGFLOPS

	numFields
)

var fieldNames = [numFields]string{
	fieldSize:    "matrix_size",
	fieldProcs:   "process_count",
	fieldSeconds: "elapsed_seconds",
	fieldGFLOPS:  "gflops",
}

// Columns maps each accepted header name to the Record field it
// fills. Header names are compared after CanonicalColumn.
//
// The Spanish names are the ones written by the MPI benchmark driver.
var Columns = map[string]string{
	"matrix_size":   "matrix_size",
	"tamano_matriz": "matrix_size",
	"size":          "matrix_size",
	"n":             "matrix_size",

	"process_count": "process_count",
	"num_procesos":  "process_count",
	"procs":         "process_count",
	"processes":     "process_count",
	"np":            "process_count",

	"elapsed_seconds": "elapsed_seconds",
	"tiempo_segundos": "elapsed_seconds",
	"time":            "elapsed_seconds",
	"seconds":         "elapsed_seconds",

	"gflops":       "gflops",
	"gflops_media": "gflops",
	"throughput":   "gflops",
}

// CanonicalColumn returns the form of a header name used to look it
// up in Columns: trimmed of spaces and any byte order mark,
// lower-cased, with spaces and hyphens folded to underscores.
func CanonicalColumn(name string) string {
	name = strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return '_'
		}
		return r
	}, name)
}

func fieldByName(name string) (field, bool) {
	canon, ok := Columns[CanonicalColumn(name)]
	if !ok {
		return 0, false
	}
	for f, n := range fieldNames {
		if n == canon {
			return field(f), true
		}
	}
	return 0, false
}

// mapColumns resolves a header row to the input column of each field.
func mapColumns(header []string) ([numFields]int, error) {
	var cols [numFields]int
	for i := range cols {
		cols[i] = -1
	}
	for i, name := range header {
		f, ok := fieldByName(name)
		if !ok {
			continue
		}
		if prev := cols[f]; prev >= 0 {
			return cols, fmt.Errorf("columns %q and %q both name %s", header[prev], name, fieldNames[f])
		}
		cols[f] = i
	}

	var missing []string
	for f, col := range cols {
		if col < 0 {
			missing = append(missing, fieldNames[f])
		}
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("missing column %s", strings.Join(missing, ", "))
	}
	return cols, nil
}
