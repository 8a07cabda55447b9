// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Mmstat summarizes parallel matrix-multiplication benchmark results.
//
// Usage:
//
//	mmstat [-o output] [-order numeric|input] [-q] results.csv
//
// The input is a CSV file with a header row and one row per trial,
// giving the matrix size, the number of processes, the elapsed time in
// seconds and the measured GFLOPS. The MPI benchmark driver writes the
// columns Tamano_Matriz, Num_Procesos, Tiempo_Segundos and GFLOPS;
// English names such as matrix_size, process_count, elapsed_seconds
// and gflops are accepted too, in any order.
//
// Mmstat groups trials by matrix size and process count and reports,
// for each group, the mean, sample standard deviation, minimum and
// maximum time and the mean GFLOPS. It then reports, for each matrix
// size, the speedup and parallel efficiency of every process count
// relative to the single-process mean time. Every matrix size must
// have at least one single-process trial.
//
// The report is printed and also saved next to the input, with the
// extension replaced by "_resumen.txt", so results/bench.csv is
// summarized in results/bench_resumen.txt. The -o flag names a
// different output file, and -q suppresses the printed copy.
//
// Matrix sizes are listed in increasing order. The -order=input flag
// lists them in order of first appearance in the input instead.
//
// Example
//
//	$ mmstat resultados/benchmark_20241120.csv
//	...
//	Matriz 500x500:
//	  Procesos     Tiempo(s)    Speedup      Eficiencia(%)
//	  ------------ ------------ ------------ ---------------
//	  1            2.0000       1.00         100.00
//	  2            1.0000       2.00         100.00
//	...
//	Resumen guardado en: resultados/benchmark_20241120_resumen.txt
//
// A configuration measured only once has an undefined standard
// deviation, printed as NaN; mmstat notes each such configuration on
// standard error.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/cu3/mmstat/mmfmt"
	"github.com/cu3/mmstat/mmmath"
	"github.com/cu3/mmstat/mmreport"
)

var exit = os.Exit // replaced during testing

// errUsage reports bad command-line usage. The usage message has
// already been printed.
var errUsage = errors.New("usage")

func main() {
	log.SetPrefix("mmstat: ")
	log.SetFlags(0)

	if err := mmstat(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if err != errUsage {
			log.Print(err)
		}
		exit(1)
	}
}

func mmstat(w, wErr io.Writer, args []string) error {
	flags := flag.NewFlagSet("mmstat", flag.ContinueOnError)
	flags.SetOutput(w)
	flags.Usage = func() {
		fmt.Fprintf(w, "usage: mmstat [options] results.csv\n")
		fmt.Fprintf(w, "example: mmstat resultados/benchmark_20241120.csv\n")
		fmt.Fprintf(w, "options:\n")
		flags.PrintDefaults()
	}
	flagOut := flags.String("o", "", "write the report to `file` (default: input with extension replaced by "+mmreport.SummarySuffix+")")
	flagOrder := flags.String("order", "numeric", "list matrix sizes in `order`: numeric or input")
	flagQuiet := flags.Bool("q", false, "do not print the report, only save it")

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return errUsage
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return errUsage
	}
	order, err := mmmath.ParseOrder(*flagOrder)
	if err != nil {
		flags.Usage()
		return err
	}

	input := flags.Arg(0)
	output := *flagOut
	if output == "" {
		output = mmreport.OutputPath(input)
	}
	if filepath.Clean(output) == filepath.Clean(input) {
		return fmt.Errorf("report %s would overwrite its input", output)
	}

	recs, err := mmfmt.Open(input)
	if err != nil {
		return err
	}
	sums := mmmath.Summarize(recs)
	speedups, err := mmmath.SpeedupsFromSummary(sums, mmmath.Sizes(recs, order))
	if err != nil {
		return err
	}
	for _, s := range sums {
		if s.N == 1 {
			fmt.Fprintf(wErr, "mmstat: %dx%d/%d: single trial, standard deviation undefined\n", s.Size, s.Size, s.Procs)
		}
	}

	var buf bytes.Buffer
	if err := mmreport.New(sums, speedups).Format(&buf); err != nil {
		return err
	}
	stdout := w
	if *flagQuiet {
		stdout = io.Discard
	}
	if err := mmreport.Write(stdout, output, buf.Bytes()); err != nil {
		return err
	}
	fmt.Fprintf(w, "Resumen guardado en: %s\n", output)
	return nil
}
