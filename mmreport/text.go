// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mmreport formats matrix-multiplication benchmark statistics
// as a plain-text report.
//
// A report has two sections. The statistics section lists the timing
// distribution and mean throughput of every configuration. The
// speedup section has one table per matrix size giving the mean time,
// speedup and parallel efficiency at each process count.
package mmreport

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cu3/mmstat/internal/texttab"
	"github.com/cu3/mmstat/mmmath"
)

const ruleWidth = 70

// A Report is the statistics and speedup tables of one benchmark
// file.
type Report struct {
	Summaries []mmmath.Summary
	Speedups  []mmmath.SizeSpeedups
}

// New returns a Report of sums and speedups. Both are reported in the
// order given.
func New(sums []mmmath.Summary, speedups []mmmath.SizeSpeedups) *Report {
	return &Report{sums, speedups}
}

// Format writes the text form of r to w.
func (r *Report) Format(w io.Writer) error {
	bw := bufio.NewWriter(w)

	heading(bw, "RESUMEN ESTADÍSTICO")
	if err := r.statsTable().Format(bw); err != nil {
		return err
	}
	fmt.Fprintf(bw, "\n")

	heading(bw, "ANÁLISIS DE SPEEDUP")
	for _, ss := range r.Speedups {
		fmt.Fprintf(bw, "\nMatriz %dx%d:\n", ss.Size, ss.Size)
		if err := speedupTable(ss).Format(bw); err != nil {
			return err
		}
	}
	fmt.Fprintf(bw, "\n%s\n", strings.Repeat("=", ruleWidth))

	return bw.Flush()
}

func heading(w io.Writer, title string) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintf(w, "%s\n%20s%s\n%s\n\n", rule, "", title, rule)
}

func (r *Report) statsTable() *texttab.Table {
	var tab texttab.Table
	margin := texttab.LeftMargin("  ")

	tab.Row().Cell("Tamano_Matriz", texttab.Right)
	for _, h := range []string{"Num_Procesos", "Media", "Desv_Est", "Minimo", "Maximo", "GFLOPS_Media"} {
		tab.Cell(h, texttab.Right, margin)
	}
	for _, s := range r.Summaries {
		tab.Row().Cell(strconv.Itoa(s.Size), texttab.Right)
		tab.Cell(strconv.Itoa(s.Procs), texttab.Right, margin)
		for _, v := range []float64{s.Mean, s.StdDev, s.Min, s.Max, s.MeanGFLOPS} {
			tab.Cell(fmt.Sprintf("%.6f", v), texttab.Right, margin)
		}
	}
	return &tab
}

func speedupTable(ss mmmath.SizeSpeedups) *texttab.Table {
	var tab texttab.Table
	indent := texttab.LeftMargin("  ")
	for col, w := range []int{12, 12, 12, 15} {
		tab.SetMinWidth(col, w)
	}

	tab.Row().Cell("Procesos", indent).Cell("Tiempo(s)").Cell("Speedup").Cell("Eficiencia(%)")
	tab.Row().Cell("", texttab.Rule('-'), indent).Cell("", texttab.Rule('-')).Cell("", texttab.Rule('-')).Cell("", texttab.Rule('-'))
	for _, row := range ss.Rows {
		tab.Row().Cell(strconv.Itoa(row.Procs), indent)
		tab.Cell(fmt.Sprintf("%.4f", row.Time))
		tab.Cell(fmt.Sprintf("%.2f", row.Speedup))
		tab.Cell(fmt.Sprintf("%.2f", row.Efficiency))
	}
	return &tab
}
