// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmmath

import (
	"fmt"
	"strings"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/cu3/mmstat/mmfmt"
)

// A Speedup compares one configuration against the single-process
// baseline of its matrix size.
type Speedup struct {
	Key

	// Time is the mean elapsed time of the configuration.
	Time float64

	// Speedup is the baseline time divided by Time.
	Speedup float64

	// Efficiency is Speedup per process, as a percentage. Perfect
	// scaling is 100.
	Efficiency float64
}

// SizeSpeedups holds the speedups of every process count measured for
// one matrix size.
type SizeSpeedups struct {
	Size int

	// Baseline is the mean elapsed time with one process.
	Baseline float64

	// Rows are ordered by ascending process count.
	Rows []Speedup
}

// A MissingBaselineError reports a matrix size with no single-process
// trials, for which speedup is undefined.
type MissingBaselineError struct {
	Size int
}

func (e *MissingBaselineError) Error() string {
	return fmt.Sprintf("matrix size %d has no single-process baseline", e.Size)
}

// Order is the order in which matrix sizes are reported.
type Order int

const (
	// Ascending orders matrix sizes numerically.
	Ascending Order = iota
	// InputOrder orders matrix sizes by first appearance in the
	// input.
	InputOrder
)

var orderNames = map[string]Order{
	"numeric": Ascending,
	"input":   InputOrder,
}

func (o Order) String() string {
	for name, o2 := range orderNames {
		if o == o2 {
			return name
		}
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// ParseOrder parses "numeric" or "input" (in any case) into an Order.
func ParseOrder(s string) (Order, error) {
	o, ok := orderNames[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("unknown order %q (want numeric or input)", s)
	}
	return o, nil
}

// Sizes returns the distinct matrix sizes of recs in the given order.
func Sizes(recs []*mmfmt.Record, order Order) []int {
	sizes := make([]int, 0, len(recs))
	for _, rec := range recs {
		sizes = append(sizes, rec.Size)
	}
	sizes = slice.Nub(sizes).([]int)
	if order == Ascending {
		slice.Sort(sizes)
	}
	return sizes
}

// Speedups computes the speedup table of every matrix size in recs.
//
// If any matrix size lacks single-process trials, Speedups returns a
// *MissingBaselineError and no table.
func Speedups(recs []*mmfmt.Record, order Order) ([]SizeSpeedups, error) {
	return SpeedupsFromSummary(Summarize(recs), Sizes(recs, order))
}

// SpeedupsFromSummary computes speedup tables from the output of
// Summarize, reporting matrix sizes in the order given by sizes.
func SpeedupsFromSummary(sums []Summary, sizes []int) ([]SizeSpeedups, error) {
	bySize := make(map[int][]Summary)
	for _, s := range sums {
		bySize[s.Size] = append(bySize[s.Size], s)
	}

	out := make([]SizeSpeedups, 0, len(sizes))
	for _, size := range sizes {
		group := bySize[size]
		base, ok := baseline(group)
		if !ok {
			return nil, &MissingBaselineError{size}
		}
		ss := SizeSpeedups{Size: size, Baseline: base}
		// group inherits Summarize's ascending process order.
		for _, s := range group {
			speedup := base / s.Mean
			ss.Rows = append(ss.Rows, Speedup{
				Key:        s.Key,
				Time:       s.Mean,
				Speedup:    speedup,
				Efficiency: speedup / float64(s.Procs) * 100,
			})
		}
		out = append(out, ss)
	}
	return out, nil
}

// baseline returns the mean time of the single-process configuration
// in group, if there is one.
func baseline(group []Summary) (float64, bool) {
	for _, s := range group {
		if s.Procs == 1 {
			return s.Mean, true
		}
	}
	return 0, false
}
