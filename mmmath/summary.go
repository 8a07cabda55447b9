// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mmmath computes statistics over matrix-multiplication
// benchmark trials.
//
// Trials are grouped by configuration, that is, by matrix size and
// process count. Summarize reports the timing distribution of each
// configuration and Speedups measures how each matrix size scales as
// processes are added, relative to its single-process baseline.
package mmmath

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"github.com/cu3/mmstat/mmfmt"
)

// A Key identifies one benchmark configuration.
type Key struct {
	Size, Procs int
}

// A Summary holds the statistics of all trials of one configuration.
type Summary struct {
	Key

	// N is the number of trials.
	N int

	// Mean, StdDev, Min and Max describe the elapsed time of the
	// trials, in seconds. StdDev is the sample standard deviation
	// and is NaN if N is 1.
	Mean, StdDev, Min, Max float64

	// MeanGFLOPS is the mean throughput of the trials.
	MeanGFLOPS float64
}

// A group accumulates the measurements of one configuration.
type group struct {
	seconds, gflops []float64
}

// groupRecords collects recs by configuration in a single pass. It
// returns the groups and their keys ordered by size, then process
// count.
func groupRecords(recs []*mmfmt.Record) (map[Key]*group, []Key) {
	groups := make(map[Key]*group)
	var keys []Key
	for _, rec := range recs {
		k := Key{rec.Size, rec.Procs}
		g, ok := groups[k]
		if !ok {
			g = new(group)
			groups[k] = g
			keys = append(keys, k)
		}
		g.seconds = append(g.seconds, rec.Seconds)
		g.gflops = append(g.gflops, rec.GFLOPS)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Size != keys[j].Size {
			return keys[i].Size < keys[j].Size
		}
		return keys[i].Procs < keys[j].Procs
	})
	return groups, keys
}

func (g *group) summary(k Key) Summary {
	secs := stats.Sample{Xs: g.seconds}
	s := Summary{
		Key:        k,
		N:          len(g.seconds),
		Mean:       secs.Mean(),
		StdDev:     math.NaN(),
		MeanGFLOPS: stats.Mean(g.gflops),
	}
	s.Min, s.Max = secs.Bounds()
	if s.N > 1 {
		s.StdDev = secs.StdDev()
	}
	return s
}

// Summarize computes a Summary for every configuration present in
// recs, ordered by ascending matrix size and then ascending process
// count. It returns nil if recs is empty.
func Summarize(recs []*mmfmt.Record) []Summary {
	groups, keys := groupRecords(recs)
	if len(keys) == 0 {
		return nil
	}
	sums := make([]Summary, 0, len(keys))
	for _, k := range keys {
		sums = append(sums, groups[k].summary(k))
	}
	return sums
}
