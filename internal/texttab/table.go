// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out fixed-width text tables.
package texttab

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Many of its methods return the Table so callers can easily chain
// them to build up many cells at once.
type Table struct {
	cells []textCell
	cols  int

	minWidth []int

	curRow, curCol int
}

type textCell struct {
	row, col   int
	value      string
	leftMargin string
	alignment  align
	fill       rune // if non-zero, value is fill repeated to the column width
}

type CellOption func(c *textCell)

// LeftMargin sets the margin printed before a cell. The widest margin
// in a column applies to every cell of that column.
func LeftMargin(x string) CellOption {
	return func(c *textCell) {
		c.leftMargin = x
	}
}

// Rule makes a cell that fills its column with ch, such as a line
// under a heading.
func Rule(ch rune) CellOption {
	return func(c *textCell) {
		c.fill = ch
		c.value = ""
	}
}

// Right right-aligns a cell within its column. Cells are
// left-aligned by default.
var Right CellOption = func(c *textCell) { c.alignment = alignRight }

type align int

const (
	alignLeft align = iota
	alignRight
)

func (a align) lpad(s string, w int) string {
	switch a {
	default:
		return s
	case alignRight:
		return fmt.Sprintf("%*s", w, s)
	}
}

// Row starts a new row in table t.
func (t *Table) Row() *Table {
	if len(t.cells) > 0 {
		t.curRow++
	}
	t.curCol = 0
	return t
}

// Cell adds a cell at the current row and column.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	lMargin := " "
	if t.curCol == 0 {
		lMargin = ""
	}
	c := textCell{row: t.curRow, col: t.curCol, value: value, leftMargin: lMargin}
	for _, o := range opts {
		o(&c)
	}
	if c.value == "" && c.fill == 0 {
		// Empty cells take no margin.
		c.leftMargin = ""
	}
	t.cells = append(t.cells, c)

	t.curCol++
	if t.curCol > t.cols {
		t.cols = t.curCol
	}
	return t
}

// SetMinWidth sets the minimum width of column col, not counting its
// left margin. Columns grow beyond this to fit their widest cell.
func (t *Table) SetMinWidth(col, width int) {
	for len(t.minWidth) < col+1 {
		t.minWidth = append(t.minWidth, 0)
	}
	t.minWidth[col] = width
	if col+1 > t.cols {
		t.cols = col + 1
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Format lays out table t and writes it to w.
//
// Trailing spaces are never printed, so a left-aligned last column
// ends with its value.
func (t *Table) Format(w io.Writer) error {
	// Collect max length margin for each column.
	lmargin := make([]int, t.cols)
	for _, cell := range t.cells {
		lmargin[cell.col] = max(utf8.RuneCountInString(cell.leftMargin), lmargin[cell.col])
	}

	// Compute column widths, excluding their left margins.
	ws := make([]int, t.cols)
	for col, mw := range t.minWidth {
		ws[col] = mw
	}
	for _, cell := range t.cells {
		ws[cell.col] = max(ws[cell.col], utf8.RuneCountInString(cell.value))
	}

	// Convert column widths into starting offsets. The offset of
	// column i is where i's left margin begins.
	offs := make([]int, t.cols+1)
	off := 0
	for i, w := range ws {
		offs[i] = off
		off += lmargin[i] + w
	}
	offs[len(ws)] = off

	// Put the cells into top-to-bottom left-to-right order.
	sort.SliceStable(t.cells, func(i, j int) bool {
		if t.cells[i].row != t.cells[j].row {
			return t.cells[i].row < t.cells[j].row
		}
		return t.cells[i].col < t.cells[j].col
	})
	row, off := 0, 0
	for _, cell := range t.cells {
		value := cell.value
		if cell.fill != 0 {
			value = strings.Repeat(string(cell.fill), ws[cell.col])
		}
		if strings.TrimSpace(value) == "" && strings.TrimSpace(cell.leftMargin) == "" {
			// Skip empty cells. This avoids printing
			// unnecessary trailing spaces if cells appear
			// at the end of a row.
			continue
		}

		// Get to cell's row.
		for cell.row > row {
			if _, err := fmt.Fprintf(w, "\n"); err != nil {
				return err
			}
			row++
			off = 0
		}

		// Space to the cell's starting offset and print its
		// left margin, right-aligned within the column's margin.
		spaces := offs[cell.col] + lmargin[cell.col] - utf8.RuneCountInString(cell.leftMargin) - off
		if _, err := fmt.Fprintf(w, "%*s%s", spaces, "", cell.leftMargin); err != nil {
			return err
		}
		off += spaces + utf8.RuneCountInString(cell.leftMargin)

		s := cell.alignment.lpad(value, ws[cell.col])
		if _, err := fmt.Fprintf(w, "%s", s); err != nil {
			return err
		}
		off += utf8.RuneCountInString(s)
	}
	if len(t.cells) > 0 {
		if _, err := fmt.Fprintf(w, "\n"); err != nil {
			return err
		}
	}

	return nil
}
