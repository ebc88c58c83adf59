/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package display

import (
	"fmt"
	"io"
	"strings"
)

// Table renders rows as a bordered, fixed-column-width text table with
// centered cell text. Column widths are constants chosen per entity type;
// values longer than their column are not truncated, which misaligns the
// table. That is an accepted cosmetic limitation.
type Table struct {
	widths []int
	header []string
}

// NewTable creates a table with the given header labels and column widths.
// The two slices must have the same length.
func NewTable(header []string, widths []int) *Table {
	if len(header) != len(widths) {
		panic("display: header and widths length mismatch")
	}
	return &Table{widths: widths, header: header}
}

// Fprint writes the bordered table with one row per entry of rows. Each row
// must have exactly one cell per column.
func (t *Table) Fprint(w io.Writer, rows [][]string) {
	line := t.borderLine()

	fmt.Fprintln(w, line)
	fmt.Fprintln(w, t.formatRow(t.header))
	fmt.Fprintln(w, line)
	for _, row := range rows {
		fmt.Fprintln(w, t.formatRow(row))
	}
	fmt.Fprintln(w, line)
}

func (t *Table) borderLine() string {
	var b strings.Builder
	b.WriteByte('+')
	for _, width := range t.widths {
		b.WriteString(strings.Repeat("-", width+2))
		b.WriteByte('+')
	}
	return b.String()
}

func (t *Table) formatRow(cells []string) string {
	var b strings.Builder
	b.WriteByte('|')
	for i, width := range t.widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteByte(' ')
		b.WriteString(center(cell, width))
		b.WriteString(" |")
	}
	return b.String()
}

// center pads s with spaces on both sides to the given width, preferring the
// right side for an odd leftover. Longer values are returned unchanged.
func center(s string, width int) string {
	n := width - len([]rune(s))
	if n <= 0 {
		return s
	}
	left := n / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", n-left)
}
