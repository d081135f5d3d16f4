//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package txtfmt renders aligned plain-text reports.
package txtfmt

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"
)

// TableRow holds the cell values of one table row, keyed by column
// title.
type TableRow map[string]string

// TableFormatter renders rows as a column-aligned table with a title
// header.
type TableFormatter struct {
	titles []string
}

// NewTableFormatter returns a TableFormatter for the given ordered
// column titles.
func NewTableFormatter(titles ...string) *TableFormatter {
	return &TableFormatter{titles: titles}
}

// Format renders the given rows, picking only the formatter's columns
// out of each row. Missing cells render as "None".
func (t *TableFormatter) Format(rows []TableRow) string {
	if len(t.titles) == 0 {
		return ""
	}

	var out bytes.Buffer
	tw := tabwriter.NewWriter(&out, 0, 0, 1, ' ', 0)

	underlines := make([]string, len(t.titles))
	for i, title := range t.titles {
		underlines[i] = strings.Repeat("-", len(title))
	}
	writeCells(tw, t.titles)
	writeCells(tw, underlines)

	for _, row := range rows {
		cells := make([]string, len(t.titles))
		for i, title := range t.titles {
			cell, ok := row[title]
			if !ok {
				cell = "None"
			}
			cells[i] = cell
		}
		writeCells(tw, cells)
	}

	tw.Flush()
	return out.String()
}

func writeCells(tw *tabwriter.Writer, cells []string) {
	for _, cell := range cells {
		fmt.Fprintf(tw, "%s\t", cell)
	}
	fmt.Fprintln(tw)
}

// entityIndent is the number of spaces attribute lines are shifted
// right of the entity title.
const entityIndent = 2

// FormatEntity renders a titled attribute/value listing for a single
// entity, with the values aligned in one column.
func FormatEntity(title string, attrs []TableRow) string {
	var out bytes.Buffer
	if title != "" {
		fmt.Fprintf(&out, "%s\n%s\n", title, strings.Repeat("-", len(title)))
	}

	keyWidth := 0
	for _, row := range attrs {
		for key := range row {
			if len(key)+1 > keyWidth {
				keyWidth = len(key) + 1
			}
		}
	}

	tw := tabwriter.NewWriter(&out, keyWidth+entityIndent, 0, 0, ' ', 0)
	for _, row := range attrs {
		for key, val := range row {
			fmt.Fprintf(tw, "%s%s\t: %s\t\n", strings.Repeat(" ", entityIndent), key, val)
		}
	}

	tw.Flush()
	return out.String()
}
