package output

import (
	"fmt"
	"io"

	"codesync/internal/engine"
	"codesync/internal/model"
	"codesync/internal/termcolor"
	"codesync/internal/textutil"
)

// WriteLabelTable renders the label overview for the list command as
// width-aligned columns.
func WriteLabelTable(w io.Writer, groups []engine.LabelGroup, colors bool) error {
	rows := make([][]string, 0, len(groups)+1)
	rows = append(rows, labelHeaders)
	for _, g := range groups {
		rows = append(rows, labelRow(g))
	}

	widths := make([]int, len(labelHeaders))
	for _, row := range rows {
		for i, cell := range row {
			if wd := textutil.VisibleWidth(cell); wd > widths[i] {
				widths[i] = wd
			}
		}
	}

	header := termcolor.HeaderStyle()
	for r, row := range rows {
		line := ""
		for i, cell := range row {
			if i == 2 {
				// ACTUAL is numeric, align right
				cell = textutil.PadLeft(cell, widths[i])
			} else if i < len(row)-1 {
				cell = textutil.PadRight(cell, widths[i])
			}
			if i > 0 {
				line += "  "
			}
			line += cell
		}
		if r == 0 {
			line = termcolor.Apply(header, line, colors)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// WriteLabels prints one label per line for machine consumption.
func WriteLabels(w io.Writer, labels []string) error {
	for _, label := range labels {
		if _, err := fmt.Fprintln(w, label); err != nil {
			return err
		}
	}
	return nil
}

// WriteLocations prints the locations of one label's comments, the
// output of the show command.
func WriteLocations(w io.Writer, comments []model.Match) error {
	for _, c := range comments {
		if _, err := fmt.Fprintf(w, "%s\tcount=%d\n", c.Loc, c.Count); err != nil {
			return err
		}
	}
	return nil
}
