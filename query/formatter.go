package query

import (
	"fmt"
	"io"
	"strings"
)

// FormatTable renders a result as a plain-text table: columns left-aligned
// and padded to the widest value, a header rule of dashes joined by "-+-",
// and a trailing row count line.
func FormatTable(result *Result, output io.Writer) error {
	widths := make([]int, len(result.Columns))
	for i, header := range result.Columns {
		widths[i] = len(header)
	}
	for _, row := range result.Rows {
		for i, v := range row {
			if i >= len(widths) {
				break
			}
			if l := len(cellText(v)); l > widths[i] {
				widths[i] = l
			}
		}
	}

	headerCells := make([]string, len(result.Columns))
	ruleCells := make([]string, len(result.Columns))
	for i, header := range result.Columns {
		headerCells[i] = pad(header, widths[i])
		ruleCells[i] = strings.Repeat("-", widths[i])
	}
	if _, err := fmt.Fprintln(output, strings.Join(headerCells, " | ")); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(output, strings.Join(ruleCells, "-+-")); err != nil {
		return err
	}

	for _, row := range result.Rows {
		cells := make([]string, len(result.Columns))
		for i := range result.Columns {
			var v any
			if i < len(row) {
				v = row[i]
			}
			cells[i] = pad(cellText(v), widths[i])
		}
		if _, err := fmt.Fprintln(output, strings.Join(cells, " | ")); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(output, "\n%d rows returned.\n", result.Count)
	return err
}

// cellText renders a single value; NULL displays as an empty cell
func cellText(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
