package shell

import (
	"fmt"
	"io"
	"strings"
)

// PrintTable writes cols and rows as an aligned text table.
func PrintTable(w io.Writer, cols []string, rows [][]string) {
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = len(c)
	}
	for _, row := range rows {
		for i := range cols {
			if i < len(row) && len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}
	}

	printRow := func(values []string) {
		var sb strings.Builder
		for i := range cols {
			if i > 0 {
				sb.WriteString(" | ")
			}
			v := ""
			if i < len(values) {
				v = values[i]
			}
			sb.WriteString(padRight(v, widths[i]))
		}
		fmt.Fprintln(w, strings.TrimRight(sb.String(), " "))
	}

	printRow(cols)
	seps := make([]string, len(cols))
	for i := range cols {
		seps[i] = strings.Repeat("-", widths[i])
	}
	fmt.Fprintln(w, strings.Join(seps, "-+-"))
	for _, row := range rows {
		printRow(row)
	}
}

func padRight(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}
