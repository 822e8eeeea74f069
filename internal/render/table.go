// Package render writes relations as box-drawn tables for the CLI.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/leengari/colstore/internal/engine"
)

// WriteTable renders rel with unicode borders and per-column widths. Floats
// print with two decimals; absent slots render as empty cells.
func WriteTable(w io.Writer, rel *engine.Relation) error {
	names := rel.ColumnNames()
	if len(names) == 0 {
		_, err := fmt.Fprintf(w, "%s: no columns\n", rel.Name)
		return err
	}

	widths := make([]int, len(names))
	cells := make([][]string, rel.NumRows())
	for i, name := range names {
		widths[i] = utf8.RuneCountInString(name)
	}
	err := rel.IterRows(func(ri int, row engine.Row) error {
		cells[ri] = make([]string, len(names))
		for ci, name := range names {
			s := cell(row[name])
			cells[ri][ci] = s
			if w := utf8.RuneCountInString(s); w > widths[ci] {
				widths[ci] = w
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	segments := make([]string, len(widths))
	for i, width := range widths {
		segments[i] = strings.Repeat("─", width+2)
	}
	line := strings.Join(segments, "┼")

	var sb strings.Builder
	sb.WriteString("┌" + strings.ReplaceAll(line, "┼", "┬") + "┐\n")
	writeRow(&sb, names, widths)
	sb.WriteString("├" + line + "┤\n")
	for _, row := range cells {
		writeRow(&sb, row, widths)
	}
	sb.WriteString("└" + strings.ReplaceAll(line, "┼", "┴") + "┘\n")

	_, err = io.WriteString(w, sb.String())
	return err
}

// writeRow pads by rune count; fmt's %-*s pads by bytes and would misalign
// multi-byte cells.
func writeRow(sb *strings.Builder, fields []string, widths []int) {
	sb.WriteString("│")
	for i, f := range fields {
		sb.WriteString(" ")
		sb.WriteString(f)
		sb.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(f)))
		sb.WriteString(" │")
	}
	sb.WriteByte('\n')
}

func cell(v engine.Value) string {
	if v.IsAbsent() {
		return ""
	}
	if v.Type() == engine.TypeFloat {
		f, _ := v.Float()
		return strconv.FormatFloat(f, 'f', 2, 64)
	}
	return v.String()
}
