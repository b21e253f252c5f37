package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/hanpama/gqlview/internal/meta"
)

// Columns lists table column metadata, one line per column.
func Columns(w io.Writer, tm *meta.TableMeta, noColor bool) {
	t := NewTable(w, []string{"KEY", "LABEL", "KIND", "PATH", "ENUM"}, noColor)
	for _, c := range tm.Columns {
		t.AddRow(c.Key, c.Label, c.Kind.String(), c.Path, strings.Join(c.EnumValues, ","))
	}
	t.Render()
	if tm.TotalPath != "" {
		fmt.Fprintln(w)
		kv := NewKeyValue(w, noColor)
		kv.AddRow("total", tm.TotalPath)
		kv.Render()
	}
}

// Rows renders projected cells under the column labels.
func Rows(w io.Writer, columns []meta.ColumnInfo, rows [][]meta.Cell, noColor bool) {
	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.Label
	}
	t := NewTable(w, headers, noColor)
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = cellText(c.Value)
		}
		t.AddRow(cells...)
	}
	t.Render()
}

func cellText(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Fields lists form field metadata.
func Fields(w io.Writer, label string, fields []meta.FormMeta, noColor bool) {
	if label != "" {
		Header(w, label, noColor)
	}
	t := NewTable(w, []string{"KEY", "LABEL", "KIND", "TYPE", "EDITABLE", "OPTIONS"}, noColor)
	for _, f := range fields {
		typ := f.TypeName
		if f.NonNull {
			typ += "!"
		}
		editable := "no"
		if f.Editable {
			editable = "yes"
		}
		t.AddRow(f.Key, f.Label, f.Kind.String(), typ, editable, strings.Join(f.Options, ","))
	}
	t.Render()
}

// Error prints err with its error code and source location, if any.
func Error(w io.Writer, err error, noColor bool) {
	red := color.New(color.FgRed, color.Bold)
	gray := color.New(color.FgHiBlack)
	if noColor {
		red.DisableColor()
		gray.DisableColor()
	}
	red.Fprintf(w, "✗ %s: ", meta.Code(err))
	fmt.Fprintln(w, err)
	if pos := meta.Position(err); pos != nil {
		gray.Fprintf(w, "  at line %d, column %d\n", pos.Line, pos.Column)
	}
}
