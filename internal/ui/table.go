// Package ui renders extraction results for the terminal.
package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Table renders aligned columns with a colored header.
type Table struct {
	writer  io.Writer
	headers []string
	rows    [][]string
	noColor bool
}

func NewTable(w io.Writer, headers []string, noColor bool) *Table {
	return &Table{writer: w, headers: headers, rows: [][]string{}, noColor: noColor}
}

func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *Table) Render() {
	if len(t.headers) == 0 {
		return
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && width(cell) > widths[i] {
				widths[i] = width(cell)
			}
		}
	}

	header := t.color(color.Bold, color.FgCyan)
	for i, h := range t.headers {
		header.Fprint(t.writer, padRight(h, widths[i]))
		if i < len(t.headers)-1 {
			fmt.Fprint(t.writer, "  ")
		}
	}
	fmt.Fprintln(t.writer)

	gray := t.color(color.FgHiBlack)
	for i, w := range widths {
		gray.Fprint(t.writer, strings.Repeat("─", w))
		if i < len(widths)-1 {
			gray.Fprint(t.writer, "  ")
		}
	}
	fmt.Fprintln(t.writer)

	for _, row := range t.rows {
		n := min(len(row), len(widths))
		for i := 0; i < n; i++ {
			if i == n-1 {
				fmt.Fprint(t.writer, row[i])
				break
			}
			fmt.Fprint(t.writer, padRight(row[i], widths[i]), "  ")
		}
		fmt.Fprintln(t.writer)
	}
}

func (t *Table) color(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if t.noColor {
		c.DisableColor()
	}
	return c
}

// KeyValue renders "key: value" lines with aligned values.
type KeyValue struct {
	writer  io.Writer
	keys    []string
	values  []string
	noColor bool
}

func NewKeyValue(w io.Writer, noColor bool) *KeyValue {
	return &KeyValue{writer: w, noColor: noColor}
}

func (kv *KeyValue) AddRow(key, value string) {
	kv.keys = append(kv.keys, key)
	kv.values = append(kv.values, value)
}

func (kv *KeyValue) Render() {
	maxKey := 0
	for _, k := range kv.keys {
		maxKey = max(maxKey, width(k))
	}
	cyan := color.New(color.FgCyan)
	if kv.noColor {
		cyan.DisableColor()
	}
	for i, k := range kv.keys {
		cyan.Fprint(kv.writer, padRight(k+":", maxKey+1))
		fmt.Fprintf(kv.writer, " %s\n", kv.values[i])
	}
}

// Header prints a bold title underlined to its width.
func Header(w io.Writer, title string, noColor bool) {
	bold := color.New(color.Bold, color.FgCyan)
	gray := color.New(color.FgHiBlack)
	if noColor {
		bold.DisableColor()
		gray.DisableColor()
	}
	bold.Fprintln(w, title)
	gray.Fprintln(w, strings.Repeat("─", width(title)))
}

func width(s string) int { return utf8.RuneCountInString(s) }

func padRight(s string, n int) string {
	if width(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-width(s))
}
