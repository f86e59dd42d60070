// Package render turns report data into boxed text tables and markdown.
package render

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/naka-gawa/project-pulse/internal/domain"
)

const (
	notAvailable = "N/A"
	noRelease    = "No Release"
)

// Table renders headers and rows as a box-drawing text table with one line per
// record. Rows shorter than headers are padded with "N/A"; extra cells are dropped.
func Table(headers []string, rows [][]any) string {
	tw := table.NewWriter()

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		out := make(table.Row, len(headers))
		for i := range out {
			var cell any
			if i < len(row) {
				cell = row[i]
			}
			out[i] = Cell(cell)
		}
		tw.AppendRow(out)
	}

	style := table.StyleDouble
	style.Format.Header = text.FormatDefault
	style.Options.SeparateRows = true
	tw.SetStyle(style)

	return tw.Render()
}

// Cell converts a raw value into its printable form.
func Cell(v any) string {
	if isNil(v) {
		return notAvailable
	}
	s := fmt.Sprint(v)
	if s == domain.InvalidDate || s == domain.NoReleases {
		return noRelease
	}
	// A newline would split one record across several printed lines.
	return strings.ReplaceAll(s, "\n", " ")
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
