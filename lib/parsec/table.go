package parsec

import (
	"fmt"
	"strconv"
	"strings"
)

// Column is a single named column of a result table. Values parse either
// uniformly as floats or stay strings; Floats is nil for string columns.
type Column struct {
	Name    string
	Numeric bool
	Floats  []float64
	Strings []string
}

// Table is an isochrone table decoded from the service's output artifact.
// Comments holds every '#' line of the artifact, in order; the final one of
// the run should read "isochrone terminated" when the computation finished
// normally.
type Table struct {
	Names    []string
	Columns  []Column
	Comments []string
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Strings)
}

// Column returns the named column, or nil if there is none.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// Floats returns the named column as floats, or nil if the column is
// missing or non-numeric.
func (t *Table) Floats(name string) []float64 {
	c := t.Column(name)
	if c == nil {
		return nil
	}
	return c.Floats
}

// Strings returns the named column as strings, or nil if missing.
func (t *Table) Strings(name string) []string {
	c := t.Column(name)
	if c == nil {
		return nil
	}
	return c.Strings
}

// ReadTable decodes a whitespace delimited isochrone artifact. Leading '#'
// lines accumulate as comments, the last one before the data supplies the
// column names. The first column is renamed from the generic "Z" to "Zini"
// so it cannot be confused with other metallicity columns appearing later
// in wide tables. Later '#' lines (the header repeats between isochrone
// blocks) are kept as comments and skipped as data.
func ReadTable(text string) (*Table, error) {
	lines := strings.Split(text, "\n")

	var comments []string
	header := ""
	body := len(lines)
	for i, line := range lines {
		if !strings.HasPrefix(line, "#") {
			body = i
			break
		}
		header = line[1:]
		comments = append(comments, line[1:])
	}
	if header == "" {
		return nil, fmt.Errorf("no header line found in output")
	}

	names := strings.Fields(header)
	if names[0] == "Z" {
		names[0] = "Zini"
	}

	var rows [][]string
	for i := body; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			comments = append(comments, line[1:])
			continue
		}
		cells := strings.Fields(line)
		if len(cells) != len(names) {
			return nil, fmt.Errorf(
				"row %d has %d columns, header names %d",
				len(rows)+1, len(cells), len(names),
			)
		}
		rows = append(rows, cells)
	}

	columns := make([]Column, len(names))
	for j, name := range names {
		col := Column{Name: name, Numeric: true}
		col.Strings = make([]string, len(rows))
		col.Floats = make([]float64, len(rows))
		for i, row := range rows {
			col.Strings[i] = row[j]
			v, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				col.Numeric = false
			}
			col.Floats[i] = v
		}
		if !col.Numeric {
			col.Floats = nil
		}
		columns[j] = col
	}

	return &Table{Names: names, Columns: columns, Comments: comments}, nil
}
