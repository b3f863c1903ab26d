// Package ingest reads the race csv files into a plain header+rows table.
// Everything beyond "named columns with string cells" (typing, candidate
// column resolution, time parsing) happens in pkg/raw.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Table is one parsed source table: an ordered header and string rows.
type Table struct {
	Columns []string
	Rows    [][]string

	byName map[string]int
}

func NewTable(columns []string, rows [][]string) *Table {
	t := &Table{Columns: columns, Rows: rows, byName: make(map[string]int)}
	for i, c := range columns {
		if _, ok := t.byName[c]; !ok {
			t.byName[c] = i
		}
	}
	return t
}

// Col returns the index of the column with the given (case-sensitive)
// name, or -1 if the table has no such column.
func (t *Table) Col(name string) int {
	if idx, ok := t.byName[name]; ok {
		return idx
	}
	return -1
}

// Resolve returns the index of the first existing candidate column.
// Candidate lookup happens once at load time, not per query.
func (t *Table) Resolve(candidates ...string) (int, bool) {
	for _, c := range candidates {
		if idx, ok := t.byName[c]; ok {
			return idx, true
		}
	}
	return -1, false
}

// Cell returns the trimmed-free raw cell value, or "" when the column is
// absent or the row is shorter than the header.
func (t *Table) Cell(row int, col int) string {
	if col < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}

// Read parses csv data with a header line into a Table.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv input is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("could not read csv header: %w", err)
	}
	rows := make([][]string, 0)
	for {
		rec, rErr := cr.Read()
		if rErr == io.EOF {
			break
		}
		if rErr != nil {
			return nil, fmt.Errorf("could not read csv row: %w", rErr)
		}
		rows = append(rows, rec)
	}
	return NewTable(header, rows), nil
}

// ReadFile parses the csv file at path into a Table.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
