package table

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Frame is an in-memory table: a header row plus data rows
type Frame struct {
	// the table name, used in error messages
	Name   string
	Header []string
	Rows   [][]string

	// lazily built column name -> index lookup
	columnIndex map[string]int
}

// ReadFrame reads an entire CSV stream into a Frame
func ReadFrame(r io.Reader, name string) (*Frame, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading %s header: %w", name, err)
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", name, err)
	}

	return &Frame{Name: name, Header: header, Rows: rows}, nil
}

func (f *Frame) RowCount() int {
	return len(f.Rows)
}

func (f *Frame) ColumnCount() int {
	return len(f.Header)
}

// ColumnIndex returns the index of the named column, or an error if the table
// has no such column
func (f *Frame) ColumnIndex(column string) (int, error) {
	if f.columnIndex == nil {
		f.columnIndex = make(map[string]int, len(f.Header))
		for i, c := range f.Header {
			f.columnIndex[c] = i
		}
	}
	idx, ok := f.columnIndex[column]
	if !ok {
		return 0, fmt.Errorf("table %s has no column %s", f.Name, column)
	}
	return idx, nil
}

// UniqueValues returns the set of distinct values in the named column
func (f *Frame) UniqueValues(column string) (*KeySet, error) {
	idx, err := f.ColumnIndex(column)
	if err != nil {
		return nil, err
	}

	set := NewKeySet()
	for _, row := range f.Rows {
		set.Add(row[idx])
	}
	return set, nil
}

// FilterByKey returns a new Frame retaining only the rows whose value in the
// named column is a member of keys (a semi-join on the key column)
func (f *Frame) FilterByKey(column string, keys *KeySet) (*Frame, error) {
	idx, err := f.ColumnIndex(column)
	if err != nil {
		return nil, err
	}

	filtered := &Frame{Name: f.Name, Header: f.Header}
	for _, row := range f.Rows {
		if keys.Contains(row[idx]) {
			filtered.Rows = append(filtered.Rows, row)
		}
	}
	return filtered, nil
}
