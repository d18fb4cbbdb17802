package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Write serializes the frame as CSV (header row first)
func (f *Frame) Write(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(f.Header); err != nil {
		return fmt.Errorf("error writing %s header: %w", f.Name, err)
	}
	if err := writer.WriteAll(f.Rows); err != nil {
		return fmt.Errorf("error writing %s: %w", f.Name, err)
	}

	writer.Flush()
	return writer.Error()
}

// WriteFile writes the frame to a CSV file at the given path
func (f *Frame) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	defer file.Close()

	return f.Write(file)
}
