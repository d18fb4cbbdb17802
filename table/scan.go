package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// RowPredicate decides whether a scanned row is retained, and whether the scan
// can stop early (e.g. once every patient has reached its lab-event cap)
type RowPredicate func(row []string) (keep bool, stop bool)

// PredicateFunc builds a RowPredicate once the header is known, resolving any
// column indexes it needs. A missing column aborts the scan.
type PredicateFunc func(header *Frame) (RowPredicate, error)

// ProgressFunc is called after every chunk of scanned rows
type ProgressFunc func(scanned, retained int)

// Scan streams a CSV table row by row, retaining rows the predicate accepts.
// Used for tables too large to hold in memory. progress may be nil.
func Scan(r io.Reader, name string, chunkSize int, makePredicate PredicateFunc, progress ProgressFunc) (*Frame, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading %s header: %w", name, err)
	}

	result := &Frame{Name: name, Header: header}
	predicate, err := makePredicate(result)
	if err != nil {
		return nil, err
	}

	scanned := 0
	for {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("error reading %s: %w", name, err)
		}

		scanned++
		keep, stop := predicate(row)
		if keep {
			result.Rows = append(result.Rows, row)
		}

		if scanned%chunkSize == 0 && progress != nil {
			progress(scanned, len(result.Rows))
		}
		if stop {
			break
		}
	}

	if progress != nil {
		progress(scanned, len(result.Rows))
	}
	return result, nil
}
