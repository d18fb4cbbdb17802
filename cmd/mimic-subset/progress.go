package main

import (
	"context"
	"fmt"

	"github.com/medlearn/mimic-subset/events"
	"github.com/medlearn/mimic-subset/observable"
)

// registerProgressObserver attaches the stdout progress printer to an event
// publisher
func registerProgressObserver(o observable.Observable) error {
	return o.AddObserver(newProgressObserver())
}

// progressObserver prints run progress to stdout
type progressObserver struct {
	// set once a chunked scan has started, so the next non-status line knows
	// to terminate the in-place status line
	statusLinePending bool
}

func newProgressObserver() *progressObserver {
	return &progressObserver{}
}

func (o *progressObserver) Notify(_ context.Context, event events.Event) error {
	switch e := event.(type) {
	case *events.Started:
		fmt.Println("Starting MIMIC-III subset creation...")
		fmt.Printf("Input zip file: %s\n", e.ArchivePath)
		fmt.Printf("Sample size: %d admissions\n", e.SampleSize)
	case *events.Status:
		fmt.Printf("\r%s: scanned %d rows, retained %d", e.Table, e.RowsScanned, e.RowsRetained)
		o.statusLinePending = true
	case *events.TableWritten:
		o.endStatusLine()
		fmt.Printf("Saved %s (%d rows, %d columns)\n", e.FileName, e.Rows, e.Columns)
	case *events.Complete:
		o.endStatusLine()
		if e.Err == nil {
			fmt.Printf("Wrote %d tables for %d admissions\n", e.TablesWritten, e.Admissions)
		}
	}
	return nil
}

func (o *progressObserver) endStatusLine() {
	if o.statusLinePending {
		fmt.Println()
		o.statusLinePending = false
	}
}
