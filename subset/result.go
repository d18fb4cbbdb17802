package subset

import (
	"time"

	"github.com/medlearn/mimic-subset/table"
)

// TableResult records the shape of one written output table
type TableResult struct {
	Table   table.Table
	Rows    int
	Columns int
}

// Result summarises a completed subset run - the report is generated from it
type Result struct {
	// the requested sample size
	SampleSize int
	// the seed the sampler ran with
	Seed int64

	// unique entity counts in the output
	UniquePatients   int
	UniqueAdmissions int
	UniqueIcuStays   int

	// cap applied to lab events per patient
	MaxLabsPerSubject int

	// filtered tables, in output order
	Tables []TableResult
	// dictionary passthrough tables, in output order
	DictionaryTables []TableResult

	OutputDir string
	CreatedAt time.Time
}

func (r *Result) tableResult(t table.Table) *TableResult {
	for i := range r.Tables {
		if r.Tables[i].Table.Name == t.Name {
			return &r.Tables[i]
		}
	}
	return nil
}

// AdmissionCount returns the number of admissions in the output
func (r *Result) AdmissionCount() int {
	if tr := r.tableResult(table.Admissions); tr != nil {
		return tr.Rows
	}
	return 0
}
