package events

type Status struct {
	Base
	// the table currently being extracted
	Table string
	// rows read from the current table so far
	RowsScanned int
	// rows retained by the relational filter so far
	RowsRetained int
	// output files written so far
	TablesWritten int
	Errors        int
}

func NewStatusEvent(table string) *Status {
	return &Status{
		Table: table,
	}
}

func (s *Status) Update(event Event) {
	switch e := event.(type) {
	case *TableWritten:
		s.TablesWritten++
		s.Table = e.Table
	case *Error:
		s.Errors++
	}
}

func (s *Status) Equals(status *Status) bool {
	if status == nil {
		return false
	}

	return s.Table == status.Table &&
		s.RowsScanned == status.RowsScanned &&
		s.RowsRetained == status.RowsRetained &&
		s.TablesWritten == status.TablesWritten &&
		s.Errors == status.Errors
}
