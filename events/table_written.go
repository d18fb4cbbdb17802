package events

// TableWritten is sent after each output CSV file has been written
type TableWritten struct {
	Base
	Table    string
	FileName string
	Rows     int
	Columns  int
}

func NewTableWrittenEvent(table, fileName string, rows, columns int) *TableWritten {
	return &TableWritten{
		Table:    table,
		FileName: fileName,
		Rows:     rows,
		Columns:  columns,
	}
}
