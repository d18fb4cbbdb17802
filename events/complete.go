package events

type Complete struct {
	Base
	Admissions    int
	TablesWritten int
	Err           error
}

func NewCompletedEvent(admissions, tablesWritten int, err error) *Complete {
	return &Complete{
		Admissions:    admissions,
		TablesWritten: tablesWritten,
		Err:           err,
	}
}
