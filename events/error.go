package events

type Error struct {
	Base
	Err error
}

func NewErrorEvent(err error) *Error {
	return &Error{
		Err: err,
	}
}
