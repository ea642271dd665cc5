package library

import "fmt"

/*
UnknownLabelError is returned when a label name is not declared by the schema
*/
type UnknownLabelError struct {
	Label string
}

func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("library: unknown label `%v`", e.Label)
}

/*
MissingLabelError is returned when a record does not carry a value for a label
the caller needs, for example a label referenced by a feature term
*/
type MissingLabelError struct {
	Label string
}

func (e *MissingLabelError) Error() string {
	return fmt.Sprintf("library: missing value for label `%v`", e.Label)
}

/*
InvalidBoundsError is returned by Select when a bound or a bad-value filter
can not be applied to the library
*/
type InvalidBoundsError struct {
	Label  string
	Reason string
}

func (e *InvalidBoundsError) Error() string {
	return fmt.Sprintf("library: invalid bound on `%v`: %v", e.Label, e.Reason)
}
