package storage

import "fmt"

// OpError describes a failed store operation on a named record.
type OpError struct {
	Op     string
	Record string
	Err    error
}

func (e *OpError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Record, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }
