package ihex

import "fmt"

// MalformedRecordError indicates a line of Intel HEX input that could not be
// decoded or whose checksum did not match.
type MalformedRecordError struct {
	// Line is the 1-based line number of the offending record
	Line int

	// Reason describes what was wrong with the record
	Reason string

	// Err is the underlying decoding error, if any
	Err error
}

func (e *MalformedRecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: malformed record: %s: %v", e.Line, e.Reason, e.Err)
	}
	return fmt.Sprintf("line %d: malformed record: %s", e.Line, e.Reason)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}
