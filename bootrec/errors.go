package bootrec

import (
	"errors"
	"fmt"
)

// EncodingOverflowError indicates a record field that cannot represent its
// value in the wire format.
type EncodingOverflowError struct {
	// Index is the position of the record in the encoded sequence
	Index int

	// Record is the record kind, e.g. "write"
	Record string

	// Field names the field that overflowed, e.g. "length" or "address"
	Field string

	// Value is the value that did not fit
	Value uint64

	// Max is the largest value the field can hold
	Max uint64
}

func (e *EncodingOverflowError) Error() string {
	return fmt.Sprintf("record %d (%s): %s 0x%X exceeds maximum 0x%X",
		e.Index, e.Record, e.Field, e.Value, e.Max)
}

// DecodeError indicates a malformed record in an encoded stream.
type DecodeError struct {
	// Offset is the byte offset of the record in the stream
	Offset int

	// Reason describes the problem
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode record at offset %d: %s", e.Offset, e.Reason)
}

// IsEncodingOverflow returns true if err is or wraps an EncodingOverflowError.
func IsEncodingOverflow(err error) bool {
	var oe *EncodingOverflowError
	return errors.As(err, &oe)
}
