package bootrec

import (
	"fmt"
	"strings"
	"testing"
)

func TestEncodingOverflowError(t *testing.T) {
	err := &EncodingOverflowError{
		Index:  3,
		Record: "write",
		Field:  "length",
		Value:  0x10000,
		Max:    0xFFFF,
	}

	errMsg := err.Error()

	if !strings.Contains(errMsg, "record 3") {
		t.Errorf("error message should contain record index, got: %s", errMsg)
	}

	if !strings.Contains(errMsg, "(write)") {
		t.Errorf("error message should contain record kind, got: %s", errMsg)
	}

	if !strings.Contains(errMsg, "length 0x10000 exceeds maximum 0xFFFF") {
		t.Errorf("error message should contain field and limits, got: %s", errMsg)
	}
}

func TestDecodeError(t *testing.T) {
	err := &DecodeError{Offset: 42, Reason: "checksum mismatch"}

	if got := err.Error(); got != "decode record at offset 42: checksum mismatch" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIsEncodingOverflow(t *testing.T) {
	oe := &EncodingOverflowError{Field: "address"}

	if !IsEncodingOverflow(oe) {
		t.Error("IsEncodingOverflow() = false for *EncodingOverflowError")
	}
	if !IsEncodingOverflow(fmt.Errorf("encode: %w", oe)) {
		t.Error("IsEncodingOverflow() = false for wrapped *EncodingOverflowError")
	}
	if IsEncodingOverflow(&DecodeError{}) {
		t.Error("IsEncodingOverflow() = true for *DecodeError")
	}
}

func TestErrorTypes(t *testing.T) {
	var _ error = &EncodingOverflowError{}
	var _ error = &DecodeError{}
}
