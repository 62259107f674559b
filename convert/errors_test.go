package convert

import (
	"strings"
	"testing"
)

func TestUnsupportedMapError(t *testing.T) {
	err := &UnsupportedMapError{Name: "bb3"}

	errMsg := err.Error()

	if !strings.Contains(errMsg, `unsupported map "bb3"`) {
		t.Errorf("error message should name the map, got: %s", errMsg)
	}

	if !strings.Contains(errMsg, "bb2, bb50, bb51, bb52, sb2, ub1") {
		t.Errorf("error message should list the valid maps, got: %s", errMsg)
	}
}

func TestInvalidRangeError(t *testing.T) {
	err := &InvalidRangeError{Start: 0x8000, Top: 0x7FFF}

	want := "invalid address range: start 0x8000 is above top 0x7FFF"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorTypes(t *testing.T) {
	var _ error = &UnsupportedMapError{}
	var _ error = &InvalidRangeError{}
}
