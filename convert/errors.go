package convert

import (
	"fmt"
	"strings"
)

// UnsupportedMapError indicates a map preset name that is not in the preset table.
type UnsupportedMapError struct {
	Name string
}

func (e *UnsupportedMapError) Error() string {
	return fmt.Sprintf("unsupported map %q: valid maps are %s",
		e.Name, strings.Join(PresetNames(), ", "))
}

// InvalidRangeError indicates a start address above the top address.
type InvalidRangeError struct {
	Start uint32
	Top   uint32
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid address range: start 0x%X is above top 0x%X", e.Start, e.Top)
}
