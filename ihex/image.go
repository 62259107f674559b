package ihex

import (
	"fmt"
	"io"
	"sort"

	"github.com/marcinbor85/gohex"
)

// HexLineLength is the number of data bytes per line written by WriteHex.
const HexLineLength = 16

// Image is a sparse memory image: a mapping of absolute address to byte.
//
// Writing the same address twice keeps the later value, matching the
// Intel HEX convention that later records overwrite earlier ones.
type Image struct {
	data map[uint32]byte
}

// Run is a contiguous block of bytes starting at Address.
type Run struct {
	// Address is the address of Data[0]
	Address uint32

	// Data holds the bytes of the run, in address order
	Data []byte
}

// End returns the address of the last byte of the run.
func (r Run) End() uint32 {
	return r.Address + uint32(len(r.Data)) - 1
}

// NewImage returns an empty image.
func NewImage() *Image {
	return &Image{data: make(map[uint32]byte)}
}

// Set stores a single byte at addr.
func (m *Image) Set(addr uint32, b byte) {
	m.data[addr] = b
}

// SetBytes stores data starting at addr.
func (m *Image) SetBytes(addr uint32, data []byte) {
	for i, b := range data {
		m.data[addr+uint32(i)] = b
	}
}

// Get returns the byte at addr and whether it is present.
func (m *Image) Get(addr uint32) (byte, bool) {
	b, ok := m.data[addr]
	return b, ok
}

// Len returns the number of addresses holding data.
func (m *Image) Len() int {
	return len(m.data)
}

// Addresses returns every populated address in ascending order.
func (m *Image) Addresses() []uint32 {
	addrs := make([]uint32, 0, len(m.data))
	for a := range m.data {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs
}

// Runs returns the contiguous runs of populated addresses within the
// inclusive range [lo, hi], in ascending address order.
func (m *Image) Runs(lo, hi uint32) []Run {
	var runs []Run
	for _, a := range m.Addresses() {
		if a < lo || a > hi {
			continue
		}
		if n := len(runs); n > 0 && runs[n-1].End()+1 == a {
			runs[n-1].Data = append(runs[n-1].Data, m.data[a])
			continue
		}
		runs = append(runs, Run{Address: a, Data: []byte{m.data[a]}})
	}
	return runs
}

// Filter returns a new image holding only the addresses for which keep
// returns true, along with the number of bytes left out.
func (m *Image) Filter(keep func(addr uint32) bool) (*Image, int) {
	out := NewImage()
	dropped := 0
	for a, b := range m.data {
		if keep(a) {
			out.data[a] = b
		} else {
			dropped++
		}
	}
	return out, dropped
}

// Bytes returns the inclusive range [lo, hi] as a flat slice with missing
// addresses filled with pad.
func (m *Image) Bytes(lo, hi uint32, pad byte) []byte {
	if hi < lo {
		return nil
	}
	out := make([]byte, 0, hi-lo+1)
	for a := lo; ; a++ {
		b, ok := m.data[a]
		if !ok {
			b = pad
		}
		out = append(out, b)
		if a == hi {
			break
		}
	}
	return out
}

// WriteHex writes the image to w in Intel HEX format.
func (m *Image) WriteHex(w io.Writer) error {
	mem := gohex.NewMemory()
	for _, run := range m.Runs(0, ^uint32(0)) {
		if err := mem.AddBinary(run.Address, run.Data); err != nil {
			return fmt.Errorf("add run at 0x%08X: %w", run.Address, err)
		}
	}
	if err := mem.DumpIntelHex(w, HexLineLength); err != nil {
		return fmt.Errorf("dump intel hex: %w", err)
	}
	return nil
}
