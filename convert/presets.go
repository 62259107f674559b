package convert

import (
	"sort"

	"github.com/moffa90/go-hex2boot/ihex"
)

// DefaultPageSize is the erase page size used when no map preset is selected.
const DefaultPageSize = 512

// Window is an inclusive flash address range with a uniform erase page size.
type Window struct {
	Start    uint32
	End      uint32
	PageSize uint32
}

// Size returns the number of bytes in the window.
func (w Window) Size() uint32 {
	return w.End - w.Start + 1
}

// Contains reports whether addr falls inside the window.
func (w Window) Contains(addr uint32) bool {
	return addr >= w.Start && addr <= w.End
}

// Preset is a named device memory map.
type Preset struct {
	Name    string
	Regions []Window
	Bank    uint8
}

var presets = map[string]Preset{
	"bb2": {
		Name: "bb2",
		Regions: []Window{
			{Start: 0x0000, End: 0x3DFF, PageSize: 512},
			{Start: 0xF800, End: 0xFBBF, PageSize: 64},
		},
	},
	"bb50": {
		Name:    "bb50",
		Regions: []Window{{Start: 0x0000, End: 0x37FF, PageSize: 2048}},
	},
	"bb51": {
		Name:    "bb51",
		Regions: []Window{{Start: 0x0000, End: 0x37FF, PageSize: 2048}},
	},
	"bb52": {
		Name:    "bb52",
		Regions: []Window{{Start: 0x0000, End: 0x77FF, PageSize: 2048}},
	},
	"sb2": {
		Name:    "sb2",
		Regions: []Window{{Start: 0x0000, End: 0xF7FF, PageSize: 1024}},
	},
	"ub1": {
		Name: "ub1",
		Regions: []Window{
			{Start: 0x0000, End: 0x3DFF, PageSize: 512},
			{Start: 0xF800, End: 0xFBBF, PageSize: 64},
		},
	},
}

// identity spans the whole address space so that [start, top] alone bounds it.
var identity = Preset{
	Regions: []Window{{Start: 0, End: ^uint32(0), PageSize: DefaultPageSize}},
}

// PresetNames returns the names of all map presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupPreset returns the preset with the given name. The empty name
// selects the identity map.
func LookupPreset(name string) (Preset, error) {
	if name == "" {
		return identity, nil
	}
	p, ok := presets[name]
	if !ok {
		return Preset{}, &UnsupportedMapError{Name: name}
	}
	return p, nil
}

// Windows returns the preset regions clamped to [start, top]. Regions that
// do not overlap the range are left out.
func (p Preset) Windows(start, top uint32) []Window {
	var out []Window
	for _, r := range p.Regions {
		lo, hi := r.Start, r.End
		if lo < start {
			lo = start
		}
		if hi > top {
			hi = top
		}
		if lo > hi {
			continue
		}
		out = append(out, Window{Start: lo, End: hi, PageSize: r.PageSize})
	}
	return out
}

// Contains reports whether addr falls inside any preset region.
func (p Preset) Contains(addr uint32) bool {
	for _, r := range p.Regions {
		if r.Contains(addr) {
			return true
		}
	}
	return false
}

// Apply returns a copy of img without the bytes that fall outside the
// preset regions, along with the number of bytes dropped.
func (p Preset) Apply(img *ihex.Image) (*ihex.Image, int) {
	return img.Filter(p.Contains)
}
