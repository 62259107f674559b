package convert

import (
	"errors"
	"reflect"
	"testing"

	"github.com/moffa90/go-hex2boot/ihex"
)

func TestLookupPreset(t *testing.T) {
	for _, name := range []string{"bb2", "bb50", "bb51", "bb52", "sb2", "ub1"} {
		t.Run(name, func(t *testing.T) {
			p, err := LookupPreset(name)
			if err != nil {
				t.Fatalf("LookupPreset(%q) error: %v", name, err)
			}
			if p.Name != name {
				t.Errorf("Name = %q, want %q", p.Name, name)
			}
			if p.Bank != 0 {
				t.Errorf("Bank = %d, want 0", p.Bank)
			}
			for _, r := range p.Regions {
				if r.End < r.Start || r.PageSize == 0 {
					t.Errorf("bad region %+v", r)
				}
			}
		})
	}
}

func TestLookupPresetUnknown(t *testing.T) {
	_, err := LookupPreset("bb99")

	var me *UnsupportedMapError
	if !errors.As(err, &me) {
		t.Fatalf("expected *UnsupportedMapError, got %v", err)
	}
	if me.Name != "bb99" {
		t.Errorf("Name = %q, want %q", me.Name, "bb99")
	}
}

func TestPresetNames(t *testing.T) {
	want := []string{"bb2", "bb50", "bb51", "bb52", "sb2", "ub1"}
	if got := PresetNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("PresetNames() = %v, want %v", got, want)
	}
}

func TestPresetWindows(t *testing.T) {
	bb2, _ := LookupPreset("bb2")
	none, _ := LookupPreset("")

	tests := []struct {
		name   string
		preset Preset
		start  uint32
		top    uint32
		want   []Window
	}{
		{
			name:   "bb2 full range",
			preset: bb2,
			start:  0x0000,
			top:    0xFFFF,
			want: []Window{
				{Start: 0x0000, End: 0x3DFF, PageSize: 512},
				{Start: 0xF800, End: 0xFBBF, PageSize: 64},
			},
		},
		{
			name:   "bb2 clamped into first region",
			preset: bb2,
			start:  0x0100,
			top:    0x01FF,
			want:   []Window{{Start: 0x0100, End: 0x01FF, PageSize: 512}},
		},
		{
			name:   "bb2 range between regions",
			preset: bb2,
			start:  0x4000,
			top:    0x7FFF,
			want:   nil,
		},
		{
			name:   "bb2 range straddling both",
			preset: bb2,
			start:  0x3D00,
			top:    0xF8FF,
			want: []Window{
				{Start: 0x3D00, End: 0x3DFF, PageSize: 512},
				{Start: 0xF800, End: 0xF8FF, PageSize: 64},
			},
		},
		{
			name:   "identity",
			preset: none,
			start:  0x0000,
			top:    0xFFFF,
			want:   []Window{{Start: 0x0000, End: 0xFFFF, PageSize: DefaultPageSize}},
		},
		{
			name:   "identity single address",
			preset: none,
			start:  0x1234,
			top:    0x1234,
			want:   []Window{{Start: 0x1234, End: 0x1234, PageSize: DefaultPageSize}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.preset.Windows(tt.start, tt.top)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Windows(0x%X, 0x%X) = %+v, want %+v", tt.start, tt.top, got, tt.want)
			}
		})
	}
}

func TestPresetApply(t *testing.T) {
	sb2, _ := LookupPreset("sb2")

	img := ihex.NewImage()
	img.SetBytes(0xF7FE, []byte{0x01, 0x02, 0x03, 0x04})

	out, dropped := sb2.Apply(img)
	if dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}
	if out.Len() != 2 {
		t.Errorf("Len() = %d, want 2", out.Len())
	}
	if _, ok := out.Get(0xF800); ok {
		t.Error("address 0xF800 should have been dropped")
	}
	if img.Len() != 4 {
		t.Errorf("source image modified: Len() = %d, want 4", img.Len())
	}
}

func TestWindow(t *testing.T) {
	w := Window{Start: 0x100, End: 0x1FF, PageSize: 64}

	if w.Size() != 0x100 {
		t.Errorf("Size() = %d, want 256", w.Size())
	}
	for addr, want := range map[uint32]bool{0xFF: false, 0x100: true, 0x1FF: true, 0x200: false} {
		if got := w.Contains(addr); got != want {
			t.Errorf("Contains(0x%X) = %v, want %v", addr, got, want)
		}
	}
}
