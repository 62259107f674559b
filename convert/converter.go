package convert

import (
	"fmt"
	"io"

	"github.com/moffa90/go-hex2boot/bootrec"
	"github.com/moffa90/go-hex2boot/ihex"
)

// Converter turns Intel HEX images into bootload record streams.
//
// Converter is immutable after New and safe for concurrent use.
type Converter struct {
	config Config
	preset Preset
	bank   uint8
}

// New creates a Converter with the given options.
// Unknown map names and inverted address ranges are rejected here, before
// any input is read.
//
// Example:
//
//	conv, err := convert.New(
//	    convert.WithMap("bb2"),
//	    convert.WithErase(convert.EraseSeparate),
//	    convert.WithWait(true),
//	)
func New(opts ...Option) (*Converter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	preset, err := LookupPreset(cfg.Map)
	if err != nil {
		return nil, err
	}

	if cfg.Start > cfg.Top {
		return nil, &InvalidRangeError{Start: cfg.Start, Top: cfg.Top}
	}

	if cfg.Erase < EraseNone || cfg.Erase > EraseWithData {
		return nil, fmt.Errorf("invalid erase mode %d", int(cfg.Erase))
	}

	bank := preset.Bank
	if cfg.bankSet {
		if cfg.Bank > 1 {
			return nil, fmt.Errorf("invalid bank %d: must be 0 or 1", cfg.Bank)
		}
		bank = cfg.Bank
	}

	return &Converter{
		config: cfg,
		preset: preset,
		bank:   bank,
	}, nil
}

// Config returns the effective configuration.
func (c *Converter) Config() Config {
	cfg := c.config
	cfg.Bank = c.bank
	return cfg
}

// Windows returns the programmable windows: the preset regions clamped to
// the configured [start, top] range.
func (c *Converter) Windows() []Window {
	return c.preset.Windows(c.config.Start, c.config.Top)
}

// Convert reads Intel HEX from r and returns the encoded record stream.
// A nil r means no input file, which yields an erase-only stream. Input
// without data records is not the same: it yields no erase or write records.
//
// Example:
//
//	f, _ := os.Open("firmware.hex")
//	defer f.Close()
//	stream, err := conv.Convert(f)
func (c *Converter) Convert(r io.Reader) ([]byte, error) {
	if r == nil {
		return c.ConvertImage(nil)
	}

	var opts []ihex.ParseOption
	if c.config.StrictEOF {
		opts = append(opts, ihex.RequireEOF())
	}

	img, err := ihex.ParseReader(r, opts...)
	if err != nil {
		c.logError("parse failed", "error", err)
		return nil, fmt.Errorf("parse hex: %w", err)
	}

	return c.ConvertImage(img)
}

// ConvertImage maps, builds and encodes an already parsed image.
// A nil img means no input file, as for Build.
func (c *Converter) ConvertImage(img *ihex.Image) ([]byte, error) {
	return c.ConvertMapped(c.Transform(img))
}

// ConvertMapped builds and encodes an image that Transform already mapped.
func (c *Converter) ConvertMapped(mapped *ihex.Image) ([]byte, error) {
	recs := c.Build(mapped)

	stream, err := bootrec.Encode(recs, c.bank, c.config.Format)
	if err != nil {
		c.logError("encode failed", "error", err)
		return nil, fmt.Errorf("encode records: %w", err)
	}

	c.logInfo("conversion complete",
		"records", len(recs),
		"bytes", len(stream),
	)

	return stream, nil
}

// Transform applies the map preset to img. Bytes outside the preset
// regions are dropped with a warning; img itself is not modified.
// A nil img stays nil.
func (c *Converter) Transform(img *ihex.Image) *ihex.Image {
	if img == nil {
		return nil
	}

	out, dropped := c.preset.Apply(img)
	if dropped > 0 {
		c.logWarn("bytes outside memory map dropped",
			"map", c.preset.Name,
			"count", dropped,
		)
	}
	return out
}

// Clip returns the part of img that Build would program: the bytes inside
// the clamped windows.
func (c *Converter) Clip(img *ihex.Image) *ihex.Image {
	if img == nil {
		return ihex.NewImage()
	}
	windows := c.Windows()
	out, _ := img.Filter(func(addr uint32) bool {
		for _, w := range windows {
			if w.Contains(addr) {
				return true
			}
		}
		return false
	})
	return out
}

// Build returns the ordered records for img:
//  1. Erase records (separate mode, or erase-only)
//  2. Write records per window, each window followed by its Verify record
//  3. The deferred reset vector write (failsafe)
//  4. Identity records
//  5. Lock record
//  6. Wait record
//
// A nil img means no input file: the windows are erased instead of
// programmed, unless a lock byte is set, in which case only the trailing
// records are produced. A non-nil img with no data inside the windows
// yields no erase or write records.
//
// Writes are at most min(bootrec.MaxChunk, page size) bytes. In with-data
// mode they also end at page boundaries, so a run that starts mid-page can
// take one more record than its length alone requires.
func (c *Converter) Build(img *ihex.Image) []bootrec.Record {
	noInput := img == nil
	if noInput {
		img = ihex.NewImage()
	}

	windows := c.Windows()
	eraseOnly := noInput && c.config.Lock == nil
	inRange := !noInput && c.Clip(img).Len() > 0

	c.logDebug("building records",
		"bank", c.bank,
		"erase", c.config.Erase.String(),
		"windows", len(windows),
		"bytes", img.Len(),
	)

	var recs []bootrec.Record

	if !noInput && !inRange {
		c.logWarn("no data inside the address range",
			"start", fmt.Sprintf("0x%X", c.config.Start),
			"top", fmt.Sprintf("0x%X", c.config.Top),
		)
	}

	if eraseOnly || (inRange && c.config.Erase == EraseSeparate) {
		for _, w := range windows {
			recs = append(recs, bootrec.Erase{Start: w.Start, End: w.End})
		}
	}

	if eraseOnly {
		c.logDebug("no input, erase only")
		if c.config.Verify {
			for _, w := range windows {
				recs = append(recs, bootrec.Verify{
					Start: w.Start,
					End:   w.End,
					CRC:   erasedCRC(w.Size()),
				})
			}
		}
	} else if noInput {
		c.logDebug("no input, lock only")
	} else if inRange {
		prog, resetVector, deferred := c.deferResetVector(img)

		programmed := 0
		erasedPages := make(map[uint32]bool)
		for _, w := range windows {
			runs := prog.Runs(w.Start, w.End)
			if len(runs) == 0 {
				continue
			}

			for _, run := range runs {
				for _, piece := range c.split(run, w) {
					wr := bootrec.Write{Address: piece.Address, Data: piece.Data}
					if c.config.Erase == EraseWithData {
						page := piece.Address - piece.Address%w.PageSize
						if !erasedPages[page] {
							erasedPages[page] = true
							wr.EraseFirst = true
						}
					}
					recs = append(recs, wr)
					programmed += len(piece.Data)
				}
			}

			if c.config.Verify {
				first, last := runs[0].Address, runs[len(runs)-1].End()
				recs = append(recs, bootrec.Verify{
					Start: first,
					End:   last,
					CRC:   bootrec.CRC16(prog.Bytes(first, last, 0xFF), 0),
				})
			}
		}

		if skipped := prog.Len() - programmed; skipped > 0 {
			c.logDebug("bytes outside address range skipped", "count", skipped)
		}

		if deferred {
			recs = append(recs, bootrec.Write{Address: 0, Data: []byte{resetVector}})
		}
	}

	for _, id := range c.config.IDs {
		recs = append(recs, bootrec.Identity{Data: id})
	}

	if c.config.Lock != nil {
		recs = append(recs, bootrec.Lock{Value: *c.config.Lock})
	}

	if c.config.Wait {
		recs = append(recs, bootrec.Wait{})
	}

	return recs
}

// deferResetVector blanks address 0 when failsafe programming applies and
// returns the original byte so it can be written last.
func (c *Converter) deferResetVector(img *ihex.Image) (*ihex.Image, byte, bool) {
	if !c.config.Failsafe || c.bank != 0 || c.config.Start != 0 {
		return img, 0, false
	}

	b, ok := img.Get(0)
	if !ok || b == 0xFF {
		return img, 0, false
	}

	patched, _ := img.Filter(func(uint32) bool { return true })
	patched.Set(0, 0xFF)

	c.logDebug("reset vector deferred", "value", fmt.Sprintf("0x%02X", b))
	return patched, b, true
}

// split cuts a run into write payloads no larger than the window chunk
// size. In with-data mode pieces also stop at page boundaries so that each
// erase flag covers exactly the page being written.
func (c *Converter) split(run ihex.Run, w Window) []ihex.Run {
	chunk := uint32(bootrec.MaxChunk)
	if w.PageSize < chunk {
		chunk = w.PageSize
	}

	var pieces []ihex.Run
	addr, data := run.Address, run.Data
	for len(data) > 0 {
		n := chunk
		if rest := uint32(len(data)); n > rest {
			n = rest
		}
		if c.config.Erase == EraseWithData {
			if toBoundary := w.PageSize - addr%w.PageSize; n > toBoundary {
				n = toBoundary
			}
		}
		pieces = append(pieces, ihex.Run{Address: addr, Data: data[:n]})
		addr += n
		data = data[n:]
	}
	return pieces
}

// erasedCRC returns the CRC of size bytes of erased flash.
func erasedCRC(size uint32) uint16 {
	var crc uint16
	ff := [256]byte{}
	for i := range ff {
		ff[i] = 0xFF
	}
	for size > 0 {
		n := uint32(len(ff))
		if size < n {
			n = size
		}
		crc = bootrec.CRC16(ff[:n], crc)
		size -= n
	}
	return crc
}
