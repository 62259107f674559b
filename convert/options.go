package convert

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/moffa90/go-hex2boot/bootrec"
)

// EraseMode selects how flash is erased before programming.
type EraseMode int

const (
	// EraseNone emits no erase information at all
	EraseNone EraseMode = iota

	// EraseSeparate emits one Erase record per window before any write
	EraseSeparate

	// EraseWithData sets the erase flag on the first write touching each page
	EraseWithData
)

var eraseModeNames = [...]string{"none", "separate", "with-data"}

func (m EraseMode) String() string {
	if m >= 0 && int(m) < len(eraseModeNames) {
		return eraseModeNames[m]
	}
	return fmt.Sprintf("EraseMode(%d)", int(m))
}

// ParseEraseMode accepts either the numeric mode (0, 1, 2) or its name
// (none, separate, with-data).
func ParseEraseMode(s string) (EraseMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range eraseModeNames {
		if s == name || s == strconv.Itoa(i) {
			return EraseMode(i), nil
		}
	}
	return 0, fmt.Errorf("invalid erase mode %q: must be 0, 1, 2 or %s",
		s, strings.Join(eraseModeNames[:], ", "))
}

// Config holds the conversion parameters.
type Config struct {
	// Bank is the flash bank carried in every record (0 or 1).
	// Defaults to the map preset's bank when not set.
	Bank uint8

	// Erase selects the erase strategy. Default is EraseWithData.
	Erase EraseMode

	// IDs are identity byte sequences emitted in order after the writes
	IDs [][]byte

	// Lock is the flash lock byte (optional)
	Lock *byte

	// Map names the memory map preset. Empty means no address translation.
	Map string

	// Start and Top bound the programmed addresses, both inclusive
	Start uint32
	Top   uint32

	// Wait keeps the device in the bootloader after programming
	Wait bool

	// Verify adds a CRC verify record after each programmed window
	Verify bool

	// Failsafe defers the reset vector byte to the very last write
	Failsafe bool

	// Format selects the record address width
	Format bootrec.Format

	// StrictEOF rejects hex input without an end of file record
	StrictEOF bool

	// Logger is used for logging conversion steps (optional)
	Logger Logger

	bankSet bool
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Erase:  EraseWithData,
		Start:  0x0000,
		Top:    0xFFFF,
		Format: bootrec.Addr16,
	}
}

// Option is a functional option for configuring the Converter.
type Option func(*Config)

// WithBank sets the flash bank, overriding the map preset's default.
//
// Example:
//
//	conv, err := convert.New(convert.WithBank(1))
func WithBank(bank uint8) Option {
	return func(c *Config) {
		c.Bank = bank
		c.bankSet = true
	}
}

// WithErase sets the erase mode.
//
// Example:
//
//	conv, err := convert.New(convert.WithErase(convert.EraseSeparate))
func WithErase(mode EraseMode) Option {
	return func(c *Config) {
		c.Erase = mode
	}
}

// WithIdentity appends identity byte sequences. Repeated use accumulates.
//
// Example:
//
//	conv, err := convert.New(convert.WithIdentity([]byte{0x12, 0x34}))
func WithIdentity(ids ...[]byte) Option {
	return func(c *Config) {
		for _, id := range ids {
			c.IDs = append(c.IDs, append([]byte(nil), id...))
		}
	}
}

// WithLock sets the flash lock byte.
func WithLock(value byte) Option {
	return func(c *Config) {
		c.Lock = &value
	}
}

// WithMap selects a memory map preset by name (bb2, bb50, bb51, bb52, sb2, ub1).
// Unknown names are rejected by New.
//
// Example:
//
//	conv, err := convert.New(convert.WithMap("bb2"))
func WithMap(name string) Option {
	return func(c *Config) {
		c.Map = name
	}
}

// WithStart sets the lowest address to program.
func WithStart(addr uint32) Option {
	return func(c *Config) {
		c.Start = addr
	}
}

// WithTop sets the highest address to program.
func WithTop(addr uint32) Option {
	return func(c *Config) {
		c.Top = addr
	}
}

// WithRange sets both start and top addresses.
//
// Example:
//
//	conv, err := convert.New(convert.WithRange(0x0000, 0x3DFF))
func WithRange(start, top uint32) Option {
	return func(c *Config) {
		c.Start = start
		c.Top = top
	}
}

// WithWait appends a Wait record so the device stays in the bootloader.
func WithWait(wait bool) Option {
	return func(c *Config) {
		c.Wait = wait
	}
}

// WithVerify enables CRC verify records after each programmed window.
func WithVerify(verify bool) Option {
	return func(c *Config) {
		c.Verify = verify
	}
}

// WithFailsafe enables deferred programming of the reset vector byte.
// A transfer interrupted before the last record then leaves address 0
// erased, so the device re-enters the bootloader on reset.
func WithFailsafe(failsafe bool) Option {
	return func(c *Config) {
		c.Failsafe = failsafe
	}
}

// WithFormat sets the record address width.
//
// Example:
//
//	conv, err := convert.New(convert.WithFormat(bootrec.Addr24), convert.WithTop(0x1FFFF))
func WithFormat(f bootrec.Format) Option {
	return func(c *Config) {
		c.Format = f
	}
}

// WithStrictEOF rejects hex input lacking an end of file record.
func WithStrictEOF(strict bool) Option {
	return func(c *Config) {
		c.StrictEOF = strict
	}
}

// WithLogger sets a logger for the conversion steps.
//
// Example:
//
//	conv, err := convert.New(convert.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
