package bootrec

import "fmt"

// Record is a single logical bootload record. The concrete types are Erase,
// Write, Identity, Lock, Wait and Verify.
type Record interface {
	// Type returns the record type code
	Type() byte

	// Kind returns a short lowercase name of the record type
	Kind() string

	fmt.Stringer

	isRecord()
}

// Erase erases the inclusive address range [Start, End].
type Erase struct {
	Start uint32
	End   uint32
}

// Write programs Data starting at Address.
type Write struct {
	Address uint32
	Data    []byte

	// EraseFirst asks the bootloader to erase the page at Address before
	// programming it.
	EraseFirst bool
}

// Identity carries device identification bytes.
type Identity struct {
	Data []byte
}

// Lock writes the flash lock byte.
type Lock struct {
	Value byte
}

// Wait keeps the device in bootloader mode once all records are processed.
type Wait struct{}

// Verify asks the bootloader to compare the CRC-16/XMODEM of the inclusive
// range [Start, End] with CRC.
type Verify struct {
	Start uint32
	End   uint32
	CRC   uint16
}

func (Erase) Type() byte    { return TypeErase }
func (Write) Type() byte    { return TypeWrite }
func (Identity) Type() byte { return TypeIdentity }
func (Lock) Type() byte     { return TypeLock }
func (Wait) Type() byte     { return TypeWait }
func (Verify) Type() byte   { return TypeVerify }

func (Erase) Kind() string    { return "erase" }
func (Write) Kind() string    { return "write" }
func (Identity) Kind() string { return "identity" }
func (Lock) Kind() string     { return "lock" }
func (Wait) Kind() string     { return "wait" }
func (Verify) Kind() string   { return "verify" }

func (Erase) isRecord()    {}
func (Write) isRecord()    {}
func (Identity) isRecord() {}
func (Lock) isRecord()     {}
func (Wait) isRecord()     {}
func (Verify) isRecord()   {}

func (r Erase) String() string {
	return fmt.Sprintf("erase 0x%04X-0x%04X", r.Start, r.End)
}

func (r Write) String() string {
	if r.EraseFirst {
		return fmt.Sprintf("write 0x%04X [%d] (erase)", r.Address, len(r.Data))
	}
	return fmt.Sprintf("write 0x%04X [%d]", r.Address, len(r.Data))
}

func (r Identity) String() string {
	return fmt.Sprintf("identity % X", r.Data)
}

func (r Lock) String() string {
	return fmt.Sprintf("lock 0x%02X", r.Value)
}

func (Wait) String() string {
	return "wait"
}

func (r Verify) String() string {
	return fmt.Sprintf("verify 0x%04X-0x%04X crc=0x%04X", r.Start, r.End, r.CRC)
}
