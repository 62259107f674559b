package bootrec

// Frame structure constants.
const (
	// StartMarker is the first byte of every record ('$')
	StartMarker = 0x24

	// HeaderSize is the size of marker(1) + type(1) + flags(1) + length(2)
	HeaderSize = 5

	// ChecksumSize is the size of the trailing checksum byte
	ChecksumSize = 1

	// MaxPayload is the largest payload the 16-bit length field can describe
	MaxPayload = 0xFFFF

	// MaxChunk is the largest write payload the bootloader accepts per record
	MaxChunk = 128
)

// Record type codes.
const (
	// TypeIdentity carries device identification bytes
	TypeIdentity = 0x30

	// TypeErase erases an inclusive address range
	TypeErase = 0x32

	// TypeWrite programs data at an address
	TypeWrite = 0x33

	// TypeVerify checks a CRC-16 over an inclusive address range
	TypeVerify = 0x34

	// TypeLock writes the flash lock byte
	TypeLock = 0x35

	// TypeWait keeps the device in bootloader mode after processing
	TypeWait = 0x36
)

// Flag bits carried in the third byte of every record.
const (
	// FlagBank selects flash bank 1 when set
	FlagBank = 0x01

	// FlagEraseFirst erases the page at the write address before programming
	FlagEraseFirst = 0x02

	flagMask = FlagBank | FlagEraseFirst
)

// Payload sizes of the fixed-size records, excluding address-width fields.
const (
	// LockPayloadSize is the size of the Lock record payload
	LockPayloadSize = 1

	// CRCSize is the size of the CRC field in a Verify record
	CRCSize = 2
)

// Format selects the width of the address fields.
type Format int

const (
	// Addr16 uses 16-bit addresses (64 KiB per bank)
	Addr16 Format = iota

	// Addr24 uses 24-bit addresses
	Addr24
)

// AddressSize returns the width of an address field in bytes.
func (f Format) AddressSize() int {
	if f == Addr24 {
		return 3
	}
	return 2
}

// MaxAddress returns the highest address the format can represent.
func (f Format) MaxAddress() uint32 {
	if f == Addr24 {
		return 0xFFFFFF
	}
	return 0xFFFF
}

// MinFrameSize returns the size of a record with an empty payload.
func (f Format) MinFrameSize() int {
	return HeaderSize + f.AddressSize() + ChecksumSize
}

func (f Format) String() string {
	if f == Addr24 {
		return "addr24"
	}
	return "addr16"
}
