// Package bootrec encodes and decodes Bootload Records, the binary
// instructions a factory bootloader executes in sequence.
//
// # Record Layout
//
// Every record has the same frame structure:
//
//	[MARKER][TYPE][FLAGS][LEN_H][LEN_L][ADDR(2|3)][PAYLOAD...][CHECKSUM]
//
// Where:
//   - MARKER = StartMarker ('$', 0x24)
//   - TYPE = record type code (TypeErase, TypeWrite, ...)
//   - FLAGS = bit 0 selects bank 1, bit 1 erases before writing
//   - LEN = 16-bit payload length (big-endian)
//   - ADDR = 16-bit (Addr16) or 24-bit (Addr24) address (big-endian)
//   - CHECKSUM = 2's complement of the sum of all preceding bytes, so every
//     record sums to zero modulo 256
//
// Payloads by record type:
//
//	Erase     end address (inclusive)
//	Write     data to program at ADDR
//	Identity  identification bytes
//	Lock      lock byte
//	Wait      empty
//	Verify    end address (inclusive) + CRC-16/XMODEM (2 bytes)
//
// # Encoding
//
//	stream, err := bootrec.Encode(records, bank, bootrec.Addr16)
//
// Fields that do not fit their wire width fail with *EncodingOverflowError.
//
// # Decoding
//
//	frames, err := bootrec.Decode(stream, bootrec.Addr16)
//	for _, fr := range frames {
//	    fmt.Println(fr.Bank, fr.Record)
//	}
package bootrec
