package bootrec

import (
	"encoding/binary"
	"fmt"
)

// Frame is a decoded record together with the bank it was encoded for.
type Frame struct {
	Bank   uint8
	Record Record
}

// Decode parses a byte stream produced by Encode back into frames.
// Validates every record's marker, length and checksum.
func Decode(stream []byte, f Format) ([]Frame, error) {
	var frames []Frame
	for off := 0; off < len(stream); {
		frame, n, err := decodeAt(stream[off:], off, f)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
		off += n
	}
	return frames, nil
}

// DecodeRecord parses the first record of data and returns it together with
// the number of bytes it occupied.
func DecodeRecord(data []byte, f Format) (Frame, int, error) {
	return decodeAt(data, 0, f)
}

func decodeAt(data []byte, offset int, f Format) (Frame, int, error) {
	fail := func(format string, args ...interface{}) (Frame, int, error) {
		return Frame{}, 0, &DecodeError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
	}

	minSize := f.MinFrameSize()
	if len(data) < minSize {
		return fail("record too short: got %d bytes, minimum is %d", len(data), minSize)
	}

	if data[0] != StartMarker {
		return fail("invalid start marker: got 0x%02X, expected 0x%02X", data[0], StartMarker)
	}

	recType := data[1]
	flags := data[2]
	payloadLen := int(binary.BigEndian.Uint16(data[3:5]))

	size := minSize + payloadLen
	if len(data) < size {
		return fail("record truncated: got %d bytes, expected %d (minimum=%d + payload=%d)",
			len(data), size, minSize, payloadLen)
	}

	if sum := CalculateChecksum(data[:size-1]); sum != data[size-1] {
		return fail("checksum mismatch: got 0x%02X, expected 0x%02X", data[size-1], sum)
	}

	if flags&^flagMask != 0 {
		return fail("unknown flag bits 0x%02X", flags&^flagMask)
	}
	if flags&FlagEraseFirst != 0 && recType != TypeWrite {
		return fail("erase flag set on record type 0x%02X", recType)
	}

	addrSize := f.AddressSize()
	addr := readAddress(data[HeaderSize:], f)
	payload := data[HeaderSize+addrSize : size-1]

	var rec Record
	switch recType {
	case TypeErase:
		if len(payload) != addrSize {
			return fail("erase payload must be %d bytes, got %d", addrSize, len(payload))
		}
		rec = Erase{Start: addr, End: readAddress(payload, f)}

	case TypeWrite:
		if len(payload) == 0 {
			return fail("write payload cannot be empty")
		}
		rec = Write{
			Address:    addr,
			Data:       append([]byte(nil), payload...),
			EraseFirst: flags&FlagEraseFirst != 0,
		}

	case TypeIdentity:
		rec = Identity{Data: append([]byte(nil), payload...)}

	case TypeLock:
		if len(payload) != LockPayloadSize {
			return fail("lock payload must be %d byte, got %d", LockPayloadSize, len(payload))
		}
		rec = Lock{Value: payload[0]}

	case TypeWait:
		if len(payload) != 0 {
			return fail("wait payload must be empty, got %d bytes", len(payload))
		}
		rec = Wait{}

	case TypeVerify:
		if len(payload) != addrSize+CRCSize {
			return fail("verify payload must be %d bytes, got %d", addrSize+CRCSize, len(payload))
		}
		rec = Verify{
			Start: addr,
			End:   readAddress(payload, f),
			CRC:   binary.BigEndian.Uint16(payload[addrSize:]),
		}

	default:
		return fail("unknown record type 0x%02X", recType)
	}

	return Frame{Bank: flags & FlagBank, Record: rec}, size, nil
}

// readAddress reads a big-endian address in the width selected by f.
func readAddress(b []byte, f Format) uint32 {
	if f == Addr24 {
		return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
	}
	return uint32(binary.BigEndian.Uint16(b))
}
