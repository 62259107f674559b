package bootrec

import (
	"encoding/binary"
	"fmt"
)

// Encode serializes records in order into a single byte stream. Records are
// self-delimiting through their length field, so no separators are added.
//
// Every record carries the bank in its flags byte. The first record that
// cannot be represented stops encoding with an *EncodingOverflowError naming
// its position in recs.
//
// Example:
//
//	stream, err := bootrec.Encode([]bootrec.Record{
//	    bootrec.Erase{Start: 0x0000, End: 0x3DFF},
//	    bootrec.Write{Address: 0x0010, Data: data},
//	}, 0, bootrec.Addr16)
func Encode(recs []Record, bank uint8, f Format) ([]byte, error) {
	var stream []byte
	for i, rec := range recs {
		frame, err := encodeRecord(i, rec, bank, f)
		if err != nil {
			return nil, err
		}
		stream = append(stream, frame...)
	}
	return stream, nil
}

// EncodeRecord serializes a single record.
//
// Frame structure:
//
//	[MARKER][TYPE][FLAGS][LEN_H][LEN_L][ADDR(2|3)][PAYLOAD...][CHECKSUM]
func EncodeRecord(rec Record, bank uint8, f Format) ([]byte, error) {
	return encodeRecord(0, rec, bank, f)
}

func encodeRecord(index int, rec Record, bank uint8, f Format) ([]byte, error) {
	if rec == nil {
		return nil, fmt.Errorf("record %d: nil record", index)
	}

	overflow := func(field string, value, max uint64) error {
		return &EncodingOverflowError{
			Index:  index,
			Record: rec.Kind(),
			Field:  field,
			Value:  value,
			Max:    max,
		}
	}

	if bank > 1 {
		return nil, overflow("bank", uint64(bank), 1)
	}

	var flags byte
	if bank == 1 {
		flags |= FlagBank
	}

	maxAddr := f.MaxAddress()
	checkAddr := func(field string, addr uint32) error {
		if addr > maxAddr {
			return overflow(field, uint64(addr), uint64(maxAddr))
		}
		return nil
	}

	var (
		addr    uint32
		payload []byte
	)

	switch r := rec.(type) {
	case Erase:
		if err := checkAddr("address", r.Start); err != nil {
			return nil, err
		}
		if err := checkAddr("end address", r.End); err != nil {
			return nil, err
		}
		if r.End < r.Start {
			return nil, fmt.Errorf("record %d (erase): end address 0x%X before start 0x%X", index, r.End, r.Start)
		}
		addr = r.Start
		payload = appendAddress(nil, r.End, f)

	case Write:
		if len(r.Data) == 0 {
			return nil, fmt.Errorf("record %d (write): data cannot be empty", index)
		}
		if len(r.Data) > MaxPayload {
			return nil, overflow("length", uint64(len(r.Data)), MaxPayload)
		}
		if err := checkAddr("address", r.Address); err != nil {
			return nil, err
		}
		last := uint64(r.Address) + uint64(len(r.Data)) - 1
		if last > uint64(maxAddr) {
			return nil, overflow("end address", last, uint64(maxAddr))
		}
		if r.EraseFirst {
			flags |= FlagEraseFirst
		}
		addr = r.Address
		payload = r.Data

	case Identity:
		if len(r.Data) > MaxPayload {
			return nil, overflow("length", uint64(len(r.Data)), MaxPayload)
		}
		payload = r.Data

	case Lock:
		payload = []byte{r.Value}

	case Wait:

	case Verify:
		if err := checkAddr("address", r.Start); err != nil {
			return nil, err
		}
		if err := checkAddr("end address", r.End); err != nil {
			return nil, err
		}
		addr = r.Start
		payload = appendAddress(nil, r.End, f)
		crcBytes := make([]byte, CRCSize)
		binary.BigEndian.PutUint16(crcBytes, r.CRC)
		payload = append(payload, crcBytes...)

	default:
		return nil, fmt.Errorf("record %d: unsupported record type %T", index, rec)
	}

	return buildFrame(rec.Type(), flags, addr, payload, f), nil
}

// buildFrame assembles a record and appends its checksum.
func buildFrame(recType, flags byte, addr uint32, payload []byte, f Format) []byte {
	frame := make([]byte, 0, f.MinFrameSize()+len(payload))

	// Start marker, type and flags
	frame = append(frame, StartMarker, recType, flags)

	// Payload length (big-endian)
	lenBytes := make([]byte, 2)
	binary.BigEndian.PutUint16(lenBytes, uint16(len(payload)))
	frame = append(frame, lenBytes...)

	frame = appendAddress(frame, addr, f)
	frame = append(frame, payload...)

	// Checksum covers everything before it
	frame = append(frame, CalculateChecksum(frame))

	return frame
}

// appendAddress appends addr big-endian in the width selected by f.
func appendAddress(b []byte, addr uint32, f Format) []byte {
	if f == Addr24 {
		return append(b, byte(addr>>16), byte(addr>>8), byte(addr))
	}
	return append(b, byte(addr>>8), byte(addr))
}
