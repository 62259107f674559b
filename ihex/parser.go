package ihex

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record types per the Intel HEX-32 convention.
const (
	// RecordData carries data bytes at base + offset
	RecordData = 0x00

	// RecordEOF terminates the file
	RecordEOF = 0x01

	// RecordExtSegment sets the base address to value * 16
	RecordExtSegment = 0x02

	// RecordStartSegment carries the CS:IP start address
	RecordStartSegment = 0x03

	// RecordExtLinear sets the upper 16 bits of the base address
	RecordExtLinear = 0x04

	// RecordStartLinear carries the 32-bit start address
	RecordStartLinear = 0x05
)

// Constants for Intel HEX line parsing.
const (
	// StartCode is the first character of every record line
	StartCode = ':'

	// RecordHeaderSize is the size of byteCount(1) + offset(2) + type(1)
	RecordHeaderSize = 4

	// RecordChecksumSize is the size of the trailing checksum field
	RecordChecksumSize = 1

	// MinimumRecordBytes is the size of a record with no data
	MinimumRecordBytes = RecordHeaderSize + RecordChecksumSize

	// MinimumRecordLength is the minimum line length in characters, including ':'
	MinimumRecordLength = 1 + 2*MinimumRecordBytes
)

type parseConfig struct {
	requireEOF bool
}

// ParseOption configures ParseReader.
type ParseOption func(*parseConfig)

// RequireEOF makes input that ends without an End Of File record an error.
// By default a missing End Of File record is treated as implicit.
func RequireEOF() ParseOption {
	return func(c *parseConfig) {
		c.requireEOF = true
	}
}

// record is a single decoded Intel HEX line.
type record struct {
	Type   byte
	Offset uint16
	Data   []byte
}

// Parse parses an Intel HEX file from the given file path.
//
// Example:
//
//	img, err := ihex.Parse("firmware.hex")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d bytes\n", img.Len())
func Parse(path string, opts ...ParseOption) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseReader(f, opts...)
}

// ParseReader parses Intel HEX text from any io.Reader.
// A nil reader yields an empty image.
//
// Blank lines are skipped. Lines after the End Of File record are ignored.
func ParseReader(r io.Reader, opts ...ParseOption) (*Image, error) {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	img := NewImage()
	if r == nil {
		return img, nil
	}

	scanner := bufio.NewScanner(r)
	var base uint32
	lineNum := 0
	eof := false

	for !eof && scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}

		rec, err := parseRecord(line)
		if err != nil {
			err.Line = lineNum
			return nil, err
		}

		switch rec.Type {
		case RecordData:
			img.SetBytes(base+uint32(rec.Offset), rec.Data)
		case RecordEOF:
			eof = true
		case RecordExtSegment:
			if len(rec.Data) != 2 {
				return nil, &MalformedRecordError{
					Line:   lineNum,
					Reason: fmt.Sprintf("extended segment address needs 2 data bytes, got %d", len(rec.Data)),
				}
			}
			base = (uint32(rec.Data[0])<<8 | uint32(rec.Data[1])) << 4
		case RecordExtLinear:
			if len(rec.Data) != 2 {
				return nil, &MalformedRecordError{
					Line:   lineNum,
					Reason: fmt.Sprintf("extended linear address needs 2 data bytes, got %d", len(rec.Data)),
				}
			}
			base = (uint32(rec.Data[0])<<8 | uint32(rec.Data[1])) << 16
		case RecordStartSegment, RecordStartLinear:
			// start addresses do not contribute to the image
		default:
			return nil, &MalformedRecordError{
				Line:   lineNum,
				Reason: fmt.Sprintf("unsupported record type 0x%02X", rec.Type),
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if !eof && cfg.requireEOF {
		return nil, &MalformedRecordError{
			Line:   lineNum,
			Reason: "missing end of file record",
		}
	}

	return img, nil
}

// parseRecord decodes a single Intel HEX line. The returned error has no
// line number; the caller fills it in.
//
// Line format:
//
//	:[ByteCount(1)][Offset(2)][Type(1)][Data(N)][Checksum(1)]
func parseRecord(line string) (*record, *MalformedRecordError) {
	if line[0] != StartCode {
		return nil, &MalformedRecordError{Reason: "record must start with ':'"}
	}

	if len(line) < MinimumRecordLength {
		return nil, &MalformedRecordError{
			Reason: fmt.Sprintf("record too short: got %d characters, minimum is %d", len(line), MinimumRecordLength),
		}
	}

	data, err := hex.DecodeString(line[1:])
	if err != nil {
		return nil, &MalformedRecordError{Reason: "invalid hex data", Err: err}
	}

	byteCount := int(data[0])
	expectedLen := RecordHeaderSize + byteCount + RecordChecksumSize
	if len(data) != expectedLen {
		return nil, &MalformedRecordError{
			Reason: fmt.Sprintf("data length mismatch: got %d bytes, expected %d (header=%d + data=%d + checksum=%d)",
				len(data), expectedLen, RecordHeaderSize, byteCount, RecordChecksumSize),
		}
	}

	checksum := data[len(data)-1]
	calculated := calculateChecksum(data[:len(data)-1])
	if checksum != calculated {
		return nil, &MalformedRecordError{
			Reason: fmt.Sprintf("checksum mismatch: got 0x%02X, expected 0x%02X", checksum, calculated),
		}
	}

	rec := &record{
		Type:   data[3],
		Offset: uint16(data[1])<<8 | uint16(data[2]),
		Data:   make([]byte, byteCount),
	}
	copy(rec.Data, data[RecordHeaderSize:RecordHeaderSize+byteCount])

	return rec, nil
}

// calculateChecksum computes the Intel HEX record checksum.
// Uses basic summation with 2's complement.
func calculateChecksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return ^sum + 1 // 2's complement
}
