// Package ihex parses Intel HEX firmware files into a sparse memory image.
//
// # Intel HEX Format
//
// Every record is a single text line starting with ':' followed by
// hex-encoded fields:
//
//	:[ByteCount(2)][Offset(4)][Type(2)][Data(2*ByteCount)][Checksum(2)]
//
// Example line:
//
//	:10001000FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF0
//	  10 = 16 data bytes
//	  0010 = offset 0x0010 (big-endian)
//	  00 = data record
//	  FF... = data
//	  F0 = checksum (2's complement of the sum of all preceding bytes)
//
// Supported record types:
//
//	00 Data
//	01 End Of File
//	02 Extended Segment Address (base = value * 16)
//	03 Start Segment Address (ignored)
//	04 Extended Linear Address (base = value << 16)
//	05 Start Linear Address (ignored)
//
// # Usage
//
// Parse a file from disk:
//
//	img, err := ihex.Parse("firmware.hex")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, run := range img.Runs(0, 0xFFFF) {
//	    fmt.Printf("0x%04X: %d bytes\n", run.Address, len(run.Data))
//	}
//
// Parse from an io.Reader, rejecting files without an End Of File record:
//
//	img, err := ihex.ParseReader(r, ihex.RequireEOF())
//
// A nil reader yields an empty image.
//
// # Error Handling
//
// Every rejected line is reported as a *MalformedRecordError carrying the
// 1-based line number:
//
//	var mre *ihex.MalformedRecordError
//	if errors.As(err, &mre) {
//	    fmt.Println("bad line", mre.Line)
//	}
package ihex
