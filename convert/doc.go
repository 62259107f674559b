// Package convert builds bootload record streams from Intel HEX images.
//
// # Overview
//
// A conversion runs in four steps:
//   - Parsing the Intel HEX input into a sparse memory image
//   - Dropping bytes outside the selected device memory map
//   - Building the ordered bootload records for the programmable windows
//   - Encoding the records into a single byte stream
//
// # Basic Usage
//
//	conv, err := convert.New(convert.WithMap("bb2"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	f, err := os.Open("firmware.hex")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	stream, err := conv.Convert(f)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Passing a nil reader converts "no input file": the result erases the
// programmable windows and writes nothing.
//
// # Record Order
//
// Records are always emitted in the order the bootloader expects:
// erase, write (with optional verify), identity, lock, wait.
//
// # Memory Maps
//
// Presets describe the flash windows of a device family:
//
//	bb2, ub1    0x0000-0x3DFF (512 byte pages), 0xF800-0xFBBF (64 byte pages)
//	bb50, bb51  0x0000-0x37FF (2048 byte pages)
//	bb52        0x0000-0x77FF (2048 byte pages)
//	sb2         0x0000-0xF7FF (1024 byte pages)
//
// Without a preset the whole [start, top] range is one window with
// DefaultPageSize pages.
//
// # Error Handling
//
// The package provides structured error types:
//   - UnsupportedMapError: unknown map preset name
//   - InvalidRangeError: start address above top address
//   - ihex.MalformedRecordError: invalid hex input, wrapped by Convert
//   - bootrec.EncodingOverflowError: record not representable, wrapped by Convert
package convert
