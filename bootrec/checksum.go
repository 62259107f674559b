package bootrec

// CRC-16/XMODEM parameters.
const (
	// CRC16Polynomial is the CRC-16-CCITT polynomial (0x1021)
	CRC16Polynomial = 0x1021

	// CRC16HighBitMask is the high bit mask for CRC-16 calculations
	CRC16HighBitMask = 0x8000

	// BitsPerByte is the number of bits per byte
	BitsPerByte = 8
)

// CalculateChecksum computes the record checksum: the 2's complement of the
// 8-bit sum of data. Appending it makes the record bytes sum to zero.
func CalculateChecksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	// Return 2's complement: invert and add 1
	return ^sum + 1
}

// CRC16 continues a CRC-16/XMODEM computation over data starting from crc.
// Pass 0 to start a new computation.
//
// CRC-16/XMODEM parameters:
//   - Polynomial: CRC16Polynomial
//   - Initial value: 0x0000
//   - No reflection, no final XOR
func CRC16(data []byte, crc uint16) uint16 {
	for _, b := range data {
		crc ^= uint16(b) << BitsPerByte
		for i := 0; i < BitsPerByte; i++ {
			if crc&CRC16HighBitMask != 0 {
				crc = (crc << 1) ^ CRC16Polynomial
			} else {
				crc = crc << 1
			}
		}
	}
	return crc
}
