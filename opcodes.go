package qoi

// The six QOI opcodes. Two are exact 8-bit tags; four are a 2-bit tag plus
// a 6-bit payload. The 8-bit tags must be tested before the 2-bit ones:
// 0b11111110 and 0b11111111 both have their upper two bits set, which is
// also the RUN tag pattern.
const (
	opRGB   byte = 0b1111_1110
	opRGBA  byte = 0b1111_1111
	opIndex byte = 0b0000_0000
	opDiff  byte = 0b0100_0000
	opLuma  byte = 0b1000_0000
	opRun   byte = 0b1100_0000

	tagMask byte = 0b1100_0000
	sixBits byte = 0b0011_1111
	twoBits byte = 0b0000_0011

	// maxRunLength is the longest run a single RUN opcode can encode.
	// 62 and 63 are reserved: their tag byte values (0xFE, 0xFF) collide
	// with opRGB/opRGBA.
	maxRunLength = 62
)

// endMarker is the fixed 8-byte sequence that terminates every QOI stream.
var endMarker = [8]byte{0, 0, 0, 0, 0, 0, 0, 1}
