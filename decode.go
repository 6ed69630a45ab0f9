package qoi

import "fmt"

// Decode reads a complete QOI stream from src: the header, the tagged
// opcode stream, and the trailing end marker. It returns an Image whose
// pixel buffer has exactly header.Width*header.Height pixels.
func Decode(src Source) (*Image, error) {
	header, err := readHeader(src)
	if err != nil {
		return nil, err
	}

	pixels := make([]Pixel, header.PixelCount())
	if err := decodePixels(src, header, pixels); err != nil {
		return nil, err
	}
	if err := readEndMarker(src); err != nil {
		return nil, err
	}

	return &Image{Header: header, Pix: pixels}, nil
}

// decodePixels runs the tag loop until pixels is fully populated. The
// strict dispatch order below — 8-bit tags, then 2-bit tags — is
// conformance-critical: QOI_OP_RGB/RGBA's byte values have their upper two
// bits set, which also matches the RUN tag.
func decodePixels(src Source, header Header, pixels []Pixel) error {
	state := newPixelState()
	want := len(pixels)
	produced := 0

	for produced < want {
		tag, err := src.PeekByte()
		if err != nil {
			return err
		}

		switch {
		case tag == opRGBA:
			buf, err := src.ReadExact(5)
			if err != nil {
				return err
			}
			cur := Pixel{R: buf[1], G: buf[2], B: buf[3], A: buf[4]}
			pixels[produced] = cur
			state.observe(cur)
			produced++

		case tag == opRGB:
			buf, err := src.ReadExact(4)
			if err != nil {
				return err
			}
			cur := Pixel{R: buf[1], G: buf[2], B: buf[3], A: state.prev.A}
			pixels[produced] = cur
			state.observe(cur)
			produced++

		case tag&tagMask == opIndex:
			buf, err := src.ReadExact(1)
			if err != nil {
				return err
			}
			cur := state.table[buf[0]&sixBits]
			pixels[produced] = cur
			state.observe(cur)
			produced++

		case tag&tagMask == opDiff:
			buf, err := src.ReadExact(1)
			if err != nil {
				return err
			}
			t := buf[0]
			cur := Pixel{
				R: state.prev.R + ((t>>4)&twoBits) - 2,
				G: state.prev.G + ((t>>2)&twoBits) - 2,
				B: state.prev.B + (t&twoBits) - 2,
				A: state.prev.A,
			}
			pixels[produced] = cur
			state.observe(cur)
			produced++

		case tag&tagMask == opLuma:
			buf, err := src.ReadExact(2)
			if err != nil {
				return err
			}
			dg := int8(buf[0]&sixBits) - 32
			t2 := buf[1]
			dr := int8((t2>>4)&0x0F) - 8 + dg
			db := int8(t2&0x0F) - 8 + dg
			cur := Pixel{
				R: uint8(int8(state.prev.R) + dr),
				G: uint8(int8(state.prev.G) + dg),
				B: uint8(int8(state.prev.B) + db),
				A: state.prev.A,
			}
			pixels[produced] = cur
			state.observe(cur)
			produced++

		case tag&tagMask == opRun:
			buf, err := src.ReadExact(1)
			if err != nil {
				return err
			}
			runLen := int(buf[0]&sixBits) + 1
			if produced+runLen > want {
				return fmt.Errorf("produced=%d run=%d want=%d: %w", produced, runLen, want, ErrOverflow)
			}
			for i := 0; i < runLen; i++ {
				pixels[produced] = state.prev
				produced++
			}
			// A run only replays prev; it never updates prev or the table.

		default:
			// Unreachable: tagMask's four 2-bit cases plus the two 8-bit
			// cases exhaust every possible byte value.
			return fmt.Errorf("unrecognized tag 0x%02x: %w", tag, ErrTruncated)
		}
	}

	return nil
}

// readEndMarker consumes the trailing 8 bytes and validates them against
// the fixed end-of-stream sequence.
func readEndMarker(src Source) error {
	buf, err := src.ReadExact(len(endMarker))
	if err != nil {
		return err
	}
	for i, b := range endMarker {
		if buf[i] != b {
			return fmt.Errorf("got % x: %w", buf, ErrBadEndMarker)
		}
	}
	return nil
}
