package qoi

import "fmt"

// Encode writes header followed by the pixel stream and the end marker to
// sink. len(pixels) must equal header.PixelCount().
func Encode(sink Sink, header Header, pixels []Pixel) error {
	if err := header.validate(); err != nil {
		return err
	}
	if len(pixels) != header.PixelCount() {
		return fmt.Errorf("got %d pixels, want %d: %w", len(pixels), header.PixelCount(), ErrPreconditionViolated)
	}

	if err := writeHeader(sink, header); err != nil {
		return err
	}
	if err := encodePixels(sink, pixels); err != nil {
		return err
	}
	return writeEndMarker(sink)
}

// encodePixels runs the per-pixel opcode selector. RUN is checked first and
// is orthogonal to the rest: a pixel equal to prev always extends a run and
// can never be encoded as INDEX, which keeps decode's "run doesn't touch
// the table" rule round-trip safe.
func encodePixels(sink Sink, pixels []Pixel) error {
	state := newPixelState()
	runLen := 0

	flushRun := func() error {
		if runLen == 0 {
			return nil
		}
		err := sink.WriteAll([]byte{opRun | byte(runLen-1)})
		runLen = 0
		return err
	}

	for _, cur := range pixels {
		if cur == state.prev {
			runLen++
			if runLen == maxRunLength {
				if err := flushRun(); err != nil {
					return err
				}
			}
			continue
		}

		if err := flushRun(); err != nil {
			return err
		}

		if err := encodePixel(sink, &state, cur); err != nil {
			return err
		}
	}

	return flushRun()
}

// encodePixel selects and emits the shortest valid opcode for cur under
// the fixed priority: INDEX, then (same-alpha) DIFF, LUMA, RGB, else RGBA.
func encodePixel(sink Sink, state *pixelState, cur Pixel) error {
	idx := hash(cur)
	if state.table[idx] == cur {
		state.observe(cur)
		return sink.WriteAll([]byte{opIndex | idx})
	}

	prev := state.prev
	if cur.A == prev.A {
		dr := int8(cur.R - prev.R)
		dg := int8(cur.G - prev.G)
		db := int8(cur.B - prev.B)

		if inRange(dr, -2, 1) && inRange(dg, -2, 1) && inRange(db, -2, 1) {
			state.observe(cur)
			tag := opDiff | byte(dr+2)<<4 | byte(dg+2)<<2 | byte(db+2)
			return sink.WriteAll([]byte{tag})
		}

		drdg := dr - dg
		dbdg := db - dg
		if inRange(dg, -32, 31) && inRange(drdg, -8, 7) && inRange(dbdg, -8, 7) {
			state.observe(cur)
			b0 := opLuma | byte(dg+32)
			b1 := byte(drdg+8)<<4 | byte(dbdg+8)
			return sink.WriteAll([]byte{b0, b1})
		}

		state.observe(cur)
		return sink.WriteAll([]byte{opRGB, cur.R, cur.G, cur.B})
	}

	state.observe(cur)
	return sink.WriteAll([]byte{opRGBA, cur.R, cur.G, cur.B, cur.A})
}

func inRange(v int8, lo, hi int8) bool {
	return v >= lo && v <= hi
}

// writeEndMarker emits the fixed 8-byte terminator.
func writeEndMarker(sink Sink) error {
	return sink.WriteAll(endMarker[:])
}
