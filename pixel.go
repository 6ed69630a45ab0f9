package qoi

// Pixel holds four 8-bit channels in fixed order. Channel arithmetic wraps
// modulo 256; Go's unsigned overflow already gives that for free.
type Pixel struct {
	R, G, B, A uint8
}

// startPixel is the previous-pixel register's initial value.
var startPixel = Pixel{R: 0, G: 0, B: 0, A: 255}

// hash returns the pixel's slot in the 64-entry seen-color table.
func hash(p Pixel) uint8 {
	return (p.R*3 + p.G*5 + p.B*7 + p.A*11) % 64
}

// pixelState is the mutable state shared by the encoder and decoder: the
// previously emitted/decoded pixel and the direct-mapped color cache. The
// zero value is not valid; use newPixelState.
type pixelState struct {
	prev  Pixel
	table [64]Pixel
}

func newPixelState() pixelState {
	return pixelState{prev: startPixel}
}

// observe records cur as the most recently produced non-run pixel: it
// updates both the cache slot and the previous-pixel register. Run pixels
// must not call this — a run only replays prev and never touches the table.
func (s *pixelState) observe(cur Pixel) {
	s.table[hash(cur)] = cur
	s.prev = cur
}
