package qoi

import (
	"bytes"
	"errors"
	"testing"
)

func encodeBytes(t *testing.T, h Header, pixels []Pixel) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := Encode(NewSink(buf), h, pixels); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return buf.Bytes()
}

// S1: 1x1 black opaque image. prev starts at (0,0,0,255), which equals the
// only pixel, so encodePixels takes the RUN branch (run of length 1) before
// the INDEX check in encodePixel is ever reached.
func TestScenarioS1SingleBlackPixel(t *testing.T) {
	h := Header{Width: 1, Height: 1, Channels: ChannelsRGBA, Colorspace: ColorspaceSRGB}
	got := encodeBytes(t, h, []Pixel{{0, 0, 0, 255}})
	want := []byte{
		'q', 'o', 'i', 'f', 0, 0, 0, 1, 0, 0, 0, 1, 4, 0,
		0xC0,
		0, 0, 0, 0, 0, 0, 0, 1,
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x, want % x", got, want)
	}
}

// S2: two identical pixels collapse into a single RUN(2) opcode.
func TestScenarioS2RunOfTwo(t *testing.T) {
	h := Header{Width: 2, Height: 1, Channels: ChannelsRGBA, Colorspace: ColorspaceSRGB}
	got := encodeBytes(t, h, []Pixel{{0, 0, 0, 255}, {0, 0, 0, 255}})
	body := got[headerSize : len(got)-len(endMarker)]
	if !bytes.Equal(body, []byte{0xC1}) {
		t.Fatalf("body = % x, want [c1]", body)
	}
}

// S3: a red pixel with all deltas in DIFF range must encode as DIFF.
func TestScenarioS3DiffEncoding(t *testing.T) {
	h := Header{Width: 1, Height: 1, Channels: ChannelsRGBA, Colorspace: ColorspaceSRGB}
	got := encodeBytes(t, h, []Pixel{{255, 0, 0, 255}})
	body := got[headerSize : len(got)-len(endMarker)]
	if len(body) != 1 {
		t.Fatalf("body = % x, want exactly 1 byte (DIFF)", body)
	}
	if body[0]&tagMask != opDiff {
		t.Fatalf("body[0] = %08b, want tag bits %08b (opDiff)", body[0], opDiff)
	}
	// dr = 255-0 = -1 (mod 256), dg = 0, db = 0: bias +2 gives 1, 2, 2.
	want := opDiff | byte(1)<<4 | byte(2)<<2 | byte(2)
	if body[0] != want {
		t.Fatalf("body[0] = %#02x, want %#02x", body[0], want)
	}
}

// S4: a delta too large for DIFF or LUMA falls back to RGB, preceded by the
// RUN(1) that flushes the first (prev-matching) pixel.
func TestScenarioS4FallsBackToRGB(t *testing.T) {
	h := Header{Width: 2, Height: 1, Channels: ChannelsRGBA, Colorspace: ColorspaceSRGB}
	got := encodeBytes(t, h, []Pixel{{0, 0, 0, 255}, {10, 0, 0, 255}})
	body := got[headerSize : len(got)-len(endMarker)]
	want := []byte{0xC0, opRGB, 10, 0, 0}
	if !bytes.Equal(body, want) {
		t.Fatalf("body = % x, want % x", body, want)
	}
}

// S5: an alpha change forces RGBA regardless of how small the RGB delta is.
func TestScenarioS5AlphaChangeForcesRGBA(t *testing.T) {
	h := Header{Width: 2, Height: 1, Channels: ChannelsRGBA, Colorspace: ColorspaceSRGB}
	got := encodeBytes(t, h, []Pixel{{0, 0, 0, 255}, {0, 0, 0, 128}})
	body := got[headerSize : len(got)-len(endMarker)]
	want := []byte{0xC0, opRGBA, 0, 0, 0, 128}
	if !bytes.Equal(body, want) {
		t.Fatalf("body = % x, want % x", body, want)
	}
}

// S6: a pixel equal to one already cached re-encodes as a single INDEX
// byte once it is no longer the run-extending "prev" pixel.
func TestScenarioS6IndexReuse(t *testing.T) {
	a := Pixel{5, 0, 0, 255}
	b := Pixel{0, 0, 0, 255}
	h := Header{Width: 3, Height: 1, Channels: ChannelsRGBA, Colorspace: ColorspaceSRGB}
	got := encodeBytes(t, h, []Pixel{a, b, a})
	body := got[headerSize : len(got)-len(endMarker)]
	last := body[len(body)-1]
	if last&tagMask != opIndex {
		t.Fatalf("last opcode = %08b, want an INDEX opcode", last)
	}
	if last != hash(a) {
		t.Fatalf("last opcode payload = %d, want hash(a) = %d", last&sixBits, hash(a))
	}
}

// Property 5: a run of exactly 63 identical pixels must split into
// RUN(62) + RUN(1), never a single opcode with payload 62 or 63.
func TestRunSplitAt63(t *testing.T) {
	pixels := make([]Pixel, 63)
	for i := range pixels {
		pixels[i] = startPixel
	}
	h := Header{Width: 63, Height: 1, Channels: ChannelsRGBA, Colorspace: ColorspaceSRGB}
	got := encodeBytes(t, h, pixels)
	body := got[headerSize : len(got)-len(endMarker)]
	want := []byte{opRun | 61, opRun | 0}
	if !bytes.Equal(body, want) {
		t.Fatalf("body = % x, want % x", body, want)
	}
}

func TestEncodeRejectsPixelCountMismatch(t *testing.T) {
	h := Header{Width: 2, Height: 1, Channels: ChannelsRGBA, Colorspace: ColorspaceSRGB}
	err := Encode(NewSink(&bytes.Buffer{}), h, []Pixel{{0, 0, 0, 255}})
	if !errors.Is(err, ErrPreconditionViolated) {
		t.Fatalf("err = %v, want ErrPreconditionViolated", err)
	}
}

func TestEncodeOutputEndsWithEndMarker(t *testing.T) {
	h := Header{Width: 1, Height: 1, Channels: ChannelsRGBA, Colorspace: ColorspaceSRGB}
	got := encodeBytes(t, h, []Pixel{{1, 2, 3, 4}})
	tail := got[len(got)-len(endMarker):]
	if !bytes.Equal(tail, endMarker[:]) {
		t.Fatalf("tail = % x, want % x", tail, endMarker)
	}
}
