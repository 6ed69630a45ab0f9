package qoi

import (
	"bufio"
	"image"
	"image/color"
	"io"
)

// Image owns a Header and the row-major pixel sequence it describes. It
// implements image.Image so it interoperates with the rest of the stdlib
// image ecosystem (image.Decode, image/draw, etc).
type Image struct {
	Header Header
	Pix    []Pixel
}

func (img *Image) ColorModel() color.Model {
	return color.NRGBAModel
}

func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(img.Header.Width), int(img.Header.Height))
}

func (img *Image) At(x, y int) color.Color {
	p := img.Pix[y*int(img.Header.Width)+x]
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A}
}

// FromImage converts any image.Image into a QOI Image with sRGB header
// metadata; the advisory channel count is 3 when isOpaqueImage reports the
// source opaque and 4 otherwise. Every source, NRGBA included, is read
// through image.Image.At via the NRGBA color model, which is correct but not
// the fastest path.
func FromImage(m image.Image) *Image {
	bounds := m.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pix := make([]Pixel, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(m.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			pix[y*width+x] = Pixel{R: c.R, G: c.G, B: c.B, A: c.A}
		}
	}
	channels := ChannelsRGBA
	if isOpaqueImage(m) {
		channels = ChannelsRGB
	}
	return &Image{
		Header: Header{
			Width:      uint32(width),
			Height:     uint32(height),
			Channels:   channels,
			Colorspace: ColorspaceSRGB,
		},
		Pix: pix,
	}
}

// decodeImage adapts Decode to the image.RegisterFormat signature.
func decodeImage(r io.Reader) (image.Image, error) {
	return Decode(NewSource(r))
}

// decodeConfig reads just enough of the stream to report image.Config
// without decoding the pixel body.
func decodeConfig(r io.Reader) (image.Config, error) {
	h, err := readHeader(NewSource(bufio.NewReader(r)))
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      int(h.Width),
		Height:     int(h.Height),
	}, nil
}

// encodeImage adapts Encode + FromImage to the io.Writer-based signature
// conventionally paired with image.RegisterFormat (png.Encode, jpeg.Encode).
func encodeImage(w io.Writer, m image.Image) error {
	img := FromImage(m)
	return Encode(NewSink(w), img.Header, img.Pix)
}

func init() {
	image.RegisterFormat("qoi", magic, decodeImage, decodeConfig)
}
