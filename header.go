package qoi

import "fmt"

// headerSize is the fixed, unpadded size of a QOI header in bytes.
const headerSize = 14

// magic is the four leading bytes every QOI stream must start with.
const magic = "qoif"

// Channels records a stream's advisory source channel count. It never
// changes codec behavior; the in-memory pixel buffer is always 4-channel.
type Channels uint8

const (
	ChannelsRGB  Channels = 3
	ChannelsRGBA Channels = 4
)

// Colorspace records advisory colorspace metadata. Like Channels, it is
// passthrough only: both values decode and encode identically.
type Colorspace uint8

const (
	ColorspaceSRGB   Colorspace = 0
	ColorspaceLinear Colorspace = 1
)

// Header is the fixed 14-byte preamble of a QOI stream.
type Header struct {
	Width      uint32
	Height     uint32
	Channels   Channels
	Colorspace Colorspace
}

// PixelCount returns Width*Height, the number of pixels the stream carries.
func (h Header) PixelCount() int {
	return int(h.Width) * int(h.Height)
}

func (h Header) validate() error {
	if h.Width == 0 || h.Height == 0 {
		return fmt.Errorf("width=%d height=%d: %w", h.Width, h.Height, ErrEmptyImage)
	}
	if h.Channels != ChannelsRGB && h.Channels != ChannelsRGBA {
		return fmt.Errorf("channels=%d: %w", h.Channels, ErrBadChannels)
	}
	if h.Colorspace != ColorspaceSRGB && h.Colorspace != ColorspaceLinear {
		return fmt.Errorf("colorspace=%d: %w", h.Colorspace, ErrBadColorspace)
	}
	return nil
}

// writeHeader emits the 14-byte header: magic, big-endian width and
// height, then the channels and colorspace bytes.
func writeHeader(sink Sink, h Header) error {
	buf := make([]byte, headerSize)
	copy(buf[0:4], magic)
	putUint32(buf[4:8], h.Width)
	putUint32(buf[8:12], h.Height)
	buf[12] = byte(h.Channels)
	buf[13] = byte(h.Colorspace)
	return sink.WriteAll(buf)
}

// readHeader decodes and validates the 14-byte header. Width/height of 0
// are rejected with ErrEmptyImage, although such a stream would otherwise
// carry no pixels and consist of the header plus the end marker.
func readHeader(src Source) (Header, error) {
	buf, err := src.ReadExact(headerSize)
	if err != nil {
		return Header{}, err
	}
	if string(buf[0:4]) != magic {
		return Header{}, fmt.Errorf("got %q: %w", buf[0:4], ErrBadMagic)
	}
	h := Header{
		Width:      getUint32(buf[4:8]),
		Height:     getUint32(buf[8:12]),
		Channels:   Channels(buf[12]),
		Colorspace: Colorspace(buf[13]),
	}
	if err := h.validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}
