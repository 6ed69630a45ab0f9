package qoi

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Source is the byte-source contract of §6: deterministic, positional
// reads, plus a one-byte lookahead the decoder uses for opcode dispatch
// without consuming the tag twice.
type Source interface {
	ReadExact(n int) ([]byte, error)
	PeekByte() (byte, error)
}

// Sink is the byte-sink contract of §6: contiguous, ordered, all-or-nothing
// writes.
type Sink interface {
	WriteAll(p []byte) error
}

// readerSource adapts an io.Reader to Source, buffering internally so
// PeekByte doesn't consume the byte ReadExact(1) would otherwise read.
type readerSource struct {
	r *bufio.Reader
}

// NewSource wraps r as a Source. If r is already a *bufio.Reader it is used
// directly; otherwise it is wrapped in one.
func NewSource(r io.Reader) Source {
	if br, ok := r.(*bufio.Reader); ok {
		return &readerSource{r: br}
	}
	return &readerSource{r: bufio.NewReader(r)}
}

func (s *readerSource) ReadExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.r, buf); err != nil {
		return nil, fmt.Errorf("read %d bytes: %w: %v", n, ErrTruncated, err)
	}
	return buf, nil
}

func (s *readerSource) PeekByte() (byte, error) {
	buf, err := s.r.Peek(1)
	if err != nil {
		return 0, fmt.Errorf("peek byte: %w: %v", ErrTruncated, err)
	}
	return buf[0], nil
}

// writerSink adapts an io.Writer to Sink.
type writerSink struct {
	w io.Writer
}

// NewSink wraps w as a Sink.
func NewSink(w io.Writer) Sink {
	return &writerSink{w: w}
}

func (s *writerSink) WriteAll(p []byte) error {
	n, err := s.w.Write(p)
	if err != nil {
		return fmt.Errorf("write %d bytes: %w: %v", len(p), ErrWriteFailed, err)
	}
	if n != len(p) {
		return fmt.Errorf("wrote %d of %d bytes: %w", n, len(p), ErrWriteFailed)
	}
	return nil
}

func putUint32(b []byte, v uint32) {
	binary.BigEndian.PutUint32(b, v)
}

func getUint32(b []byte) uint32 {
	return binary.BigEndian.Uint32(b)
}
