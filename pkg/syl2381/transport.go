package syl2381

import (
	"io"
)

// Transport is the byte channel a Device talks through. Both calls block
// until one byte has moved or the channel fails; waiting on a would-block
// condition is the implementation's job.
type Transport interface {
	io.ByteReader
	io.ByteWriter
}

// StreamTransport adapts an io.ReadWriter, such as an open serial port, to
// Transport. Zero-byte transfers without an error are retried.
type StreamTransport struct {
	rw  io.ReadWriter
	buf [1]byte
}

// NewStreamTransport wraps rw.
func NewStreamTransport(rw io.ReadWriter) *StreamTransport {
	return &StreamTransport{rw: rw}
}

// ReadByte reads one byte from the stream.
func (t *StreamTransport) ReadByte() (byte, error) {
	for {
		n, err := t.rw.Read(t.buf[:])
		if n == 1 {
			return t.buf[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}

// WriteByte writes one byte to the stream.
func (t *StreamTransport) WriteByte(b byte) error {
	t.buf[0] = b
	for {
		n, err := t.rw.Write(t.buf[:])
		if n == 1 {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Close closes the wrapped stream if it is an io.Closer.
func (t *StreamTransport) Close() error {
	if c, ok := t.rw.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

//go:generate mockgen -destination=../../internal/mocks/mock_transport.go -package=mocks github.com/tamzrod/syl2381/pkg/syl2381 Transport
