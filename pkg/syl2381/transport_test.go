package syl2381

import (
	"bytes"
	"errors"
	"testing"

	"gotest.tools/v3/assert"
)

// stutter returns zero bytes without error on every other call.
type stutter struct {
	in    *bytes.Reader
	out   bytes.Buffer
	skip  bool
	calls int
}

func (s *stutter) Read(p []byte) (int, error) {
	s.calls++
	s.skip = !s.skip
	if s.skip {
		return 0, nil
	}
	return s.in.Read(p)
}

func (s *stutter) Write(p []byte) (int, error) {
	s.calls++
	s.skip = !s.skip
	if s.skip {
		return 0, nil
	}
	return s.out.Write(p)
}

func TestStreamTransport_RetriesWouldBlock(t *testing.T) {
	rw := &stutter{in: bytes.NewReader([]byte{0xAA, 0xBB})}
	tr := NewStreamTransport(rw)

	b, err := tr.ReadByte()
	assert.NilError(t, err)
	assert.Equal(t, b, byte(0xAA))

	assert.NilError(t, tr.WriteByte(0x01))
	assert.NilError(t, tr.WriteByte(0x02))
	assert.DeepEqual(t, rw.out.Bytes(), []byte{0x01, 0x02})
}

type failing struct{}

func (failing) Read([]byte) (int, error)  { return 0, errors.New("read failed") }
func (failing) Write([]byte) (int, error) { return 0, errors.New("write failed") }

func TestStreamTransport_Errors(t *testing.T) {
	tr := NewStreamTransport(failing{})

	_, err := tr.ReadByte()
	assert.ErrorContains(t, err, "read failed")
	assert.ErrorContains(t, tr.WriteByte(0), "write failed")
	assert.NilError(t, tr.Close())
}
