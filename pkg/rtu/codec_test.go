package rtu

import (
	"errors"
	"testing"

	"github.com/goburrow/modbus"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

// frame packs a response ADU for unit with a valid CRC.
func frame(t *testing.T, unit, fc byte, data ...byte) []byte {
	t.Helper()
	h := modbus.NewRTUClientHandler("")
	h.SlaveId = unit
	adu, err := h.Encode(&modbus.ProtocolDataUnit{FunctionCode: fc, Data: data})
	assert.NilError(t, err)
	return adu
}

func TestReadHoldingRegisters_KnownFrame(t *testing.T) {
	req, err := New(5).ReadHoldingRegisters(0x0164, 2)
	assert.NilError(t, err)
	assert.DeepEqual(t, req, []byte{0x05, 0x03, 0x01, 0x64, 0x00, 0x02, 0x85, 0xAC})
}

func TestWriteMultipleRegisters_KnownFrame(t *testing.T) {
	req, err := New(5).WriteMultipleRegisters(0x1000, []uint16{0x4248, 0x0000})
	assert.NilError(t, err)
	assert.DeepEqual(t, req, []byte{
		0x05, 0x10, 0x10, 0x00, 0x00, 0x02, 0x04, 0x42, 0x48, 0x00, 0x00, 0xBF, 0x31,
	})
}

func TestReadCoils_KnownFrame(t *testing.T) {
	req, err := New(5).ReadCoils(0x0000, 8)
	assert.NilError(t, err)
	assert.DeepEqual(t, req, []byte{0x05, 0x01, 0x00, 0x00, 0x00, 0x08, 0x3C, 0x48})
}

func TestRequestQuantityLimits(t *testing.T) {
	c := New(1)

	_, err := c.ReadHoldingRegisters(0, 0)
	assert.ErrorContains(t, err, "out of range")
	_, err = c.ReadHoldingRegisters(0, 126)
	assert.ErrorContains(t, err, "out of range")
	_, err = c.WriteMultipleRegisters(0, nil)
	assert.ErrorContains(t, err, "out of range")
	_, err = c.ReadCoils(0, 2001)
	assert.ErrorContains(t, err, "out of range")
}

func TestFrameLen(t *testing.T) {
	cases := []struct {
		name   string
		prefix []byte
		want   int
	}{
		{"read holdings", []byte{5, 0x03, 4}, 9},
		{"read coils", []byte{5, 0x01, 1}, 6},
		{"read inputs", []byte{5, 0x04, 10}, 15},
		{"write multiple echo", []byte{5, 0x10, 0x10}, 8},
		{"write single echo", []byte{5, 0x06, 0x00}, 8},
		{"exception", []byte{5, 0x83, 0x02}, 5},
	}

	for _, tc := range cases {
		got, err := FrameLen(tc.prefix)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got=%d want=%d", tc.name, got, tc.want)
		}
	}
}

func TestFrameLen_Rejects(t *testing.T) {
	_, err := FrameLen([]byte{5, 0x03})
	assert.ErrorContains(t, err, "prefix needs 3 bytes")

	_, err = FrameLen([]byte{5, 0x2B, 0})
	assert.ErrorContains(t, err, "cannot infer frame length")
}

func TestRegisters_Valid(t *testing.T) {
	c := New(5)
	req, err := c.ReadHoldingRegisters(0x0164, 2)
	assert.NilError(t, err)

	resp := []byte{0x05, 0x03, 0x04, 0x41, 0xBC, 0x00, 0x00, 0x6A, 0x2B}
	words, err := c.Registers(req, resp)
	assert.NilError(t, err)
	assert.DeepEqual(t, words, []uint16{0x41BC, 0x0000})
}

func TestRegisters_BadCRC(t *testing.T) {
	c := New(5)
	req, _ := c.ReadHoldingRegisters(0x0164, 2)

	resp := []byte{0x05, 0x03, 0x04, 0x41, 0xBC, 0x00, 0x00, 0x6A, 0x2C}
	_, err := c.Registers(req, resp)
	assert.ErrorContains(t, err, "crc")
}

func TestRegisters_UnitMismatch(t *testing.T) {
	c := New(5)
	req, _ := c.ReadHoldingRegisters(0x0164, 2)

	resp := []byte{0x06, 0x03, 0x04, 0x41, 0xBC, 0x00, 0x00, 0x59, 0x2B}
	_, err := c.Registers(req, resp)
	assert.ErrorContains(t, err, "slave id")
}

func TestRegisters_FunctionMismatch(t *testing.T) {
	c := New(5)
	req, _ := c.ReadHoldingRegisters(0x0164, 2)

	_, err := c.Registers(req, frame(t, 5, 0x04, 4, 0x41, 0xBC, 0, 0))
	assert.ErrorContains(t, err, "function code 0x04")
}

func TestRegisters_WrongQuantity(t *testing.T) {
	c := New(5)
	req, _ := c.ReadHoldingRegisters(0x0164, 2)

	_, err := c.Registers(req, frame(t, 5, 0x03, 2, 0x41, 0xBC))
	assert.ErrorContains(t, err, "does not match requested")
}

func TestRegisters_ByteCountLies(t *testing.T) {
	c := New(5)
	req, _ := c.ReadHoldingRegisters(0x0164, 2)

	_, err := c.Registers(req, frame(t, 5, 0x03, 6, 0x41, 0xBC, 0, 0))
	assert.ErrorContains(t, err, "payload length")
}

func TestRegisters_Exception(t *testing.T) {
	c := New(5)
	req, _ := c.ReadHoldingRegisters(0x0164, 2)

	_, err := c.Registers(req, []byte{0x05, 0x83, 0x02, 0x81, 0x30})

	var mbErr *modbus.ModbusError
	assert.Assert(t, errors.As(err, &mbErr))
	assert.Equal(t, mbErr.ExceptionCode, byte(2))
	assert.Equal(t, mbErr.FunctionCode, byte(0x83))
}

func TestCoils_Valid(t *testing.T) {
	c := New(5)
	req, _ := c.ReadCoils(0x0000, 8)

	data, err := c.Coils(req, []byte{0x05, 0x01, 0x01, 0x25, 0x91, 0x63})
	assert.NilError(t, err)
	assert.DeepEqual(t, data, []byte{0x25})
}

func TestCoils_ExtraBytes(t *testing.T) {
	c := New(5)
	req, _ := c.ReadCoils(0x0000, 8)

	_, err := c.Coils(req, []byte{0x05, 0x01, 0x02, 0x25, 0x00, 0x52, 0xAC})
	assert.ErrorContains(t, err, "coil byte count 2")
}

func TestAck(t *testing.T) {
	c := New(5)
	req, _ := c.WriteMultipleRegisters(0x1000, []uint16{0x4248, 0})

	assert.NilError(t, c.Ack(req, []byte{0x05, 0x10, 0x10, 0x00, 0x00, 0x02, 0x44, 0x8C}))

	err := c.Ack(req, frame(t, 5, 0x10, 0x10, 0x0A, 0x00, 0x02))
	assert.Assert(t, is.ErrorContains(err, "does not match request"))

	err = c.Ack(req, frame(t, 5, 0x10, 0x10, 0x00))
	assert.Assert(t, is.ErrorContains(err, "carries 2 bytes"))
}

func TestIsException(t *testing.T) {
	assert.Assert(t, IsException([]byte{5, 0x81, 1}))
	assert.Assert(t, !IsException([]byte{5, 0x01, 1}))
}
