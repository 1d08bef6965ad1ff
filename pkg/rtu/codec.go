// Package rtu builds and checks the Modbus RTU frames the SYL-2381 driver
// exchanges. CRC, slave-id echo and ADU packing are delegated to the RTU
// packager of github.com/goburrow/modbus; this package only adds the request
// layouts, response-length inference from a short prefix and payload checks.
package rtu

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/goburrow/modbus"
)

// RTU framing geometry.
const (
	// PrefixLen is the number of response bytes needed before the total
	// frame length is known: unit id, function code, byte count.
	PrefixLen = 3

	crcLen            = 2
	exceptionBit      = 0x80
	exceptionFrameLen = 5 // unit + fc + exception code + crc
	writeEchoFrameLen = 8 // unit + fc + address + quantity + crc

	maxReadRegisters  = 125
	maxWriteRegisters = 123
	maxReadCoils      = 2000
)

// Codec builds requests for one unit and validates the matching responses.
type Codec struct {
	unit     byte
	packager modbus.Packager
}

// New returns a codec addressing the given unit id.
func New(unit byte) *Codec {
	h := modbus.NewRTUClientHandler("")
	h.SlaveId = unit

	return &Codec{
		unit:     unit,
		packager: h,
	}
}

// Unit returns the unit id requests are addressed to.
func (c *Codec) Unit() byte {
	return c.unit
}

// ---- request builders ----

// ReadHoldingRegisters builds an FC3 request for qty registers at addr.
func (c *Codec) ReadHoldingRegisters(addr, qty uint16) ([]byte, error) {
	if qty < 1 || qty > maxReadRegisters {
		return nil, fmt.Errorf("rtu: read register quantity %d out of range 1-%d", qty, maxReadRegisters)
	}
	return c.encode(modbus.FuncCodeReadHoldingRegisters, dataBlock(addr, qty))
}

// WriteMultipleRegisters builds an FC16 request carrying words at addr.
func (c *Codec) WriteMultipleRegisters(addr uint16, words []uint16) ([]byte, error) {
	qty := len(words)
	if qty < 1 || qty > maxWriteRegisters {
		return nil, fmt.Errorf("rtu: write register quantity %d out of range 1-%d", qty, maxWriteRegisters)
	}

	data := dataBlock(addr, uint16(qty))
	data = append(data, byte(2*qty))
	data = append(data, packRegisters(words)...)

	return c.encode(modbus.FuncCodeWriteMultipleRegisters, data)
}

// ReadCoils builds an FC1 request for qty coils at addr.
func (c *Codec) ReadCoils(addr, qty uint16) ([]byte, error) {
	if qty < 1 || qty > maxReadCoils {
		return nil, fmt.Errorf("rtu: read coil quantity %d out of range 1-%d", qty, maxReadCoils)
	}
	return c.encode(modbus.FuncCodeReadCoils, dataBlock(addr, qty))
}

func (c *Codec) encode(fc byte, data []byte) ([]byte, error) {
	return c.packager.Encode(&modbus.ProtocolDataUnit{
		FunctionCode: fc,
		Data:         data,
	})
}

// ---- length inference ----

// FrameLen infers the total response frame length from its first PrefixLen
// bytes.
func FrameLen(prefix []byte) (int, error) {
	if len(prefix) < PrefixLen {
		return 0, fmt.Errorf("rtu: prefix needs %d bytes, got %d", PrefixLen, len(prefix))
	}

	fc := prefix[1]
	if fc&exceptionBit != 0 {
		return exceptionFrameLen, nil
	}

	switch fc {
	case modbus.FuncCodeReadCoils,
		modbus.FuncCodeReadDiscreteInputs,
		modbus.FuncCodeReadHoldingRegisters,
		modbus.FuncCodeReadInputRegisters:
		return PrefixLen + int(prefix[2]) + crcLen, nil

	case modbus.FuncCodeWriteSingleCoil,
		modbus.FuncCodeWriteSingleRegister,
		modbus.FuncCodeWriteMultipleCoils,
		modbus.FuncCodeWriteMultipleRegisters:
		return writeEchoFrameLen, nil
	}

	return 0, fmt.Errorf("rtu: cannot infer frame length for function code 0x%02X", fc)
}

// IsException reports whether a response prefix carries an exception.
func IsException(prefix []byte) bool {
	return len(prefix) >= 2 && prefix[1]&exceptionBit != 0
}

// ---- response parsing ----

// Registers validates an FC3 response to req and returns its words.
func (c *Codec) Registers(req, resp []byte) ([]uint16, error) {
	data, err := c.readPayload(req, resp)
	if err != nil {
		return nil, err
	}

	want := 2 * int(binary.BigEndian.Uint16(req[4:6]))
	if len(data) != want {
		return nil, fmt.Errorf("rtu: register byte count %d does not match requested %d", len(data), want)
	}

	return unpackRegisters(data), nil
}

// Coils validates an FC1 response to req and returns the packed coil bytes.
// Bit i of byte 0 is coil addr+i.
func (c *Codec) Coils(req, resp []byte) ([]byte, error) {
	data, err := c.readPayload(req, resp)
	if err != nil {
		return nil, err
	}

	qty := int(binary.BigEndian.Uint16(req[4:6]))
	if want := (qty + 7) / 8; len(data) != want {
		return nil, fmt.Errorf("rtu: coil byte count %d does not match requested %d", len(data), want)
	}

	return data, nil
}

// Ack validates the echo of a write-multiple request.
func (c *Codec) Ack(req, resp []byte) error {
	pdu, err := c.decode(req, resp)
	if err != nil {
		return err
	}

	if len(pdu.Data) != 4 {
		return fmt.Errorf("rtu: write echo carries %d bytes, want 4", len(pdu.Data))
	}
	if len(req) < 6 || string(pdu.Data) != string(req[2:6]) {
		return fmt.Errorf("rtu: write echo % X does not match request", pdu.Data)
	}

	return nil
}

// readPayload strips the byte-count field of a read response after checking
// it against the frame.
func (c *Codec) readPayload(req, resp []byte) ([]byte, error) {
	pdu, err := c.decode(req, resp)
	if err != nil {
		return nil, err
	}
	if len(req) < 6 {
		return nil, errors.New("rtu: short request")
	}
	if len(pdu.Data) < 1 {
		return nil, errors.New("rtu: response missing byte count")
	}

	byteCount := int(pdu.Data[0])
	if len(pdu.Data)-1 != byteCount {
		return nil, fmt.Errorf("rtu: byte count %d does not match payload length %d", byteCount, len(pdu.Data)-1)
	}

	return pdu.Data[1:], nil
}

// decode checks the trailing CRC, the unit id echo and the function code echo.
// Exception responses come back as *modbus.ModbusError.
func (c *Codec) decode(req, resp []byte) (*modbus.ProtocolDataUnit, error) {
	if len(req) < 2 {
		return nil, errors.New("rtu: short request")
	}
	if err := c.packager.Verify(req, resp); err != nil {
		return nil, err
	}

	pdu, err := c.packager.Decode(resp)
	if err != nil {
		return nil, err
	}

	if pdu.FunctionCode == req[1]|exceptionBit {
		if len(pdu.Data) < 1 {
			return nil, errors.New("rtu: exception response missing code")
		}
		return nil, &modbus.ModbusError{
			FunctionCode:  pdu.FunctionCode,
			ExceptionCode: pdu.Data[0],
		}
	}
	if pdu.FunctionCode != req[1] {
		return nil, fmt.Errorf("rtu: response function code 0x%02X does not match request 0x%02X", pdu.FunctionCode, req[1])
	}

	return pdu, nil
}

// ---- helpers (pure geometry) ----

func dataBlock(addr, qty uint16) []byte {
	out := make([]byte, 4, 4+1+2*maxWriteRegisters)
	binary.BigEndian.PutUint16(out[0:2], addr)
	binary.BigEndian.PutUint16(out[2:4], qty)
	return out
}

func packRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}

func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
