// Package syl2381 drives an Auber SYL-2381 PID controller over Modbus RTU.
//
// Every accessor is one synchronous request/response transaction on the
// Transport. A Device is not safe for concurrent use and performs no retries;
// deadlines belong to the Transport.
package syl2381

import (
	"fmt"
	"math"
	"strconv"

	"github.com/tamzrod/syl2381/pkg/regfloat"
	"github.com/tamzrod/syl2381/pkg/rtu"
)

// Value is a decoded parameter reading.
type Value struct {
	Param Param
	Raw   float32 // wire float, or the coil byte for coil parameters
	Text  string
}

// Device is one controller on the bus.
type Device struct {
	codec *rtu.Codec
	t     Transport
}

// MaxUnitID is the highest addressable Modbus unit id.
const MaxUnitID = 247

// New binds a controller unit id to a transport. The Device owns t from here on.
// Unit ids above MaxUnitID are reserved by Modbus and rejected.
func New(unit byte, t Transport) (*Device, error) {
	if unit > MaxUnitID {
		return nil, fmt.Errorf("syl2381: unit id %d out of range 0-%d", unit, MaxUnitID)
	}
	return &Device{
		codec: rtu.New(unit),
		t:     t,
	}, nil
}

// Unit returns the addressed unit id.
func (d *Device) Unit() byte {
	return d.codec.Unit()
}

// Close releases the transport if it can be closed.
func (d *Device) Close() error {
	if c, ok := d.t.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// ---- generic access ----

// ReadValue reads p and decodes it according to its descriptor.
func (d *Device) ReadValue(p Param) (Value, error) {
	desc := p.Descriptor()
	if desc.Space == Coil {
		b, err := d.getCoils(p)
		if err != nil {
			return Value{}, err
		}
		if desc.Count == 1 {
			on := b&1 == 1
			return Value{Param: p, Raw: float32(b & 1), Text: strconv.FormatBool(on)}, nil
		}
		return Value{Param: p, Raw: float32(b), Text: Status(b).String()}, nil
	}

	v, err := d.getHolding(p)
	if err != nil {
		return Value{}, err
	}
	return decodeHolding(p, v)
}

// WriteValue validates v against the descriptor of p and writes it.
func (d *Device) WriteValue(p Param, v float32) error {
	return d.setHolding(p, v)
}

func decodeHolding(p Param, v float32) (Value, error) {
	desc := p.Descriptor()
	val := Value{Param: p, Raw: v}

	switch desc.Format {
	case FormatEnum:
		n, err := decodeOrdinal(p, v)
		if err != nil {
			return Value{}, err
		}
		val.Text = desc.Names[n]
	case FormatBool:
		switch v {
		case 0:
			val.Text = "false"
		case 1:
			val.Text = "true"
		default:
			return Value{}, valueErr("decode", p, "%g is not 0 or 1", v)
		}
	case FormatBoundedInt:
		if math.IsNaN(float64(v)) || v < desc.Min || v > desc.Max || v != float32(math.Trunc(float64(v))) {
			return Value{}, valueErr("decode", p, "%g is not an integer in [%g, %g]", v, desc.Min, desc.Max)
		}
		val.Text = strconv.Itoa(int(v))
	default:
		val.Text = strconv.FormatFloat(float64(v), 'g', -1, 32)
	}
	return val, nil
}

// ---- transactions ----

func (d *Device) getHolding(p Param) (float32, error) {
	const op = "get"
	desc := p.Descriptor()

	req, err := d.codec.ReadHoldingRegisters(desc.Addr, regfloat.Words)
	if err != nil {
		return 0, protocolErr(op, p, err)
	}
	frame, err := d.exchange(op, p, req, nil)
	if err != nil {
		return 0, err
	}
	words, err := d.codec.Registers(req, frame)
	if err != nil {
		return 0, protocolErr(op, p, err)
	}
	v, err := regfloat.DecodeWords(words)
	if err != nil {
		return 0, protocolErr(op, p, err)
	}
	return v, nil
}

func (d *Device) setHolding(p Param, v float32) error {
	const op = "set"
	if err := checkWrite(p, v); err != nil {
		return err
	}
	desc := p.Descriptor()

	req, err := d.codec.WriteMultipleRegisters(desc.Addr, regfloat.EncodeWords(v))
	if err != nil {
		return protocolErr(op, p, err)
	}
	frame, err := d.exchange(op, p, req, nil)
	if err != nil {
		return err
	}
	if err := d.codec.Ack(req, frame); err != nil {
		return protocolErr(op, p, err)
	}
	return nil
}

// getCoils returns the single packed byte of a coil block of at most 8 flags.
func (d *Device) getCoils(p Param) (byte, error) {
	const op = "coils"
	desc := p.Descriptor()
	if desc.Count < 1 || desc.Count > 8 {
		return 0, protocolErr(op, p, fmt.Errorf("coil count %d does not fit one byte", desc.Count))
	}

	req, err := d.codec.ReadCoils(desc.Addr, desc.Count)
	if err != nil {
		return 0, protocolErr(op, p, err)
	}
	frame, err := d.exchange(op, p, req, func(prefix []byte) error {
		if !rtu.IsException(prefix) && prefix[2] != 1 {
			return fmt.Errorf("coil byte count %d, want 1", prefix[2])
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	data, err := d.codec.Coils(req, frame)
	if err != nil {
		return 0, protocolErr(op, p, err)
	}
	return data[0], nil
}

// exchange writes req and reads one response frame. The frame length is
// inferred from the first rtu.PrefixLen bytes; checkPrefix may reject the
// frame before the remainder is read.
func (d *Device) exchange(op string, p Param, req []byte, checkPrefix func([]byte) error) ([]byte, error) {
	for _, b := range req {
		if err := d.t.WriteByte(b); err != nil {
			return nil, transportErr(op, p, err)
		}
	}

	frame := make([]byte, rtu.PrefixLen, 2*len(req)+rtu.PrefixLen)
	if err := d.readFull(frame); err != nil {
		return nil, transportErr(op, p, err)
	}

	n, err := rtu.FrameLen(frame)
	if err != nil {
		return nil, protocolErr(op, p, err)
	}
	if checkPrefix != nil {
		if err := checkPrefix(frame); err != nil {
			return nil, protocolErr(op, p, err)
		}
	}

	frame = append(frame, make([]byte, n-rtu.PrefixLen)...)
	if err := d.readFull(frame[rtu.PrefixLen:]); err != nil {
		return nil, transportErr(op, p, err)
	}
	return frame, nil
}

func (d *Device) readFull(buf []byte) error {
	for i := range buf {
		b, err := d.t.ReadByte()
		if err != nil {
			return err
		}
		buf[i] = b
	}
	return nil
}
