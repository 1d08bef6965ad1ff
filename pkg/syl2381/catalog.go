package syl2381

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Space is the Modbus address space a parameter lives in.
type Space uint8

const (
	Holding Space = iota
	Coil
)

func (s Space) String() string {
	if s == Coil {
		return "coil"
	}
	return "holding"
}

// Format describes how the wire value of a parameter is interpreted.
type Format uint8

const (
	FormatFloat        Format = iota // raw float, no domain
	FormatBoundedFloat               // float within [Min, Max]
	FormatBoundedInt                 // integral float within [Min, Max]
	FormatEnum                       // ordinal into Names
	FormatBool                       // 0 or 1
	FormatCoils                      // Count packed coil flags
)

// Descriptor is the static binding of a parameter to the register map.
type Descriptor struct {
	Mnemonic string
	Space    Space
	Addr     uint16
	Format   Format
	Min, Max float32
	Count    uint16 // coils read, FormatCoils only
	ReadOnly bool
	Dynamic  bool     // process state rather than configuration
	Names    []string // FormatEnum only, indexed by ordinal
}

// Param names one controller parameter.
type Param uint8

const (
	ProcessValue Param = iota
	OutputPercent
	Alarm1Output
	OutputControl
	StatusFlags
	Setpoint
	Alarm1On
	Alarm1Off
	Proportional
	Integral
	Derivative
	BandLimit
	Damping
	ControlCycle
	FilterStrength
	InputSensor
	OutputModeSel
	OutputHardware
	Hysteresis
	InputOffset
	Direction
	Unit
	DeviceID
	Baud

	paramCount
)

var catalog = [paramCount]Descriptor{
	ProcessValue:  {Mnemonic: "PV", Space: Holding, Addr: 0x0164, Format: FormatFloat, ReadOnly: true, Dynamic: true},
	OutputPercent: {Mnemonic: "OUT", Space: Holding, Addr: 0x0166, Format: FormatBoundedFloat, Min: 0, Max: 100, Dynamic: true},
	Alarm1Output:  {Mnemonic: "AL1_STA", Space: Coil, Addr: 0x0005, Format: FormatCoils, Count: 1, ReadOnly: true, Dynamic: true},
	OutputControl: {Mnemonic: "CV", Space: Holding, Addr: 0x016C, Format: FormatBool, Dynamic: true},
	StatusFlags:   {Mnemonic: "AT", Space: Coil, Addr: 0x0000, Format: FormatCoils, Count: 8, ReadOnly: true, Dynamic: true},

	Setpoint:       {Mnemonic: "SV", Space: Holding, Addr: 0x0000, Format: FormatBoundedFloat, Min: -1999, Max: 9999},
	Alarm1On:       {Mnemonic: "AH1", Space: Holding, Addr: 0x0002, Format: FormatBoundedFloat, Min: -1999, Max: 9999},
	Alarm1Off:      {Mnemonic: "AL1", Space: Holding, Addr: 0x0004, Format: FormatBoundedFloat, Min: -1999, Max: 9999},
	Proportional:   {Mnemonic: "P", Space: Holding, Addr: 0x1000, Format: FormatBoundedFloat, Min: 0.1, Max: 9999.9},
	Integral:       {Mnemonic: "I", Space: Holding, Addr: 0x1002, Format: FormatBoundedFloat, Min: 0, Max: 9999},
	Derivative:     {Mnemonic: "D", Space: Holding, Addr: 0x1004, Format: FormatBoundedFloat, Min: 0, Max: 999},
	BandLimit:      {Mnemonic: "BB", Space: Holding, Addr: 0x1006, Format: FormatBoundedFloat, Min: 1, Max: 1999},
	Damping:        {Mnemonic: "SOUF", Space: Holding, Addr: 0x1008, Format: FormatBoundedFloat, Min: 0, Max: 1},
	ControlCycle:   {Mnemonic: "OT", Space: Holding, Addr: 0x100A, Format: FormatBoundedFloat, Min: 1, Max: 500},
	FilterStrength: {Mnemonic: "FILT", Space: Holding, Addr: 0x100C, Format: FormatEnum, Names: filterNames},
	InputSensor:    {Mnemonic: "INTY", Space: Holding, Addr: 0x2000, Format: FormatEnum, Names: inputTypeNames},
	OutputModeSel:  {Mnemonic: "OUTY", Space: Holding, Addr: 0x2002, Format: FormatEnum, Names: outputModeNames},
	OutputHardware: {Mnemonic: "COTY", Space: Holding, Addr: 0x2004, Format: FormatEnum, Names: outputTypeNames},
	Hysteresis:     {Mnemonic: "HY", Space: Holding, Addr: 0x2006, Format: FormatBoundedFloat, Min: 0, Max: 9999},
	InputOffset:    {Mnemonic: "PSB", Space: Holding, Addr: 0x2008, Format: FormatBoundedFloat, Min: -1000, Max: 1000},
	Direction:      {Mnemonic: "RD", Space: Holding, Addr: 0x200A, Format: FormatEnum, Names: directionNames},
	Unit:           {Mnemonic: "CORF", Space: Holding, Addr: 0x200C, Format: FormatEnum, Names: displayUnitNames},
	DeviceID:       {Mnemonic: "ID", Space: Holding, Addr: 0x200E, Format: FormatBoundedInt, Min: 0, Max: 64},
	Baud:           {Mnemonic: "BAUD", Space: Holding, Addr: 0x2010, Format: FormatEnum, Names: baudRateNames},
}

// Descriptor returns the static register binding of p.
func (p Param) Descriptor() Descriptor {
	if p >= paramCount {
		return Descriptor{}
	}
	return catalog[p]
}

// String returns the front-panel mnemonic.
func (p Param) String() string {
	if p >= paramCount {
		return fmt.Sprintf("param(%d)", uint8(p))
	}
	return catalog[p].Mnemonic
}

// Params returns every parameter in register map order.
func Params() []Param {
	out := make([]Param, 0, paramCount)
	for p := Param(0); p < paramCount; p++ {
		out = append(out, p)
	}
	return out
}

// LookupParam finds a parameter by mnemonic, ignoring case.
func LookupParam(mnemonic string) (Param, bool) {
	for p := Param(0); p < paramCount; p++ {
		if strings.EqualFold(catalog[p].Mnemonic, mnemonic) {
			return p, true
		}
	}
	return 0, false
}

// checkWrite validates a setter input against the descriptor.
func checkWrite(p Param, v float32) error {
	d := p.Descriptor()
	if d.ReadOnly {
		return valueErr("set", p, "parameter is read-only")
	}
	if math.IsNaN(float64(v)) {
		return valueErr("set", p, "NaN is not a valid setting")
	}

	switch d.Format {
	case FormatBoundedFloat:
		if v < d.Min || v > d.Max {
			return valueErr("set", p, "%g outside [%g, %g]", v, d.Min, d.Max)
		}
	case FormatBoundedInt:
		if v < d.Min || v > d.Max || v != float32(math.Trunc(float64(v))) {
			return valueErr("set", p, "%g is not an integer in [%g, %g]", v, d.Min, d.Max)
		}
	case FormatEnum:
		if v < 0 || int(v) >= len(d.Names) || v != float32(math.Trunc(float64(v))) {
			return valueErr("set", p, "ordinal %g outside 0-%d", v, len(d.Names)-1)
		}
	case FormatBool:
		if v != 0 && v != 1 {
			return valueErr("set", p, "%g is not 0 or 1", v)
		}
	}
	return nil
}

// ParseSetting converts user input into the wire float for p: enum names or
// ordinals, true/false for booleans, decimal numbers otherwise. Range checks
// happen on write.
func ParseSetting(p Param, s string) (float32, error) {
	d := p.Descriptor()
	switch {
	case p == Baud:
		b, err := ParseBaudRate(s)
		return b.Ordinal(), err
	case d.Format == FormatEnum:
		n, err := parseEnum(p, s)
		return float32(n), err
	case d.Format == FormatBool:
		on, err := strconv.ParseBool(s)
		if err != nil {
			return 0, valueErr("parse", p, "%q is not a boolean", s)
		}
		if on {
			return 1, nil
		}
		return 0, nil
	}

	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, valueErr("parse", p, "%q is not a number", s)
	}
	return float32(v), nil
}
