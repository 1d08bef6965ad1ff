package syl2381

import (
	"math"
	"strconv"
	"strings"
)

// Enumerated parameters are stored as floats whose integer part is the
// ordinal. Encoding cannot fail; decoding rejects ordinals outside the set.

// Filter is the digital input filter strength (FILT).
type Filter uint8

const (
	FilterDisabled Filter = iota
	FilterWeak
	FilterStrong
)

var filterNames = []string{"disabled", "weak", "strong"}

func (f Filter) String() string  { return enumName(filterNames, int(f)) }
func (f Filter) Ordinal() float32 { return float32(f) }

// DecodeFilter maps a wire value to a Filter.
func DecodeFilter(v float32) (Filter, error) {
	n, err := decodeOrdinal(FilterStrength, v)
	return Filter(n), err
}

// ParseFilter accepts a name or an ordinal.
func ParseFilter(s string) (Filter, error) {
	n, err := parseEnum(FilterStrength, s)
	return Filter(n), err
}

// ControlDirection selects heating or cooling control (RD).
type ControlDirection uint8

const (
	Heating ControlDirection = iota
	Cooling
)

var directionNames = []string{"heating", "cooling"}

func (c ControlDirection) String() string  { return enumName(directionNames, int(c)) }
func (c ControlDirection) Ordinal() float32 { return float32(c) }

// DecodeControlDirection maps a wire value to a ControlDirection.
func DecodeControlDirection(v float32) (ControlDirection, error) {
	n, err := decodeOrdinal(Direction, v)
	return ControlDirection(n), err
}

// ParseControlDirection accepts a name or an ordinal.
func ParseControlDirection(s string) (ControlDirection, error) {
	n, err := parseEnum(Direction, s)
	return ControlDirection(n), err
}

// DisplayUnit is the temperature unit shown by the controller (CORF).
type DisplayUnit uint8

const (
	Celsius DisplayUnit = iota
	Fahrenheit
)

var displayUnitNames = []string{"celsius", "fahrenheit"}

func (u DisplayUnit) String() string  { return enumName(displayUnitNames, int(u)) }
func (u DisplayUnit) Ordinal() float32 { return float32(u) }

// DecodeDisplayUnit maps a wire value to a DisplayUnit.
func DecodeDisplayUnit(v float32) (DisplayUnit, error) {
	n, err := decodeOrdinal(Unit, v)
	return DisplayUnit(n), err
}

// ParseDisplayUnit accepts a name or an ordinal.
func ParseDisplayUnit(s string) (DisplayUnit, error) {
	n, err := parseEnum(Unit, s)
	return DisplayUnit(n), err
}

// BaudRate is the controller's own serial speed (BAUD).
type BaudRate uint8

const (
	Baud1200 BaudRate = iota
	Baud2400
	Baud4800
	Baud9600
)

var baudRateNames = []string{"1200", "2400", "4800", "9600"}

func (b BaudRate) String() string  { return enumName(baudRateNames, int(b)) }
func (b BaudRate) Ordinal() float32 { return float32(b) }

// BitsPerSecond returns the line speed the setting selects.
func (b BaudRate) BitsPerSecond() int {
	return 1200 << b
}

// DecodeBaudRate maps a wire value to a BaudRate.
func DecodeBaudRate(v float32) (BaudRate, error) {
	n, err := decodeOrdinal(Baud, v)
	return BaudRate(n), err
}

// ParseBaudRate accepts a bit rate (e.g. "9600"). Ordinals are not accepted
// since they would be ambiguous with rates.
func ParseBaudRate(s string) (BaudRate, error) {
	for i, name := range baudRateNames {
		if s == name {
			return BaudRate(i), nil
		}
	}
	return 0, valueErr("parse", Baud, "unknown baud rate %q", s)
}

// InputType is the configured sensor (INTY).
type InputType uint8

const (
	InputT InputType = iota
	InputR
	InputJ
	InputWRe3_25
	InputB
	InputS
	InputK
	InputE
	InputPt100
	InputPt100Fine // 0.1 degree resolution
	InputCu50
)

var inputTypeNames = []string{
	"T", "R", "J", "WRe3/25", "B", "S", "K", "E", "Pt100", "Pt100.1", "Cu50",
}

func (t InputType) String() string  { return enumName(inputTypeNames, int(t)) }
func (t InputType) Ordinal() float32 { return float32(t) }

// Thermocouple reports whether the input is a thermocouple rather than an RTD.
func (t InputType) Thermocouple() bool {
	return t <= InputE
}

// DecodeInputType maps a wire value to an InputType.
func DecodeInputType(v float32) (InputType, error) {
	n, err := decodeOrdinal(InputSensor, v)
	return InputType(n), err
}

// ParseInputType accepts a name or an ordinal.
func ParseInputType(s string) (InputType, error) {
	n, err := parseEnum(InputSensor, s)
	return InputType(n), err
}

// OutputType is the analog/SSR output hardware (COTY).
type OutputType uint8

const (
	OutputSSR OutputType = iota
	Output0To20mA
	Output4To20mA
)

var outputTypeNames = []string{"SSR", "0-20mA", "4-20mA"}

func (t OutputType) String() string  { return enumName(outputTypeNames, int(t)) }
func (t OutputType) Ordinal() float32 { return float32(t) }

// DecodeOutputType maps a wire value to an OutputType.
func DecodeOutputType(v float32) (OutputType, error) {
	n, err := decodeOrdinal(OutputHardware, v)
	return OutputType(n), err
}

// ParseOutputType accepts a name or an ordinal.
func ParseOutputType(s string) (OutputType, error) {
	n, err := parseEnum(OutputHardware, s)
	return OutputType(n), err
}

// OutputMode assigns functions to the J1 relay and the SSR port (OUTY).
type OutputMode uint8

const (
	// J1 absolute alarm, SSR port PID output.
	ModeAbsoluteAlarmSSRPID OutputMode = iota
	// J1 deviation alarm, SSR port PID output.
	ModeDeviationAlarmSSRPID
	// J1 PID output, SSR port disabled.
	ModeRelayPID
	// J1 on/off output, SSR port disabled.
	ModeRelayOnOff
	// J1 absolute alarm, SSR port disabled.
	ModeAbsoluteAlarm
)

var outputModeNames = []string{
	"abs-alarm+ssr-pid",
	"dev-alarm+ssr-pid",
	"relay-pid",
	"relay-onoff",
	"abs-alarm",
}

func (m OutputMode) String() string  { return enumName(outputModeNames, int(m)) }
func (m OutputMode) Ordinal() float32 { return float32(m) }

// DecodeOutputMode maps a wire value to an OutputMode.
func DecodeOutputMode(v float32) (OutputMode, error) {
	n, err := decodeOrdinal(OutputModeSel, v)
	return OutputMode(n), err
}

// ParseOutputMode accepts a name or an ordinal.
func ParseOutputMode(s string) (OutputMode, error) {
	n, err := parseEnum(OutputModeSel, s)
	return OutputMode(n), err
}

// ---- shared helpers ----

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return "invalid(" + strconv.Itoa(i) + ")"
	}
	return names[i]
}

// decodeOrdinal truncates v toward zero and checks it against the enum set of p.
func decodeOrdinal(p Param, v float32) (int, error) {
	names := p.Descriptor().Names
	f := float64(v)
	if math.IsNaN(f) || f < 0 || f >= 256 {
		return 0, valueErr("decode", p, "ordinal %g not representable", v)
	}
	n := int(math.Trunc(f))
	if n >= len(names) {
		return 0, valueErr("decode", p, "ordinal %d outside 0-%d", n, len(names)-1)
	}
	return n, nil
}

func parseEnum(p Param, s string) (int, error) {
	names := p.Descriptor().Names
	for i, name := range names {
		if strings.EqualFold(s, name) {
			return i, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 0 && n < len(names) {
			return n, nil
		}
	}
	return 0, valueErr("parse", p, "unknown value %q (want one of %s)", s, strings.Join(names, ", "))
}
