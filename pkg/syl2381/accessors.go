package syl2381

// Typed accessors, one per register. Each is a single transaction.

func (d *Device) getFloat(p Param) (float32, error) { return d.getHolding(p) }

func (d *Device) getDecoded(p Param) (Value, error) {
	v, err := d.getHolding(p)
	if err != nil {
		return Value{}, err
	}
	return decodeHolding(p, v)
}

// ---- process state ----

// ProcessValue reads the measured temperature (PV).
func (d *Device) ProcessValue() (float32, error) { return d.getFloat(ProcessValue) }

// OutputPercent reads the output power percentage (OUT).
func (d *Device) OutputPercent() (float32, error) { return d.getFloat(OutputPercent) }

// SetOutputPercent writes OUT. The controller only accepts it while
// OutputControl is enabled.
func (d *Device) SetOutputPercent(v float32) error { return d.setHolding(OutputPercent, v) }

// Alarm1Active reads the J1 relay state (AL1_STA).
func (d *Device) Alarm1Active() (bool, error) {
	b, err := d.getCoils(Alarm1Output)
	if err != nil {
		return false, err
	}
	return b&1 == 1, nil
}

// OutputControl reads CV: when true the host may write OUT.
func (d *Device) OutputControl() (bool, error) {
	v, err := d.getDecoded(OutputControl)
	if err != nil {
		return false, err
	}
	return v.Raw == 1, nil
}

// SetOutputControl writes CV. It stays set until cleared or the controller reboots.
func (d *Device) SetOutputControl(on bool) error {
	var v float32
	if on {
		v = 1
	}
	return d.setHolding(OutputControl, v)
}

// Status reads the status coil block (AT).
func (d *Device) Status() (Status, error) {
	b, err := d.getCoils(StatusFlags)
	return Status(b), err
}

// ---- alarm and setpoint ----

// Setpoint reads the target temperature (SV).
func (d *Device) Setpoint() (float32, error) { return d.getFloat(Setpoint) }
// SetSetpoint writes SV.
func (d *Device) SetSetpoint(v float32) error { return d.setHolding(Setpoint, v) }
// Alarm1On reads the temperature at which alarm 1 engages (AH1).
func (d *Device) Alarm1On() (float32, error) { return d.getFloat(Alarm1On) }
// SetAlarm1On writes AH1.
func (d *Device) SetAlarm1On(v float32) error { return d.setHolding(Alarm1On, v) }
// Alarm1Off reads the temperature at which alarm 1 releases (AL1).
func (d *Device) Alarm1Off() (float32, error) { return d.getFloat(Alarm1Off) }
// SetAlarm1Off writes AL1.
func (d *Device) SetAlarm1Off(v float32) error { return d.setHolding(Alarm1Off, v) }

// ---- PID tuning ----

// Proportional reads the proportional constant (P).
func (d *Device) Proportional() (float32, error) { return d.getFloat(Proportional) }
// SetProportional writes P.
func (d *Device) SetProportional(v float32) error { return d.setHolding(Proportional, v) }
// Integral reads the integral time in seconds (I).
func (d *Device) Integral() (float32, error) { return d.getFloat(Integral) }
// SetIntegral writes I.
func (d *Device) SetIntegral(v float32) error { return d.setHolding(Integral, v) }
// Derivative reads the derivative time in seconds (D).
func (d *Device) Derivative() (float32, error) { return d.getFloat(Derivative) }
// SetDerivative writes D.
func (d *Device) SetDerivative(v float32) error { return d.setHolding(Derivative, v) }
// BandLimit reads the band around SV where PID is active (BB).
func (d *Device) BandLimit() (float32, error) { return d.getFloat(BandLimit) }
// SetBandLimit writes BB.
func (d *Device) SetBandLimit(v float32) error { return d.setHolding(BandLimit, v) }

// Damping reads the overshoot damping constant (SOUF).
func (d *Device) Damping() (float32, error) { return d.getFloat(Damping) }
// SetDamping writes SOUF.
func (d *Device) SetDamping(v float32) error { return d.setHolding(Damping, v) }

// ControlCycle reads how often, in seconds, the output is recomputed (OT).
func (d *Device) ControlCycle() (float32, error) { return d.getFloat(ControlCycle) }
// SetControlCycle writes OT.
func (d *Device) SetControlCycle(v float32) error { return d.setHolding(ControlCycle, v) }

// Filter reads the input filter strength (FILT).
func (d *Device) Filter() (Filter, error) {
	v, err := d.getHolding(FilterStrength)
	if err != nil {
		return 0, err
	}
	return DecodeFilter(v)
}

// SetFilter writes FILT.
func (d *Device) SetFilter(f Filter) error { return d.setHolding(FilterStrength, f.Ordinal()) }

// ---- input / output configuration ----

// InputType reads the configured sensor type (INTY).
func (d *Device) InputType() (InputType, error) {
	v, err := d.getHolding(InputSensor)
	if err != nil {
		return 0, err
	}
	return DecodeInputType(v)
}

// SetInputType writes INTY.
func (d *Device) SetInputType(t InputType) error { return d.setHolding(InputSensor, t.Ordinal()) }

// OutputMode reads the control and alarm output mode (OUTY).
func (d *Device) OutputMode() (OutputMode, error) {
	v, err := d.getHolding(OutputModeSel)
	if err != nil {
		return 0, err
	}
	return DecodeOutputMode(v)
}

// SetOutputMode writes OUTY.
func (d *Device) SetOutputMode(m OutputMode) error { return d.setHolding(OutputModeSel, m.Ordinal()) }

// OutputType reads the output hardware type (COTY).
func (d *Device) OutputType() (OutputType, error) {
	v, err := d.getHolding(OutputHardware)
	if err != nil {
		return 0, err
	}
	return DecodeOutputType(v)
}

// SetOutputType writes COTY.
func (d *Device) SetOutputType(t OutputType) error { return d.setHolding(OutputHardware, t.Ordinal()) }

// Hysteresis reads the on/off control dead band (HY).
func (d *Device) Hysteresis() (float32, error) { return d.getFloat(Hysteresis) }
// SetHysteresis writes HY.
func (d *Device) SetHysteresis(v float32) error { return d.setHolding(Hysteresis, v) }

// InputOffset reads the sensor calibration offset (PSB).
func (d *Device) InputOffset() (float32, error) { return d.getFloat(InputOffset) }
// SetInputOffset writes PSB.
func (d *Device) SetInputOffset(v float32) error { return d.setHolding(InputOffset, v) }

// ControlDirection reads whether the loop heats or cools (RD).
func (d *Device) ControlDirection() (ControlDirection, error) {
	v, err := d.getHolding(Direction)
	if err != nil {
		return 0, err
	}
	return DecodeControlDirection(v)
}

// SetControlDirection writes RD.
func (d *Device) SetControlDirection(c ControlDirection) error {
	return d.setHolding(Direction, c.Ordinal())
}

// DisplayUnit reads the temperature unit (CORF).
func (d *Device) DisplayUnit() (DisplayUnit, error) {
	v, err := d.getHolding(Unit)
	if err != nil {
		return 0, err
	}
	return DecodeDisplayUnit(v)
}

// SetDisplayUnit writes CORF.
func (d *Device) SetDisplayUnit(u DisplayUnit) error { return d.setHolding(Unit, u.Ordinal()) }

// ---- communication ----

// DeviceID reads the controller's configured bus address (ID).
func (d *Device) DeviceID() (uint8, error) {
	v, err := d.getDecoded(DeviceID)
	if err != nil {
		return 0, err
	}
	return uint8(v.Raw), nil
}

// SetDeviceID writes ID. The new address applies to later transactions.
func (d *Device) SetDeviceID(id uint8) error { return d.setHolding(DeviceID, float32(id)) }

// BaudRate reads the controller's configured line speed (BAUD).
func (d *Device) BaudRate() (BaudRate, error) {
	v, err := d.getHolding(Baud)
	if err != nil {
		return 0, err
	}
	return DecodeBaudRate(v)
}

// SetBaudRate writes BAUD. The controller switches speed after the reply.
func (d *Device) SetBaudRate(b BaudRate) error { return d.setHolding(Baud, b.Ordinal()) }
