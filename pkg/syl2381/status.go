package syl2381

import "fmt"

// Status is the 8-coil block at coil 0x0000. D6 and D7 are reserved.
type Status uint8

const (
	StatusAutoTune    Status = 1 << 0 // D0
	StatusManual      Status = 1 << 1 // D1
	StatusCooling     Status = 1 << 2 // D2, clear when heating
	StatusSettingMode Status = 1 << 3 // D3, static parameter menu open
	StatusAnomaly     Status = 1 << 4 // D4, sensor fault
	StatusAlarm1      Status = 1 << 5 // D5
)

func (s Status) Alarm1() bool      { return s&StatusAlarm1 != 0 }
func (s Status) Anomaly() bool     { return s&StatusAnomaly != 0 }
func (s Status) SettingMode() bool { return s&StatusSettingMode != 0 }
func (s Status) CoolingMode() bool { return s&StatusCooling != 0 }
func (s Status) ManualMode() bool  { return s&StatusManual != 0 }
func (s Status) AutoTune() bool    { return s&StatusAutoTune != 0 }

func (s Status) String() string {
	return fmt.Sprintf(
		"alarm1=%t anomaly=%t setting_mode=%t cooling_mode=%t manual_mode=%t autotune=%t",
		s.Alarm1(), s.Anomaly(), s.SettingMode(), s.CoolingMode(), s.ManualMode(), s.AutoTune(),
	)
}
