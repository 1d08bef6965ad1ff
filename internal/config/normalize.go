// internal/config/normalize.go
package config

import (
	"strings"

	"github.com/google/uuid"

	"github.com/tamzrod/syl2381/pkg/syl2381"
)

// Defaults applied by Normalize.
const (
	DefaultDeviceName = "syl2381"
	DefaultBaudRate   = 9600
	DefaultDataBits   = 8
	DefaultParity     = "N"
	DefaultStopBits   = 1
	DefaultTimeoutMs  = 1000
	DefaultIntervalMs = 1000
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "console"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	// ------------------------------------------------------------
	// DEVICE
	// ------------------------------------------------------------

	if cfg.Device.Name == "" {
		cfg.Device.Name = DefaultDeviceName
	}

	// ------------------------------------------------------------
	// SERIAL LINK
	// ------------------------------------------------------------

	s := &cfg.Serial
	if s.BaudRate == 0 {
		s.BaudRate = DefaultBaudRate
	}
	if s.DataBits == 0 {
		s.DataBits = DefaultDataBits
	}
	if s.Parity == "" {
		s.Parity = DefaultParity
	}
	s.Parity = strings.ToUpper(s.Parity)
	if s.StopBits == 0 {
		s.StopBits = DefaultStopBits
	}
	if s.TimeoutMs == 0 {
		s.TimeoutMs = DefaultTimeoutMs
	}

	// ------------------------------------------------------------
	// POLL
	// ------------------------------------------------------------

	if cfg.Poll.IntervalMs == 0 {
		cfg.Poll.IntervalMs = DefaultIntervalMs
	}

	// Empty param list means the whole catalog.
	// Mnemonics are rewritten to their canonical spelling.
	if len(cfg.Poll.Params) == 0 {
		for _, p := range syl2381.Params() {
			cfg.Poll.Params = append(cfg.Poll.Params, p.String())
		}
	} else {
		for i, m := range cfg.Poll.Params {
			if p, ok := syl2381.LookupParam(m); ok {
				cfg.Poll.Params[i] = p.String()
			}
		}
	}

	// ------------------------------------------------------------
	// MQTT
	// ------------------------------------------------------------

	if cfg.MQTT.Enabled() {
		if cfg.MQTT.ClientID == "" {
			cfg.MQTT.ClientID = "syl2381-" + uuid.NewString()
		}
		if cfg.MQTT.TopicPrefix == "" {
			cfg.MQTT.TopicPrefix = "syl2381/" + cfg.Device.Name
		}
		cfg.MQTT.TopicPrefix = strings.TrimSuffix(cfg.MQTT.TopicPrefix, "/")
	}

	// ------------------------------------------------------------
	// LOGGING
	// ------------------------------------------------------------

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}
