// internal/config/validate.go
package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tamzrod/syl2381/pkg/syl2381"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
// Zero values mean "use the default" and are accepted here.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	// ------------------------------------------------------------
	// DEVICE
	// ------------------------------------------------------------

	// device name becomes an MQTT topic level and a metric label
	for i := 0; i < len(cfg.Device.Name); i++ {
		c := cfg.Device.Name[i]
		if c > 0x7F {
			return fmt.Errorf("device %q: name must contain ASCII characters only", cfg.Device.Name)
		}
		if c == '/' || c == '+' || c == '#' {
			return fmt.Errorf("device %q: name must not contain %q", cfg.Device.Name, c)
		}
	}

	if cfg.Device.UnitID < 1 || cfg.Device.UnitID > 247 {
		return fmt.Errorf("device %q: unit_id %d out of range 1-247", cfg.Device.Name, cfg.Device.UnitID)
	}

	// ------------------------------------------------------------
	// SERIAL LINK
	// ------------------------------------------------------------

	s := cfg.Serial
	if s.Address == "" {
		return fmt.Errorf("serial: address is required")
	}

	switch s.BaudRate {
	case 0, 1200, 2400, 4800, 9600, 19200:
	default:
		return fmt.Errorf("serial: unsupported baud_rate %d", s.BaudRate)
	}

	switch s.DataBits {
	case 0, 7, 8:
	default:
		return fmt.Errorf("serial: data_bits must be 7 or 8, got %d", s.DataBits)
	}

	switch strings.ToUpper(s.Parity) {
	case "", "N", "E", "O":
	default:
		return fmt.Errorf("serial: parity must be N, E or O, got %q", s.Parity)
	}

	switch s.StopBits {
	case 0, 1, 2:
	default:
		return fmt.Errorf("serial: stop_bits must be 1 or 2, got %d", s.StopBits)
	}

	if s.TimeoutMs < 0 {
		return fmt.Errorf("serial: timeout_ms must not be negative")
	}

	// ------------------------------------------------------------
	// POLL
	// ------------------------------------------------------------

	if cfg.Poll.IntervalMs < 0 {
		return fmt.Errorf("poll: interval_ms must not be negative")
	}

	seen := make(map[syl2381.Param]string)
	for _, m := range cfg.Poll.Params {
		p, ok := syl2381.LookupParam(m)
		if !ok {
			return fmt.Errorf("poll: unknown parameter %q", m)
		}
		if prev, dup := seen[p]; dup {
			return fmt.Errorf("poll: parameter %q listed twice (also as %q)", m, prev)
		}
		seen[p] = m
	}

	// ------------------------------------------------------------
	// MQTT (OPT-IN)
	// ------------------------------------------------------------

	if cfg.MQTT.Enabled() {
		if cfg.MQTT.QoS > 2 {
			return fmt.Errorf("mqtt: qos must be 0, 1 or 2, got %d", cfg.MQTT.QoS)
		}
		if strings.ContainsAny(cfg.MQTT.TopicPrefix, "+#") {
			return fmt.Errorf("mqtt: topic_prefix %q must not contain wildcards", cfg.MQTT.TopicPrefix)
		}
	}

	// ------------------------------------------------------------
	// LOGGING
	// ------------------------------------------------------------

	if cfg.Log.Level != "" {
		if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
			return fmt.Errorf("log: %w", err)
		}
	}

	switch cfg.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("log: format must be console or json, got %q", cfg.Log.Format)
	}

	return nil
}
