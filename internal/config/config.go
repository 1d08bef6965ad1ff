// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Device  DeviceConfig  `yaml:"device"`
	Serial  SerialConfig  `yaml:"serial"`
	Poll    PollConfig    `yaml:"poll"`
	MQTT    MQTTConfig    `yaml:"mqtt"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	Name   string `yaml:"name"`
	UnitID uint8  `yaml:"unit_id"`
}

// ---- SERIAL LINK ----

type SerialConfig struct {
	Address   string `yaml:"address"`
	BaudRate  int    `yaml:"baud_rate"`
	DataBits  int    `yaml:"data_bits"`
	Parity    string `yaml:"parity"` // N, E or O
	StopBits  int    `yaml:"stop_bits"`
	TimeoutMs int    `yaml:"timeout_ms"`
	RS485     bool   `yaml:"rs485"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs int      `yaml:"interval_ms"`
	Params     []string `yaml:"params"` // mnemonics; empty => full catalog
}

// ---- MQTT (optional) ----

type MQTTConfig struct {
	Broker      string `yaml:"broker"` // empty disables publishing
	ClientID    string `yaml:"client_id"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	TopicPrefix string `yaml:"topic_prefix"`
	QoS         byte   `yaml:"qos"`
	Retain      bool   `yaml:"retain"`
}

// Enabled reports whether a broker is configured.
func (m MQTTConfig) Enabled() bool {
	return m.Broker != ""
}

// ---- METRICS (optional) ----

type MetricsConfig struct {
	Listen string `yaml:"listen"` // empty disables the /metrics endpoint
}

// ---- LOGGING ----

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console | json
}

// Load reads and decodes a YAML configuration file.
// It does not validate or normalize.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return &cfg, nil
}
