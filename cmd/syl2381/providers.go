// cmd/syl2381/providers.go
package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tamzrod/syl2381/internal/config"
	"github.com/tamzrod/syl2381/internal/logging"
	"github.com/tamzrod/syl2381/internal/metrics"
	"github.com/tamzrod/syl2381/internal/poller"
	"github.com/tamzrod/syl2381/internal/serialport"
	"github.com/tamzrod/syl2381/pkg/syl2381"
)

// ProvideConfig loads, validates and normalizes the config file.
func ProvideConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)
	return cfg, nil
}

// ProvideLogger builds the device-scoped logger.
func ProvideLogger(cfg *config.Config) zerolog.Logger {
	return logging.ForDevice(logging.New(cfg.Log), cfg.Device.Name, cfg.Device.UnitID)
}

// ProvideDevice opens the serial link for one-shot commands.
func ProvideDevice(cfg *config.Config, log zerolog.Logger) (*syl2381.Device, func(), error) {
	tr, err := serialport.Open(cfg.Serial)
	if err != nil {
		return nil, nil, err
	}
	dev, err := syl2381.New(cfg.Device.UnitID, tr)
	if err != nil {
		_ = tr.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if err := dev.Close(); err != nil {
			log.Warn().Err(err).Msg("serial close failed")
		}
	}
	return dev, cleanup, nil
}

// ProvidePoller builds the poller; it owns the serial link.
func ProvidePoller(cfg *config.Config, log zerolog.Logger) (*poller.Poller, func(), error) {
	p, closePoller, err := poller.Build(cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("poller build failed: %w", err)
	}

	cleanup := func() {
		if err := closePoller(); err != nil {
			log.Warn().Err(err).Msg("poller close failed")
		}
	}
	return p, cleanup, nil
}

// ProvideRecorder builds the metrics recorder.
func ProvideRecorder(cfg *config.Config) *metrics.Recorder {
	return metrics.New(cfg.Device.Name)
}
