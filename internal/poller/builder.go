// internal/poller/builder.go
package poller

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/syl2381/internal/config"
	"github.com/tamzrod/syl2381/internal/serialport"
	"github.com/tamzrod/syl2381/pkg/syl2381"
)

// Params resolves configured mnemonics. Config must be validated.
func Params(mnemonics []string) ([]syl2381.Param, error) {
	out := make([]syl2381.Param, 0, len(mnemonics))
	for _, m := range mnemonics {
		p, ok := syl2381.LookupParam(m)
		if !ok {
			return nil, fmt.Errorf("poller: unknown parameter %q", m)
		}
		out = append(out, p)
	}
	return out, nil
}

// Build constructs a Poller and wires the serial client lifecycle.
// The port is reused while healthy.
// On transport death, Poller discards the client and uses factory on a future tick.
// No retries, no loops, no semantics.
func Build(cfg *config.Config, log zerolog.Logger) (*Poller, func() error, error) {
	// client factory: ONE attempt per call
	factory := func() (Client, error) {
		tr, err := serialport.Open(cfg.Serial)
		if err != nil {
			return nil, err
		}
		dev, err := syl2381.New(cfg.Device.UnitID, tr)
		if err != nil {
			_ = tr.Close()
			return nil, err
		}
		return dev, nil
	}

	// initial client (fail fast at startup)
	client, err := factory()
	if err != nil {
		return nil, nil, err
	}

	params, err := Params(cfg.Poll.Params)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	p, err := New(
		Config{
			Device:   cfg.Device.Name,
			Interval: time.Duration(cfg.Poll.IntervalMs) * time.Millisecond,
			Params:   params,
		},
		client,
		factory,
		log,
	)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	return p, p.Close, nil
}
