// internal/poller/poller.go
package poller

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/syl2381/pkg/syl2381"
)

// Client abstracts the controller operations needed by the poller.
// *syl2381.Device satisfies it.
type Client interface {
	ReadValue(p syl2381.Param) (syl2381.Value, error)
	Close() error
}

// Factory opens a new client. ONE attempt per call.
type Factory func() (Client, error)

// Config is the minimal runtime config the poller needs.
type Config struct {
	Device   string
	Interval time.Duration
	Params   []syl2381.Param
}

// Poller is a dumb, clock-driven reader.
type Poller struct {
	cfg     Config
	client  Client
	factory Factory
	log     zerolog.Logger
}

// New creates a poller with immutable config.
// factory may be nil, in which case a dead client is never replaced.
func New(cfg Config, client Client, factory Factory, log zerolog.Logger) (*Poller, error) {
	if cfg.Device == "" {
		return nil, errors.New("poller: device name required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if len(cfg.Params) == 0 {
		return nil, errors.New("poller: at least one parameter required")
	}
	if client == nil && factory == nil {
		return nil, errors.New("poller: client or factory required")
	}
	return &Poller{
		cfg:     cfg,
		client:  client,
		factory: factory,
		log:     log.With().Str("component", "poller").Logger(),
	}, nil
}

// PollOnce performs exactly one poll cycle.
// All-or-nothing: any failure aborts the cycle.
func (p *Poller) PollOnce() PollResult {
	start := time.Now()
	res := PollResult{
		Device: p.cfg.Device,
		At:     start,
	}

	if p.client == nil {
		c, err := p.factory()
		if err != nil {
			res.Err = fmt.Errorf("poller: reopen: %w", err)
			res.Took = time.Since(start)
			return res
		}
		p.log.Info().Msg("transport reopened")
		p.client = c
	}

	readings := make([]Reading, 0, len(p.cfg.Params))

	for _, param := range p.cfg.Params {
		v, err := p.client.ReadValue(param)
		if err != nil {
			res.Err = err
			p.dropOnTransportError(err)
			res.Took = time.Since(start)
			return res
		}
		readings = append(readings, Reading{Param: param, Value: v.Raw, Text: v.Text})
	}

	// Commit only if all reads succeeded
	res.Readings = readings
	res.Took = time.Since(start)
	return res
}

// dropOnTransportError discards a client whose transport failed so the
// factory gets a chance on a future tick.
func (p *Poller) dropOnTransportError(err error) {
	if p.factory == nil || !errors.Is(err, syl2381.ErrTransport) {
		return
	}
	if cerr := p.client.Close(); cerr != nil {
		p.log.Warn().Err(cerr).Msg("close after transport failure")
	}
	p.client = nil
}

// Close releases the current client, if any.
func (p *Poller) Close() error {
	if p.client == nil {
		return nil
	}
	err := p.client.Close()
	p.client = nil
	return err
}
