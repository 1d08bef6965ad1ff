// cmd/syl2381/bridge.go
package main

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/syl2381/internal/config"
	"github.com/tamzrod/syl2381/internal/metrics"
	"github.com/tamzrod/syl2381/internal/poller"
	"github.com/tamzrod/syl2381/internal/status"
	"github.com/tamzrod/syl2381/internal/writer"
)

// Bridge is the long-running poll -> publish pipeline for one device.
type Bridge struct {
	Cfg     *config.Config
	Log     zerolog.Logger
	Poller  *poller.Poller
	Metrics *metrics.Recorder
}

// Run blocks until ctx is done and the poller has finished its last
// transaction, so the caller may close the transport afterwards.
func (b *Bridge) Run(ctx context.Context) error {
	dataWriters := []writer.Writer{b.Metrics}
	statusWriters := []writer.StatusWriter{b.Metrics}

	// ---- MQTT (optional) ----
	if b.Cfg.MQTT.Enabled() {
		plan, err := writer.BuildPlan(b.Cfg)
		if err != nil {
			return err
		}
		cli, closeClient, err := writer.BuildEndpointClient(b.Cfg, plan, b.Log)
		if err != nil {
			return err
		}
		defer func() {
			if err := closeClient(); err != nil {
				b.Log.Warn().Err(err).Msg("mqtt close failed")
			}
		}()

		dataWriters = append(dataWriters, writer.New(plan, cli))
		statusWriters = append(statusWriters, writer.NewDeviceStatusWriter(plan, cli))
	}

	// ---- metrics endpoint (optional) ----
	if b.Cfg.Metrics.Listen != "" {
		go func() {
			if err := b.Metrics.Serve(ctx, b.Cfg.Metrics.Listen, b.Log); err != nil {
				b.Log.Error().Err(err).Msg("metrics endpoint failed")
			}
		}()
	}

	// ---- channel between poller and writers ----
	out := make(chan poller.PollResult)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		b.Poller.Run(ctx, out)
	}()

	b.Log.Info().
		Dur("interval", b.Poller.Interval()).
		Bool("mqtt", b.Cfg.MQTT.Enabled()).
		Msg("bridge running")

	orchestrate(ctx, out, writer.Multi(dataWriters...), writer.MultiStatus(statusWriters...), time.Second, b.Log)

	wg.Wait()
	return nil
}

// orchestrate owns the status tracker. Poll results drive health and error
// code; the tick drives seconds-in-error. Only changes are delivered, except
// for the full block on start.
func orchestrate(
	ctx context.Context,
	in <-chan poller.PollResult,
	data writer.Writer,
	sw writer.StatusWriter,
	tick time.Duration,
	log zerolog.Logger,
) {
	tracker := status.NewTracker()

	secTicker := time.NewTicker(tick)
	defer secTicker.Stop()

	// Full block write on start (identity re-assert).
	if err := sw.WriteStatus(tracker.Snapshot()); err != nil {
		log.Warn().Err(err).Msg("status write failed on start")
	}

	for {
		select {
		case <-ctx.Done():
			return

		case res := <-in:
			// --- data delivery ---
			if err := data.Write(res); err != nil {
				log.Warn().Err(err).Msg("writer error")
			}

			// --- status update (link-level truth) ---
			prev := tracker.Snapshot()
			snap, changed := tracker.Observe(res.Err)
			if !changed {
				continue
			}
			if snap.Health != prev.Health {
				ev := log.Info()
				if res.Err != nil {
					ev = log.Error().Err(res.Err)
				}
				ev.Str("health", status.HealthName(snap.Health)).Msg("link health changed")
			}
			if err := sw.WriteStatus(snap); err != nil {
				log.Warn().Err(err).Msg("status write failed")
			}

		case <-secTicker.C:
			// Tick 1 Hz while not OK.
			snap, changed := tracker.Tick()
			if !changed {
				continue
			}
			if err := sw.WriteStatus(snap); err != nil {
				log.Warn().Err(err).Msg("status seconds tick write failed")
			}
		}
	}
}
