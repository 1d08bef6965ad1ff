package main

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/syl2381/internal/config"
	"github.com/tamzrod/syl2381/internal/metrics"
	"github.com/tamzrod/syl2381/internal/poller"
	"github.com/tamzrod/syl2381/internal/status"
	"github.com/tamzrod/syl2381/pkg/syl2381"
)

type recordingWriter struct {
	mu      sync.Mutex
	results []poller.PollResult
}

func (w *recordingWriter) Write(res poller.PollResult) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.results = append(w.results, res)
	return nil
}

type recordingStatusWriter struct {
	mu    sync.Mutex
	snaps []status.Snapshot
}

func (w *recordingStatusWriter) WriteStatus(s status.Snapshot) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.snaps = append(w.snaps, s)
	return nil
}

func (w *recordingStatusWriter) all() []status.Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]status.Snapshot(nil), w.snaps...)
}

func startOrchestrator(t *testing.T, tick time.Duration) (chan poller.PollResult, *recordingWriter, *recordingStatusWriter, func()) {
	t.Helper()

	in := make(chan poller.PollResult)
	data := &recordingWriter{}
	sw := &recordingStatusWriter{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		orchestrate(ctx, in, data, sw, tick, zerolog.Nop())
		close(done)
	}()

	return in, data, sw, func() {
		cancel()
		<-done
	}
}

func TestOrchestrate_StatusOnlyOnChange(t *testing.T) {
	in, data, sw, stop := startOrchestrator(t, time.Hour)

	in <- poller.PollResult{Device: "oven", Err: errors.New("timeout")}
	in <- poller.PollResult{Device: "oven", Err: errors.New("timeout")}
	in <- poller.PollResult{Device: "oven"}
	in <- poller.PollResult{Device: "oven"} // no change; also flushes the previous result
	stop()

	want := []status.Snapshot{
		{Health: status.HealthUnknown},
		{Health: status.HealthError, LastErrorCode: status.CodeGeneric},
		{Health: status.HealthOK},
	}
	got := sw.all()
	if len(got) != len(want) {
		t.Fatalf("status writes = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("write %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if len(data.results) != 4 {
		t.Fatalf("data writes = %d, want 4", len(data.results))
	}
}

func TestOrchestrate_TickCountsSecondsInError(t *testing.T) {
	in, _, sw, stop := startOrchestrator(t, 2*time.Millisecond)
	defer stop()

	in <- poller.PollResult{Device: "oven", Err: errors.New("timeout")}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		snaps := sw.all()
		if last := snaps[len(snaps)-1]; last.Health == status.HealthError && last.SecondsInError >= 2 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("seconds_in_error never advanced: %+v", sw.all())
}

// slowClient holds each read for a while and records whether Close
// arrived while a read was still running.
type slowClient struct {
	started chan struct{}
	once    sync.Once

	mu             sync.Mutex
	inFlight       bool
	closedInFlight bool
	closed         bool
}

func (c *slowClient) ReadValue(p syl2381.Param) (syl2381.Value, error) {
	c.mu.Lock()
	c.inFlight = true
	c.mu.Unlock()

	c.once.Do(func() { close(c.started) })
	time.Sleep(50 * time.Millisecond)

	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()
	return syl2381.Value{Param: p, Raw: 1, Text: "1"}, nil
}

func (c *slowClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.closedInFlight = c.inFlight
	return nil
}

func TestBridgeRun_WaitsForPollerBeforeReturning(t *testing.T) {
	client := &slowClient{started: make(chan struct{})}

	p, err := poller.New(poller.Config{
		Device:   "oven",
		Interval: time.Millisecond,
		Params:   []syl2381.Param{syl2381.ProcessValue},
	}, client, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("poller.New() err=%v", err)
	}

	cfg := &config.Config{}
	cfg.Device.Name = "oven"

	b := &Bridge{
		Cfg:     cfg,
		Log:     zerolog.Nop(),
		Poller:  p,
		Metrics: metrics.New("oven"),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()

	select {
	case <-client.started:
	case <-time.After(2 * time.Second):
		t.Fatal("poller never started a read")
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() err=%v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	// what runBridge's cleanup does next
	if err := p.Close(); err != nil {
		t.Fatalf("Close() err=%v", err)
	}

	client.mu.Lock()
	defer client.mu.Unlock()
	if !client.closed {
		t.Fatal("client was not closed")
	}
	if client.closedInFlight {
		t.Fatal("transport closed while a read was still running")
	}
}
