// internal/metrics/metrics.go
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tamzrod/syl2381/internal/poller"
	"github.com/tamzrod/syl2381/internal/status"
)

const namespace = "syl2381"

// Recorder exports poll results and link status as Prometheus metrics.
// It satisfies writer.Writer so it can sit next to the MQTT writer.
type Recorder struct {
	reg *prometheus.Registry

	values   *prometheus.GaugeVec
	polls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	health   *prometheus.GaugeVec
	lastErr  *prometheus.GaugeVec
	inError  *prometheus.GaugeVec

	device string
}

// New registers the collectors on a private registry.
func New(device string) *Recorder {
	r := &Recorder{
		reg:    prometheus.NewRegistry(),
		device: device,
		values: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "param_value",
			Help:      "Last polled wire value per controller parameter.",
		}, []string{"device", "param"}),
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polls_total",
			Help:      "Poll cycles by result.",
		}, []string{"device", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "poll_duration_seconds",
			Help:      "Time spent in one poll cycle.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		}, []string{"device"}),
		health: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "link_health",
			Help:      "Link health code: 0 unknown, 1 ok, 2 error.",
		}, []string{"device"}),
		lastErr: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_error_code",
			Help:      "Last error code: 1 transport, 2 protocol, 3 unexpected value.",
		}, []string{"device"}),
		inError: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "seconds_in_error",
			Help:      "Seconds the link has been out of the ok state.",
		}, []string{"device"}),
	}

	r.reg.MustRegister(r.values, r.polls, r.duration, r.health, r.lastErr, r.inError)
	return r
}

// Write records one poll cycle.
func (r *Recorder) Write(res poller.PollResult) error {
	r.duration.WithLabelValues(r.device).Observe(res.Took.Seconds())

	if res.Err != nil {
		r.polls.WithLabelValues(r.device, "error").Inc()
		return nil
	}

	r.polls.WithLabelValues(r.device, "ok").Inc()
	for _, rd := range res.Readings {
		r.values.WithLabelValues(r.device, rd.Mnemonic()).Set(float64(rd.Value))
	}
	return nil
}

// WriteStatus records the link status; it satisfies writer.StatusWriter.
func (r *Recorder) WriteStatus(s status.Snapshot) error {
	r.health.WithLabelValues(r.device).Set(float64(s.Health))
	r.lastErr.WithLabelValues(r.device).Set(float64(s.LastErrorCode))
	r.inError.WithLabelValues(r.device).Set(float64(s.SecondsInError))
	return nil
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (r *Recorder) Serve(ctx context.Context, addr string, log zerolog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("listen", addr).Msg("metrics endpoint up")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
