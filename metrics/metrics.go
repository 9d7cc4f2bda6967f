// Package metrics exposes generator progress as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/thetafocal/focal"
)

var (
	// samplesAccepted counts accepted samples per split
	samplesAccepted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "thetafocal_samples_accepted_total",
		Help: "Total accepted samples by split",
	}, []string{"split"})

	// samplesRejected counts discarded draws per split and reason
	samplesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "thetafocal_samples_rejected_total",
		Help: "Total rejected draws by split and reason",
	}, []string{"split", "reason"})

	// composeDuration tracks the two searches plus the combine step
	composeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "thetafocal_compose_duration_seconds",
		Help:    "Focal label computation time in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~1.6s
	}, []string{"split"})

	// settledStates tracks settled states per search
	settledStates = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "thetafocal_search_settled_states",
		Help:    "States settled by one cost search",
		Buckets: prometheus.ExponentialBuckets(4, 4, 10), // 4 to ~1M
	})

	// optimalCost tracks the optimal start→goal cost of accepted samples
	optimalCost = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "thetafocal_optimal_cost",
		Help:    "Optimal start to goal cost of accepted samples",
		Buckets: prometheus.LinearBuckets(0, 16, 16),
	})
)

// Recorder feeds the package metrics. The zero value is ready to use and
// safe for concurrent callers.
type Recorder struct{}

// SampleAccepted records one accepted sample.
func (Recorder) SampleAccepted(split string, s *focal.Sample, elapsed time.Duration) {
	samplesAccepted.WithLabelValues(split).Inc()
	composeDuration.WithLabelValues(split).Observe(elapsed.Seconds())
	settledStates.Observe(float64(s.Forward.Settled))
	settledStates.Observe(float64(s.Reverse.Settled))
	optimalCost.Observe(s.Optimal)
}

// SampleRejected records one discarded draw.
func (Recorder) SampleRejected(split, reason string) {
	samplesRejected.WithLabelValues(split, reason).Inc()
}

// Handler returns the /metrics handler for the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve exposes /metrics on addr until ctx is done. An empty addr disables
// the endpoint and returns immediately.
func Serve(ctx context.Context, addr string) error {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("metrics server shutdown: %w", err)
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	}
}
