package httpclient

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

// metricsEnabled controls whether Prometheus metrics are recorded.
var metricsEnabled atomic.Bool

var (
	fetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sanchar_fetch_duration_seconds",
			Help:    "Duration of fetches in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"host", "status_code"},
	)

	fetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sanchar_fetch_total",
			Help: "Total number of fetches performed",
		},
		[]string{"host", "status_code"},
	)

	fetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sanchar_fetch_errors_total",
			Help: "Total number of failed fetches",
		},
		[]string{"host"},
	)

	breakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sanchar_circuit_breaker_state",
			Help: "Circuit breaker state per host (0=closed, 1=half-open, 2=open)",
		},
		[]string{"host"},
	)
)

// recordFetch records metrics for one completed fetch attempt chain.
func recordFetch(host string, resp *Response, err error, elapsed time.Duration) {
	if !metricsEnabled.Load() {
		return
	}

	code := "0"
	if resp != nil {
		code = strconv.Itoa(resp.StatusCode)
	}
	labels := prometheus.Labels{"host": host, "status_code": code}

	fetchDuration.With(labels).Observe(elapsed.Seconds())
	fetchTotal.With(labels).Inc()
	if err != nil {
		fetchErrors.With(prometheus.Labels{"host": host}).Inc()
	}
}

func recordBreakerState(host string, state gobreaker.State) {
	if !metricsEnabled.Load() {
		return
	}

	var value float64
	switch state {
	case gobreaker.StateClosed:
		value = 0
	case gobreaker.StateHalfOpen:
		value = 1
	case gobreaker.StateOpen:
		value = 2
	}
	breakerState.With(prometheus.Labels{"host": host}).Set(value)
}
