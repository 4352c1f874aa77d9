package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Pattern outcome label values recorded by the generator.
const (
	OutcomeAccepted       = "accepted"
	OutcomeRejectedParse  = "rejected_parse"
	OutcomeRejectedWeight = "rejected_weight"
)

// GenerationMetrics records the behaviour of generation runs: how many
// candidate patterns were tried and with what outcome, how long runs take,
// and how many molecules they yield.  All methods are nil-receiver safe so
// callers can run without metrics wired.
type GenerationMetrics struct {
	patternsTotal *prometheus.CounterVec
	slotsDropped  prometheus.Counter
	runDuration   prometheus.Histogram
	resultSize    prometheus.Histogram
}

// NewGenerationMetrics registers the generation metric family on reg.
func NewGenerationMetrics(reg prometheus.Registerer) *GenerationMetrics {
	m := &GenerationMetrics{
		patternsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "generation_patterns_total",
			Help:      "Candidate patterns evaluated, by outcome.",
		}, []string{"outcome"}),
		slotsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "generation_slots_dropped_total",
			Help:      "Slots where all six candidate patterns were rejected.",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "generation_run_duration_seconds",
			Help:      "Wall time of complete generation runs.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}),
		resultSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "generation_result_size",
			Help:      "Accepted molecules per generation run.",
			Buckets:   prometheus.LinearBuckets(0, 5, 11),
		}),
	}
	reg.MustRegister(m.patternsTotal, m.slotsDropped, m.runDuration, m.resultSize)
	return m
}

// ObservePattern counts one evaluated candidate pattern.
func (m *GenerationMetrics) ObservePattern(outcome string) {
	if m == nil {
		return
	}
	m.patternsTotal.WithLabelValues(outcome).Inc()
}

// ObserveSlotDropped counts a slot in which no pattern was accepted.
func (m *GenerationMetrics) ObserveSlotDropped() {
	if m == nil {
		return
	}
	m.slotsDropped.Inc()
}

// ObserveRun records duration and yield of a completed run.
func (m *GenerationMetrics) ObserveRun(d time.Duration, resultSize int) {
	if m == nil {
		return
	}
	m.runDuration.Observe(d.Seconds())
	m.resultSize.Observe(float64(resultSize))
}

// HTTPMetrics records request counts and latencies for the API server.
type HTTPMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP metric family on reg.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.requestsTotal, m.requestDuration)
	return m
}

// ObserveRequest records one served HTTP request.
func (m *HTTPMetrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
