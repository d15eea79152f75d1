package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce            sync.Once
	rolloverRunsTotal       *prometheus.CounterVec
	layersAppendedTotal     *prometheus.CounterVec
	strategyDurationSeconds *prometheus.HistogramVec
	placeAllocFailures      prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors used by the
// scheduling engine.
func RegisterMetrics() {
	registerOnce.Do(func() {
		rolloverRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schedule_rollover_runs_total",
			Help: "Total number of weekly rollover pipeline runs.",
		}, []string{"status"})

		layersAppendedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schedule_layers_appended_total",
			Help: "Total number of schedule layers appended, by layer type.",
		}, []string{"type"})

		strategyDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "schedule_strategy_duration_seconds",
			Help:    "Duration of each scheduling strategy's apply pass.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
		}, []string{"type"})

		placeAllocFailures = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schedule_place_allocation_failures_total",
			Help: "Total number of place allocations that exhausted all candidates.",
		})

		prometheus.MustRegister(rolloverRunsTotal, layersAppendedTotal, strategyDurationSeconds, placeAllocFailures)
	})
}

// RolloverRuns exposes the counter for pipeline runs.
func RolloverRuns() *prometheus.CounterVec {
	RegisterMetrics()
	return rolloverRunsTotal
}

// LayersAppended exposes the counter for appended layers.
func LayersAppended() *prometheus.CounterVec {
	RegisterMetrics()
	return layersAppendedTotal
}

// StrategyDuration exposes the per-strategy duration histogram.
func StrategyDuration() *prometheus.HistogramVec {
	RegisterMetrics()
	return strategyDurationSeconds
}

// PlaceAllocationFailures exposes the allocator exhaustion counter.
func PlaceAllocationFailures() prometheus.Counter {
	RegisterMetrics()
	return placeAllocFailures
}
