// file: internal/metrics/metrics.go
// version: 2.0.0
// guid: 9f8e7d6c-5b4a-3210-9fed-cba876543210

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	operationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "library_catalog",
		Name:      "operations_total",
		Help:      "Total number of catalog operations by operation and outcome",
	}, []string{"operation", "outcome"})
	operationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "library_catalog",
		Name:      "operation_duration_seconds",
		Help:      "Histogram of catalog operation durations in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms up to ~1s
	}, []string{"operation"})
	booksGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "library_catalog",
		Name:      "books_total",
		Help:      "Current number of books in the catalog",
	})
)

// Register adds the catalog metrics to the default Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(operationsTotal, operationDuration, booksGauge)
	})
}

// ObserveOperation records one finished catalog operation.
func ObserveOperation(operation, outcome string, elapsed time.Duration, books int) {
	operationsTotal.WithLabelValues(operation, outcome).Inc()
	operationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
	booksGauge.Set(float64(books))
}

func SetBooks(n int) { booksGauge.Set(float64(n)) }

// WriteTextfile dumps the default registry in the text exposition format,
// suitable for the node exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
