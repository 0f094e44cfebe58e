// Package metrics exposes Prometheus instrumentation for the scan loop.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the scoring engine.
type Metrics struct {
	ScanCycles       prometheus.Counter
	ScanDuration     prometheus.Histogram
	SymbolsScanned   prometheus.Counter
	SymbolsSkipped   *prometheus.CounterVec // labels: reason
	AlertsSent       prometheus.Counter
	LabelCount       *prometheus.GaugeVec // labels: label
	HistoryWriteFail prometheus.Counter
}

// New registers and returns all metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ScanCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signalcipher_scan_cycles_total",
			Help: "Total completed scan cycles",
		}),
		ScanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "signalcipher_scan_duration_seconds",
			Help:    "Wall time of one scan cycle",
			Buckets: prometheus.DefBuckets,
		}),
		SymbolsScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signalcipher_symbols_scanned_total",
			Help: "Symbols that produced a score result",
		}),
		SymbolsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signalcipher_symbols_skipped_total",
			Help: "Symbols dropped from a cycle",
		}, []string{"reason"}),
		AlertsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signalcipher_alerts_sent_total",
			Help: "Push notifications delivered",
		}),
		LabelCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "signalcipher_label_count",
			Help: "Symbols per label after the latest cycle",
		}, []string{"label"}),
		HistoryWriteFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signalcipher_history_write_failures_total",
			Help: "Failed persistence attempts for scan history",
		}),
	}

	reg.MustRegister(
		m.ScanCycles,
		m.ScanDuration,
		m.SymbolsScanned,
		m.SymbolsSkipped,
		m.AlertsSent,
		m.LabelCount,
		m.HistoryWriteFail,
	)
	return m
}
