package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	ticksTotal      *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	lastPrice       *prometheus.GaugeVec
	beta            *prometheus.GaugeVec
	symbolsWithData prometheus.Gauge
	tickDuration    prometheus.Histogram
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		ticksTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "betapulse_ticks_total",
				Help: "Total analytics ticks by result",
			},
			[]string{"result"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "betapulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "betapulse_last_price",
				Help: "Last close price used for analytics per symbol",
			},
			[]string{"symbol"},
		),
		beta: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "betapulse_beta",
				Help: "Latest rolling beta per symbol and window",
			},
			[]string{"symbol", "window"},
		),
		symbolsWithData: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "betapulse_symbols_with_data",
				Help: "Symbols with a current snapshot after the last tick",
			},
		),
		tickDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "betapulse_tick_duration_seconds",
				Help:    "Duration of a full analytics tick in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// RecordTick records a completed tick with its outcome and duration.
func (r *Recorder) RecordTick(result string, seconds float64) {
	r.ticksTotal.WithLabelValues(result).Inc()
	r.tickDuration.Observe(seconds)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last close price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordBeta records the latest beta for a symbol and window label.
func (r *Recorder) RecordBeta(symbol, window string, beta float64) {
	r.beta.WithLabelValues(symbol, window).Set(beta)
}

// RecordSymbolsWithData records the per-tick count of analyzed symbols.
func (r *Recorder) RecordSymbolsWithData(n int) {
	r.symbolsWithData.Set(float64(n))
}
