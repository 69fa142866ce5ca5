package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sentinel_fetch_duration_seconds",
			Help:    "Duration of market data requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source", "endpoint"},
	)

	FetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_fetch_errors_total",
			Help: "Total number of failed market data requests",
		},
		[]string{"source", "endpoint"},
	)

	IndicatorCompute = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sentinel_indicator_compute_seconds",
			Help:    "Time spent computing one indicator bundle",
			Buckets: []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01},
		},
	)

	RefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_refresh_total",
			Help: "Per-symbol refresh outcomes",
		},
		[]string{"status"},
	)

	RSI = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sentinel_rsi",
			Help: "Latest RSI(14) per symbol",
		},
		[]string{"symbol"},
	)

	MACDHistogram = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sentinel_macd_histogram",
			Help: "Latest MACD histogram per symbol",
		},
		[]string{"symbol"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_notifications_total",
			Help: "Telegram messages by outcome",
		},
		[]string{"status"},
	)
)

// Handler exposes the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
