// Package metrics exposes the Prometheus instruments of the chart service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lwcharts"

const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusCached  = "cached"
)

var (
	// chartBuilds counts chart builds.
	// Labels: kind (spec, market, dashboard, refresh), status (success, error, cached)
	chartBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "chart",
		Name:      "builds_total",
		Help:      "Total chart builds by kind and status",
	}, []string{"kind", "status"})

	chartBuildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "chart",
		Name:      "build_duration_seconds",
		Help:      "Time to build a frontend chart config",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"kind"})

	chartSeries = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "chart",
		Name:      "series_per_chart",
		Help:      "Number of series in built charts",
		Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
	})

	// marketFetches counts candle fetches from the market data sources.
	// Labels: source (binance, yahoo), status (success, error)
	marketFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "market",
		Name:      "fetches_total",
		Help:      "Total candle fetches by source and status",
	}, []string{"source", "status"})

	marketFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "market",
		Name:      "fetch_duration_seconds",
		Help:      "Candle fetch latency by source",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})

	scheduledRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "scheduler",
		Name:      "refreshes_total",
		Help:      "Total scheduled chart refreshes by status",
	}, []string{"status"})
)

func status(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}

// ObserveBuild records one chart build started at start.
func ObserveBuild(kind string, start time.Time, seriesCount int, err error) {
	chartBuilds.WithLabelValues(kind, status(err)).Inc()
	chartBuildDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err == nil {
		chartSeries.Observe(float64(seriesCount))
	}
}

func BuildCacheHit(kind string) {
	chartBuilds.WithLabelValues(kind, StatusCached).Inc()
}

func ObserveMarketFetch(source string, start time.Time, err error) {
	marketFetches.WithLabelValues(source, status(err)).Inc()
	marketFetchDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
}

func ScheduledRefresh(err error) {
	scheduledRefreshes.WithLabelValues(status(err)).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
