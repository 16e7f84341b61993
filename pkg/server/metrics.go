package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "markup"

// metrics holds the server's Prometheus collectors.
type metrics struct {
	requestsTotal  *prometheus.CounterVec
	renderDuration prometheus.Histogram
	cacheLookups   *prometheus.CounterVec
	renderErrors   *prometheus.CounterVec
	liveSessions   prometheus.Gauge
	patchesSent    prometheus.Counter
	reloadsSent    prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "requests_total",
			Help:      "Total number of document requests by status code",
		}, []string{"code"}),

		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent parsing and rendering a document on a cache miss",
			Buckets:   prometheus.DefBuckets,
		}),

		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_lookups_total",
			Help:      "Render cache lookups by result",
		}, []string{"result"}),

		renderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "render_errors_total",
			Help:      "Documents that failed to parse or render, by diagnostic code",
		}, []string{"code"}),

		liveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "live_sessions",
			Help:      "Number of connected live preview sessions",
		}),

		patchesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "patches_sent_total",
			Help:      "Total number of patches sent to live preview sessions",
		}),

		reloadsSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "reloads_sent_total",
			Help:      "Total number of full reloads sent to live preview sessions",
		}),
	}
}

// instrument counts responses by status code.
func (m *metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requestsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
	})
}

func (m *metrics) observeRender(start time.Time) {
	m.renderDuration.Observe(time.Since(start).Seconds())
}
