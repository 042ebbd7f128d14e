// Package metrics registers Prometheus collectors and exposes them on
// /metrics, plus an HTTP middleware recording request counts and latency.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prometheus.DefaultRegisterer

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by path/method/code.",
		},
		[]string{"path", "method", "code"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests by path/method/code.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "code"},
	)

	liveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "live_sessions",
			Help: "Number of open live aggregation sessions.",
		},
	)

	snapshotPushes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_pushes_total",
			Help: "Collection snapshots pushed over WebSocket, by collection.",
		},
		[]string{"collection"},
	)
)

func init() {
	collectors := []prometheus.Collector{
		httpRequests,
		httpDuration,
		liveSessions,
		snapshotPushes,
	}

	for _, c := range collectors {
		_ = registry.Register(c)
	}
}

// Middleware records request count and duration labelled with the chi route
// pattern, so path parameters do not explode cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		path := chi.RouteContext(r.Context()).RoutePattern()
		if path == "" {
			path = r.URL.Path
		}
		if path == "/metrics" || strings.HasPrefix(path, "/debug/pprof/") {
			return
		}

		code := strconv.Itoa(ww.Status())
		httpRequests.WithLabelValues(path, r.Method, code).Inc()
		httpDuration.WithLabelValues(path, r.Method, code).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// AddLiveSessions moves the open-session gauge.
func AddLiveSessions(delta float64) {
	liveSessions.Add(delta)
}

// ObserveSnapshotPush counts one snapshot push for a collection.
func ObserveSnapshotPush(collection string) {
	snapshotPushes.WithLabelValues(collection).Inc()
}
