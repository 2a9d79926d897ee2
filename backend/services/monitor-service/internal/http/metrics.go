package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served.",
		},
		[]string{"route", "method", "status"},
	)
	httpRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
)

func observeHTTPRequest(r *http.Request, status int, dur time.Duration) {
	route := routeLabel(r.URL.Path)
	httpRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
	httpRequestDurationSeconds.WithLabelValues(route, r.Method).Observe(dur.Seconds())
}

// routeLabel keeps metric cardinality bounded to known paths.
func routeLabel(path string) string {
	switch path {
	case "/api/readings", "/api/readings/update":
		return "readings"
	case "/api/readings/latest":
		return "readings_latest"
	case "/api/pricing-slabs", "/api/pricing/pricing-slabs":
		return "pricing_slabs"
	case "/api/pricing/update":
		return "pricing_update"
	case "/api/cost/calculate":
		return "cost_calculate"
	case "/api/cost/realtime":
		return "cost_realtime"
	case "/api/summary":
		return "summary"
	case "/ws/readings":
		return "device_socket"
	case "/health":
		return "health"
	case "/metrics":
		return "metrics"
	default:
		return "other"
	}
}
