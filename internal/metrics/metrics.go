package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_http_requests_total",
			Help: "Total number of HTTP requests served by the portal",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_http_request_duration_seconds",
			Help:    "Duration of HTTP requests served by the portal",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)
)

// outbound calls to the scheduling API
var (
	APICalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_api_calls_total",
			Help: "Calls to the scheduling API by operation and outcome",
		},
		[]string{"op", "outcome"},
	)

	APICallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_api_call_duration_seconds",
			Help:    "Round trip time of scheduling API calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"op"},
	)

	StoreQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_store_queries_total",
			Help: "Queries sent to the hosted table store",
		},
		[]string{"table", "action"},
	)
)

var once sync.Once

// Init registers the collectors with the default registry. Safe to call
// more than once.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(RequestsTotal, RequestDuration, APICalls, APICallDuration, StoreQueries)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
