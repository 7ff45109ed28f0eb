// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts served requests.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invoicegen_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration observes request latency in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "invoicegen_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// DraftsSavedTotal counts successful draft saves.
	DraftsSavedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "invoicegen_drafts_saved_total",
		Help: "Draft autosaves written to storage.",
	})

	// InvoicesCommittedTotal counts invoices written to the history.
	InvoicesCommittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "invoicegen_invoices_committed_total",
		Help: "Completed invoices appended to the history.",
	})

	// StorageRecoveriesTotal counts stored values that failed to decode and
	// were treated as absent.
	StorageRecoveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invoicegen_storage_recoveries_total",
		Help: "Corrupt stored values replaced by defaults, by key.",
	}, []string{"key"})
)

// Middleware records request count and latency for next.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &StatusRecorder{ResponseWriter: w, Status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.Status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// StatusRecorder captures the status code written by a handler.
type StatusRecorder struct {
	http.ResponseWriter
	Status int
}

// WriteHeader records status before passing it on.
func (r *StatusRecorder) WriteHeader(status int) {
	r.Status = status
	r.ResponseWriter.WriteHeader(status)
}
