package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registru_http_requests_total",
			Help: "Total number of HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "registru_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ImportPreviewsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registru_import_previews_total",
			Help: "Total number of import previews by outcome (ok, rejected, error)",
		},
		[]string{"status"},
	)

	ImportEntriesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "registru_import_entries_created_total",
			Help: "Total number of manifest entries created by confirmed imports",
		},
	)

	LookupRowsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registru_lookup_rows_created_total",
			Help: "Total number of lookup rows auto-created by kind (container_type, flag, ship)",
		},
		[]string{"kind"},
	)
)
