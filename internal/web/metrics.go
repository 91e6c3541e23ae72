package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the HTTP shell.
var (
	webRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "web_requests_total",
		Help: "Total HTTP requests by route pattern and status",
	}, []string{"route", "status"})

	webRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "web_request_duration_seconds",
		Help:    "HTTP request duration in seconds by route pattern",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"route"})

	webExportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "web_exports_total",
		Help: "Total spreadsheet exports by kind and outcome",
	}, []string{"kind", "outcome"}) // kind: "download", "email"; outcome: "ok", "error"
)
