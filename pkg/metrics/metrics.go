// Package metrics provides the centralized Prometheus registry reference
// for the pokedex web application. All metrics are defined in their
// respective packages (pokeapi, cache, web) to maintain modularity and
// avoid circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registerer used by the application.
// All metrics are automatically registered via promauto in their respective
// packages and served on /metrics by the web shell.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Upstream Request Metrics (pkg/pokeapi):
//   - pokeapi_requests_total{endpoint, status} (Counter): Requests by logical endpoint and HTTP status
//   - pokeapi_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - pokeapi_errors_total{class} (Counter): Errors by class (client, server, network, decode)
//
// Cache Metrics (pkg/cache):
//   - catalog_cache_hits_total{store} (Counter): Cache hits by backend (memory, redis)
//   - catalog_cache_misses_total (Counter): Cache misses (absent or expired entries)
//   - catalog_cache_errors_total{operation} (Counter): Backend operation errors (get, set, delete)
//
// Web Metrics (internal/web):
//   - web_requests_total{route, status} (Counter): HTTP requests by route pattern and status
//   - web_request_duration_seconds{route} (Histogram): Request duration by route pattern
//   - web_exports_total{kind, outcome} (Counter): Spreadsheet exports by kind (download, email) and outcome (ok, error)
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(catalog_cache_hits_total[5m])) /
//   (sum(rate(catalog_cache_hits_total[5m])) + sum(rate(catalog_cache_misses_total[5m])))
//
//   # Upstream Error Rate
//   rate(pokeapi_errors_total[5m])
//
//   # P95 Upstream Latency
//   histogram_quantile(0.95, rate(pokeapi_request_duration_seconds_bucket[5m]))
//
//   # Export Failure Ratio
//   sum(rate(web_exports_total{outcome="error"}[15m])) / sum(rate(web_exports_total[15m]))
