// Package metrics defines the Prometheus collectors of the mortgage client.
// It is the single source of truth for metric names, labels and help strings.
//
// Collectors register with the default registry on package init. The client
// is short-lived, so instead of a scrape endpoint it can dump the registry to
// a node_exporter textfile on exit (see WriteTextfile).
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mortgage_client"

// ── API metrics ───────────────────────────────────────────────────────────────

// APIRequestsTotal counts backend calls.
// Labels:
//   - operation: login, validate, register, list, create, update, delete
//   - outcome: "ok", "unauthorized", "client_error", "server_error", "transport_error"
var APIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of backend API requests, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// APIRequestDuration measures backend round trips.
var APIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of backend API requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Form metrics ──────────────────────────────────────────────────────────────

// FormSubmissionsTotal counts submissions that reached the backend.
// Labels:
//   - mode: "create" or "update"
//   - result: "ok" or "error"
var FormSubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "form_submissions_total",
		Help:      "Total number of application submissions, by form mode and result.",
	},
	[]string{"mode", "result"},
)

// ValidationFailuresTotal counts field edits that produced a validation message.
var ValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of field edits rejected by validation, by field.",
	},
	[]string{"field"},
)

// ── List metrics ──────────────────────────────────────────────────────────────

// StaleRefreshesTotal counts list responses discarded because a newer
// refresh or a mutation had already superseded them.
var StaleRefreshesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stale_refreshes_discarded_total",
		Help:      "Total number of list refresh responses discarded as stale.",
	},
)

// WriteTextfile dumps the default registry to path in the text exposition
// format.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
