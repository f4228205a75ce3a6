// Package metrics defines and registers all custom Prometheus metrics for the
// intelligence platform API. It is the single source of truth for metric
// names, labels, and help strings. Metrics self-register with the default
// registry via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mdip"

// AuthAttemptsTotal counts authentication outcomes.
// Label:
//   - outcome: "success", "not_found", "bad_password", or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// RegistrationsTotal counts account registration outcomes.
// Label:
//   - outcome: "created", "rejected", or "duplicate"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by outcome.",
	},
	[]string{"outcome"},
)

// RecordsCreatedTotal counts records created through the API.
// Label:
//   - collection: "incidents", "datasets", or "tickets"
var RecordsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_created_total",
		Help:      "Total number of records created, by collection.",
	},
	[]string{"collection"},
)

// AdvisorRequestsTotal counts advisor calls.
// Labels:
//   - topic: advice topic (e.g. "cybersecurity")
//   - result: "ok" or "error"
var AdvisorRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "advisor_requests_total",
		Help:      "Total number of advisor requests, by topic and result.",
	},
	[]string{"topic", "result"},
)

// AdviceCacheTotal counts advice memo lookups.
// Label:
//   - result: "hit" or "miss"
var AdviceCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "advice_cache_total",
		Help:      "Total number of advice cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ImportRowsTotal counts CSV import outcomes per source file.
// Labels:
//   - collection: "incidents", "datasets", or "tickets"
//   - result: "imported" or "skipped"
var ImportRowsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_rows_total",
		Help:      "Total number of CSV rows processed by the bulk importer.",
	},
	[]string{"collection", "result"},
)

// AdvisorDuration measures end-to-end advisor request latency.
// Label:
//   - topic: advice topic
var AdvisorDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "advisor_duration_seconds",
		Help:      "Duration of advisor requests including upstream calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"topic"},
)
