// Package metrics defines and registers the custom Prometheus metrics of the
// delivery notes API. It is the single source of truth for metric names,
// labels and help strings.
//
// All collectors register with the default registry on package init via
// promauto; /metrics exposes them together with the echo request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "deliverynotes"

// ── Signing metrics ───────────────────────────────────────────────────────────

// SignedTotal counts delivery notes that completed the signing workflow.
var SignedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signed_total",
		Help:      "Total number of delivery notes signed.",
	},
)

// SignFailuresTotal counts signing attempts that stopped early.
// Label:
//   - step: "load", "guard", "upload_signature", "render", "upload_pdf" or "persist"
var SignFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_failures_total",
		Help:      "Total number of signing attempts that failed, by workflow step.",
	},
	[]string{"step"},
)

// SignDuration measures a whole signing attempt, successful or not.
var SignDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "sign_duration_seconds",
		Help:      "Duration of the signing workflow from load to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Storage metrics ───────────────────────────────────────────────────────────

// UploadsTotal counts blob uploads.
// Labels:
//   - backend: "pinata", "s3" or "cache"
//   - result: "ok" or "error"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of blob uploads, by backend and result.",
	},
	[]string{"backend", "result"},
)

// ── Lifecycle metrics ─────────────────────────────────────────────────────────

// LifecycleTotal counts soft-delete transitions and purges.
// Labels:
//   - entity: "user", "client", "project" or "deliverynote"
//   - action: "soft_delete", "restore" or "hard_delete"
var LifecycleTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lifecycle_total",
		Help:      "Total number of lifecycle transitions applied, by entity and action.",
	},
	[]string{"entity", "action"},
)
