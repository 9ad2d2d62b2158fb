// Package metrics defines and registers all custom Prometheus metrics for the
// askdesk API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "askdesk"

// ── Ask metrics ───────────────────────────────────────────────────────────────

// AskRequestsTotal counts /ask requests by outcome.
// Label:
//   - outcome: "answered", "no_data", "bad_input" or "synthesis_failed"
var AskRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ask_requests_total",
		Help:      "Total number of questions handled, by outcome.",
	},
	[]string{"outcome"},
)

// RetrievalDuration measures a single retriever call.
// Label:
//   - retriever: the registry name of the backend (e.g. "mock", "flat")
var RetrievalDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "retrieval_duration_seconds",
		Help:      "Duration of a single retriever call.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"retriever"},
)

// RetrievalErrorsTotal counts retriever calls that failed and were dropped.
var RetrievalErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "retrieval_errors_total",
		Help:      "Total number of failed retriever calls, by retriever.",
	},
	[]string{"retriever"},
)

// RetrievedSnippetsTotal counts snippets contributed by each retriever.
var RetrievedSnippetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "retrieved_snippets_total",
		Help:      "Total number of snippets returned, by retriever.",
	},
	[]string{"retriever"},
)

// SynthesisDuration measures LLM completion calls made by the synthesizer.
// Label:
//   - outcome: "ok" or "error"
var SynthesisDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "synthesis_duration_seconds",
		Help:      "Duration of LLM completion calls.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
	},
	[]string{"outcome"},
)

// ── Job intake metrics ────────────────────────────────────────────────────────

// JobMatchesTotal counts resume entities matched against job descriptions.
// Label:
//   - kind: "skill", "experience" or "project"
var JobMatchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_matches_total",
		Help:      "Total number of resume entities matched, by kind.",
	},
	[]string{"kind"},
)

// ExplanationFailuresTotal counts matches returned without an explanation.
var ExplanationFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "explanation_failures_total",
		Help:      "Total number of match explanations that failed and were degraded.",
	},
)

// ExplainQueueDepth tracks explanation tasks waiting for a free worker.
var ExplainQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "explain_queue_depth",
		Help:      "Current number of explanation tasks waiting for a worker.",
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts /token requests.
// Label:
//   - result: "success", "invalid_credentials", "throttled" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
