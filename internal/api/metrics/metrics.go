// Package metrics defines the custom Prometheus metrics of the designdesk
// API. HTTP request metrics come from the echoprometheus middleware; the
// collectors here cover authentication and project activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "designdesk"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - role: "designer" or "client"
//   - outcome: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by role and outcome.",
	},
	[]string{"role", "outcome"},
)

// RegistrationsTotal counts accounts created.
// Label:
//   - role: "designer" or "client"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)

// LogoutsTotal counts logouts.
var LogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of logouts.",
	},
)

// SessionRestoresTotal counts session cookie restores on incoming requests.
// Label:
//   - result: the restored role, or "anonymous"
var SessionRestoresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_restores_total",
		Help:      "Total number of requests by restored session role.",
	},
	[]string{"result"},
)

// ── Project metrics ───────────────────────────────────────────────────────────

// ProjectsCreatedTotal counts projects created by designers.
var ProjectsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects created.",
	},
)

// UploadsTotal counts stored project files.
// Label:
//   - kind: "reference", "drawing", "gallery" or "whiteboard"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of project files stored, by kind.",
	},
	[]string{"kind"},
)

// BudgetPDFDuration measures how long a budget statement takes to produce.
var BudgetPDFDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "budget_pdf_duration_seconds",
		Help:      "Duration of budget statement rendering.",
		Buckets:   prometheus.DefBuckets,
	},
)

// FeedbackTotal counts client feedback submissions.
// Label:
//   - status: the approval status submitted with the feedback
var FeedbackTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feedback_total",
		Help:      "Total number of client feedback submissions, by approval status.",
	},
	[]string{"status"},
)
