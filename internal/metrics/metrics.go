// Package metrics defines and registers all custom Prometheus metrics for the
// employee portal. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry on package init and
// are exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Directory API metrics ─────────────────────────────────────────────────────

// DirectoryRequestsTotal counts calls made to the Directory API.
// Labels:
//   - operation: "login", "create", "fetch_one", "fetch_all", "update", "delete", "update_credentials"
//   - outcome: "ok" or the failure kind (e.g. "authorization", "server_validation", "transport")
var DirectoryRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "directory_requests_total",
		Help:      "Total number of Directory API calls, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// DirectoryRequestDuration measures Directory API round trips.
// Label:
//   - operation: same values as DirectoryRequestsTotal
var DirectoryRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "directory_request_duration_seconds",
		Help:      "Duration of Directory API calls as seen by the portal.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"operation"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// GuardDecisionsTotal counts access checks on protected pages.
// Labels:
//   - role: the role the page requires
//   - result: "allowed", "no_session", "expired", "role_mismatch"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of access checks, by required role and result.",
	},
	[]string{"role", "result"},
)

// LoginsTotal counts login attempts.
// Labels:
//   - role: "ADMIN" or "EMPLOYEE"
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// SubmissionsRejectedTotal counts form submits refused because the same form
// was already being submitted from the same browser.
// Label:
//   - form: "admin" or "profile"
var SubmissionsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_rejected_total",
		Help:      "Total number of duplicate form submissions rejected while one was in flight.",
	},
	[]string{"form"},
)
