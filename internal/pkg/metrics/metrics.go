// Package metrics defines and registers the custom Prometheus metrics of the
// zapatillas API. Metrics are created with promauto and therefore registered
// with the default registry on package initialisation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "zapatillas"

// ── Authentication ────────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "duplicate" or "password_mismatch"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts. The reason label is server-side only;
// clients always see a generic invalid-credentials answer.
// Label:
//   - result: "success", "unknown_user", "bad_password", "disabled" or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRejectionsTotal counts bearer tokens rejected by the request gate.
// Label:
//   - reason: "malformed", "invalid_signature" or "expired"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of presented bearer tokens that failed validation.",
	},
	[]string{"reason"},
)

// ── Authorization ─────────────────────────────────────────────────────────────

// AuthorizationDecisionsTotal counts policy decisions.
// Labels:
//   - requirement: "public", "authenticated", "role", "owner_or_role"
//   - outcome: "allow", "unauthenticated", "forbidden"
var AuthorizationDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_decisions_total",
		Help:      "Total number of authorization decisions, by requirement and outcome.",
	},
	[]string{"requirement", "outcome"},
)

// ── Audit trail ───────────────────────────────────────────────────────────────

// AuditEventsTotal counts processed account events.
// Labels:
//   - type: the account event type (e.g. "registered")
//   - result: "ok", "store_failed", "publish_failed", "dropped"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of account audit events, by type and result.",
	},
	[]string{"type", "result"},
)

// AuditQueueDepth tracks pending events in each dispatcher worker channel.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of account events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
