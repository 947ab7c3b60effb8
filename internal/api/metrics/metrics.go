// Package metrics defines and registers all custom Prometheus metrics for the
// reservations API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "reservations"

// ReservationsCreatedTotal counts reservations that passed the admission
// check and were committed.
var ReservationsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Total number of reservations successfully created.",
	},
)

// AdmissionRejectedTotal counts create/update requests rejected by an
// admission rule.
// Label:
//   - reason: "duplicate_date", "invalid_time", "table_mismatch", or "no_tables"
var AdmissionRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admission_rejected_total",
		Help:      "Total number of reservation requests rejected by an admission rule.",
	},
	[]string{"reason"},
)

// AdmissionDuration measures how long the admission check plus commit takes.
// Label:
//   - outcome: "accepted" or "rejected"
var AdmissionDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "admission_duration_seconds",
		Help:      "Duration of the reservation admission check from request to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)

// UsersCreatedTotal counts newly registered users.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created.",
	},
)
