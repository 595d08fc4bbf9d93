// Package metrics defines all custom Prometheus metrics for the Manvaasam
// platform API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register themselves with the default registry at
// package load; the /metrics endpoint is wired by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "manvaasam"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - role: the role of the account, or "unknown" when the account failed to resolve
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// GuardDecisionsTotal counts route-guard outcomes.
// Label:
//   - outcome: "pass", "redirect_login", "redirect_dashboard", "prefetch_skip"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by outcome.",
	},
	[]string{"outcome"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts newly created orders.
// Label:
//   - channel: "customer" or "restaurant"
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created, by channel.",
	},
	[]string{"channel"},
)

// ── Delivery event metrics ────────────────────────────────────────────────────

// DeliveryEventsProcessedTotal counts events that completed processing successfully.
// Labels:
//   - status: the new order status applied by the event (e.g. "out_for_delivery")
//   - source: the event source reported by the sender (e.g. "driver_app")
var DeliveryEventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "delivery_events_processed_total",
		Help:      "Total number of delivery events successfully processed.",
	},
	[]string{"status", "source"},
)

// DeliveryEventsErrorsTotal counts events that failed processing.
// Label:
//   - reason: short description of the failure (e.g. "process_failed")
var DeliveryEventsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "delivery_events_errors_total",
		Help:      "Total number of delivery events that failed processing.",
	},
	[]string{"reason"},
)

// DeliveryEventsDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new event, processed)
var DeliveryEventsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "delivery_events_dedup_total",
		Help:      "Total number of deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// DeliveryQueueDepth tracks the current number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var DeliveryQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "delivery_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// DeliveryEventDuration measures how long a single event takes to process end-to-end.
// Label:
//   - status: the resulting order status, or "error" on failure
var DeliveryEventDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "delivery_event_duration_seconds",
		Help:      "Duration of delivery event processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"status"},
)
