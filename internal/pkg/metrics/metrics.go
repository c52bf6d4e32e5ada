// Package metrics exposes Prometheus counters for dispatch outcomes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// OffersCreated counts assignments persisted in offered state.
	OffersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "geodispatch",
		Subsystem: "dispatch",
		Name:      "offers_created_total",
		Help:      "Total courier offers created",
	})

	// OffersExpired counts offers that lapsed without acceptance.
	OffersExpired = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "geodispatch",
		Subsystem: "dispatch",
		Name:      "offers_expired_total",
		Help:      "Total offers expired without acceptance",
	})

	// NoCourierAvailable counts dispatch attempts that found no eligible courier.
	NoCourierAvailable = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "geodispatch",
		Subsystem: "dispatch",
		Name:      "no_courier_available_total",
		Help:      "Dispatch attempts with no eligible courier",
	})

	// ReassignmentsExhausted counts orders whose offer attempts ran out.
	ReassignmentsExhausted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "geodispatch",
		Subsystem: "dispatch",
		Name:      "reassignments_exhausted_total",
		Help:      "Orders left undispatched after the maximum offer attempts",
	})

	// ShiftsForceClosed counts shifts closed by the watchdog.
	ShiftsForceClosed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "geodispatch",
		Subsystem: "shifts",
		Name:      "force_closed_total",
		Help:      "Shifts force-closed past their expected end time",
	})

	// StaleOrdersCancelled counts pending orders cancelled by timeout.
	StaleOrdersCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "geodispatch",
		Subsystem: "orders",
		Name:      "stale_cancelled_total",
		Help:      "Pending orders auto-cancelled after the timeout window",
	})
)

// Handler returns the HTTP handler serving the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
