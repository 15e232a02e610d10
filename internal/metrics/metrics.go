package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	// BookingsCreated counts bookings accepted into the agenda, by origin
	// ("public" widget or "admin" panel).
	BookingsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "barbershop",
		Name:      "bookings_created_total",
		Help:      "Bookings created, labelled by origin.",
	}, []string{"origin"})

	// BookingConflicts counts create attempts rejected because the slot
	// was already taken.
	BookingConflicts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "barbershop",
		Name:      "booking_conflicts_total",
		Help:      "Booking attempts rejected by the overlap check.",
	})

	// StatusTransitions counts booking status changes by target status.
	StatusTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "barbershop",
		Name:      "booking_status_transitions_total",
		Help:      "Booking status transitions, labelled by new status.",
	}, []string{"status"})

	// SlotQueries counts availability lookups. The result label is one of
	// "open", "closed" or "invalid".
	SlotQueries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "barbershop",
		Name:      "slot_queries_total",
		Help:      "Day availability lookups, labelled by day status.",
	}, []string{"result"})
)

// Register installs the collectors into the default registry. Safe to
// call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			BookingsCreated,
			BookingConflicts,
			StatusTransitions,
			SlotQueries,
		)
	})
}
