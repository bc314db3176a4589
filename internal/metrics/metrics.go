// Package metrics holds the Prometheus collectors of the fulfillment services.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	EventsConsumedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fulfillment_events_consumed_total",
			Help: "Total number of integration events consumed, by event type and outcome",
		},
		[]string{"type", "outcome"},
	)

	EventsPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fulfillment_events_published_total",
			Help: "Total number of integration events published, by event type",
		},
		[]string{"type"},
	)

	EventProcessingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fulfillment_event_processing_duration_seconds",
			Help:    "Duration of integration event processing",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"type"},
	)

	AvailableDrivers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "fulfillment_available_drivers",
			Help: "Number of drivers that are available and not reserved",
		},
	)

	ActiveDeliveries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "fulfillment_active_deliveries",
			Help: "Number of assignments in ASSIGNED or PICKED_UP",
		},
	)
)

// Register registers all collectors with reg.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		EventsConsumedTotal,
		EventsPublishedTotal,
		EventProcessingDuration,
		AvailableDrivers,
		ActiveDeliveries,
	)
}
