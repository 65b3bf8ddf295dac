// Package metrics exposes the relay's Prometheus counters.
package metrics

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pixeltrack"

// Delivery and lookup results used as label values.
const (
	ResultDelivered = "delivered"
	ResultFailed    = "failed"

	ResultOK          = "ok"
	ResultNoToken     = "no_token"
	ResultPermission  = "permission"
	ResultTokenError  = "token_error"
	ResultEmpty       = "empty"
	ResultLookupError = "error"

	ResultWritten = "written"
	ResultDropped = "dropped"
)

var Registry = prometheus.NewRegistry()

var (
	EventsRecorded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_recorded_total",
		Help:      "Events persisted locally.",
	})

	EventDeliveries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_deliveries_total",
		Help:      "Conversions endpoint delivery attempts by result.",
	}, []string{"result"})

	DuplicateEvents = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "duplicate_events_total",
		Help:      "Submissions rejected because the eventId was already recorded.",
	})

	PixelLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pixel_lookups_total",
		Help:      "Pixel listings by outcome.",
	}, []string{"result"})

	AuditRecords = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_records_total",
		Help:      "Audit records handed to storage by result.",
	}, []string{"result"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		EventsRecorded,
		EventDeliveries,
		DuplicateEvents,
		PixelLookups,
		AuditRecords,
	)
}

// Handler serves the registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}
