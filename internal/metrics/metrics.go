package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AvailabilityQueries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salon_availability_queries_total",
		Help: "Consultas de disponibilidad atendidas.",
	})

	AppointmentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salon_appointments_created_total",
		Help: "Turnos creados.",
	})

	AppointmentsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salon_appointments_cancelled_total",
		Help: "Turnos cancelados (incluye vencimientos automáticos).",
	})

	ReclamationOffers = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salon_reclamation_offers_total",
		Help: "Ofertas de recupero emitidas tras cancelaciones.",
	})

	OffersAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salon_reclamation_offers_accepted_total",
		Help: "Ofertas de recupero aceptadas con éxito.",
	})
)
