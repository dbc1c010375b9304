package notify

import (
	"log"

	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
)

// FollowUp es el gancho hacia el subsistema de rutinas/diagnóstico que
// genera cuidados post-servicio. Vive fuera de este servicio; el motor
// lo invoca fire-and-forget al marcar un turno como realizado y un
// fallo ahí nunca revierte la finalización.
type FollowUp interface {
	AppointmentCompleted(ap *models.Appointment, services []models.Service)
}

// LogFollowUp es el stub por defecto.
type LogFollowUp struct{}

func (LogFollowUp) AppointmentCompleted(ap *models.Appointment, services []models.Service) {
	log.Printf("turno %d realizado: aviso al subsistema de cuidados (%d servicios)", ap.ID, len(services))
}
