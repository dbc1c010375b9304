package scheduling

import (
	"context"
	"log"
	"time"

	domain "github.com/BohemiaEstudio/salon-scheduler/internal/domain/scheduling"
	"github.com/BohemiaEstudio/salon-scheduler/internal/httperr"
	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
)

// ListAppointments sirve la agenda del día para el staff y el
// historial de un cliente. Antes de cada lectura corre el barrido de
// vencidos, así la agenda nunca muestra como activo un turno que ya
// caducó.
type ListAppointments struct {
	repo  domain.Repository
	sweep *SweepExpired
}

func NewListAppointments(repo domain.Repository, sweep *SweepExpired) *ListAppointments {
	return &ListAppointments{repo: repo, sweep: sweep}
}

func (uc *ListAppointments) ForDate(ctx context.Context, date string) ([]models.Appointment, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, httperr.ErrBusinessMsg("INVALID_DATE", "Formato de fecha inválido, use AAAA-MM-DD.")
	}

	if _, err := uc.sweep.Execute(ctx); err != nil {
		log.Println("sweep on read error:", err)
	}

	return uc.repo.ListAppointmentsForDate(ctx, date)
}

func (uc *ListAppointments) ForClient(ctx context.Context, clientID uint) ([]models.Appointment, error) {
	if _, err := uc.sweep.Execute(ctx); err != nil {
		log.Println("sweep on read error:", err)
	}

	return uc.repo.ListAppointmentsForClient(ctx, clientID)
}
