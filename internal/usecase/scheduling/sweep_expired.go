package scheduling

import (
	"context"
	"log"
	"time"

	domain "github.com/BohemiaEstudio/salon-scheduler/internal/domain/scheduling"
	"github.com/BohemiaEstudio/salon-scheduler/internal/metrics"
	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
	"github.com/BohemiaEstudio/salon-scheduler/internal/notify"
	"github.com/BohemiaEstudio/salon-scheduler/internal/timezone"
)

// SweepExpired cancela turnos solicitado/esperando_sena cuya hora ya
// pasó. Es idempotente: lo invocan las lecturas de agenda de forma
// oportunista y también puede colgarse de un cron externo. Entre
// barridos un turno vencido puede verse como activo; ninguna
// transición depende de que el barrido ya haya corrido.
type SweepExpired struct {
	repo     domain.Repository
	notifier *notify.Dispatcher
	loc      *time.Location
}

func NewSweepExpired(repo domain.Repository, notifier *notify.Dispatcher) *SweepExpired {
	return &SweepExpired{
		repo:     repo,
		notifier: notifier,
		loc:      timezone.Location(""),
	}
}

func (uc *SweepExpired) Execute(ctx context.Context) (int, error) {
	pending, err := uc.repo.ListPendingAppointments(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now().In(uc.loc)
	ids := domain.ExpiredIDs(now, uc.loc, pending)

	swept := 0
	for _, id := range ids {
		ap, err := uc.repo.GetAppointment(ctx, id)
		if err != nil {
			log.Println("sweep: load error:", err)
			continue
		}

		if err := domain.Cancel(ap, now, domain.ExpiredReason); err != nil {
			// otro request lo resolvió entre el listado y acá
			continue
		}

		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			log.Println("sweep: update error:", err)
			continue
		}

		metrics.AppointmentsCancelled.Inc()
		notifyClient(uc.notifier, ap,
			"Turno Cancelado",
			"El turno del "+ap.Date+" venció sin confirmación y fue cancelado.",
			models.NotifAlert,
		)
		swept++
	}

	return swept, nil
}
