package scheduling

import (
	"context"
	"time"

	"github.com/BohemiaEstudio/salon-scheduler/internal/audit"
	domain "github.com/BohemiaEstudio/salon-scheduler/internal/domain/scheduling"
	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
	"github.com/BohemiaEstudio/salon-scheduler/internal/notify"
	"github.com/BohemiaEstudio/salon-scheduler/internal/timezone"
)

// CompleteAppointment: el staff marca el servicio como realizado y se
// dispara el gancho de seguimiento post-servicio.
type CompleteAppointment struct {
	repo     domain.Repository
	notifier *notify.Dispatcher
	followUp notify.FollowUp
	audit    *audit.Dispatcher
	loc      *time.Location
}

func NewCompleteAppointment(
	repo domain.Repository,
	notifier *notify.Dispatcher,
	followUp notify.FollowUp,
	auditor *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:     repo,
		notifier: notifier,
		followUp: followUp,
		audit:    auditor,
		loc:      timezone.Location(""),
	}
}

func (uc *CompleteAppointment) Execute(ctx context.Context, appointmentID uint, staffUserID uint) (*models.Appointment, error) {
	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	now := time.Now().In(uc.loc)
	if err := domain.Complete(ap, now); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	notifyClient(uc.notifier, ap,
		"¡Servicio Finalizado!",
		"¡Gracias por visitarnos! Esperamos que disfrutes tu nuevo look.",
		models.NotifInfo,
	)

	services, err := uc.repo.GetServices(ctx, detailServiceIDs(ap.Details))
	if err == nil {
		uc.followUp.AppointmentCompleted(ap, services)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &staffUserID,
		Action:   "turno_realizado",
		Entity:   "turno",
		EntityID: &ap.ID,
	})

	return ap, nil
}
