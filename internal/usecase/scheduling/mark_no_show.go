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

// MarkNoShow: el staff registra que el cliente no se presentó a un
// turno confirmado.
type MarkNoShow struct {
	repo     domain.Repository
	notifier *notify.Dispatcher
	audit    *audit.Dispatcher
}

func NewMarkNoShow(repo domain.Repository, notifier *notify.Dispatcher, auditor *audit.Dispatcher) *MarkNoShow {
	return &MarkNoShow{repo: repo, notifier: notifier, audit: auditor}
}

func (uc *MarkNoShow) Execute(ctx context.Context, appointmentID uint, staffUserID uint) (*models.Appointment, error) {
	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	now := time.Now().In(timezone.Location(""))
	if err := domain.MarkNoShow(ap, now); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	notifyClient(uc.notifier, ap,
		"Turno Ausente",
		"Registramos que no pudiste asistir a tu turno. Escribinos para reprogramar.",
		models.NotifInfo,
	)

	uc.audit.Dispatch(audit.Event{
		UserID:   &staffUserID,
		Action:   "turno_ausente",
		Entity:   "turno",
		EntityID: &ap.ID,
	})

	return ap, nil
}
