package scheduling

import (
	"context"

	"github.com/BohemiaEstudio/salon-scheduler/internal/audit"
	domain "github.com/BohemiaEstudio/salon-scheduler/internal/domain/scheduling"
	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
	"github.com/BohemiaEstudio/salon-scheduler/internal/notify"
)

// ConfirmPayment: el staff acredita la seña; el turno queda confirmado
// y el plazo de pago se limpia.
type ConfirmPayment struct {
	repo     domain.Repository
	notifier *notify.Dispatcher
	audit    *audit.Dispatcher
}

func NewConfirmPayment(
	repo domain.Repository,
	notifier *notify.Dispatcher,
	auditor *audit.Dispatcher,
) *ConfirmPayment {
	return &ConfirmPayment{
		repo:     repo,
		notifier: notifier,
		audit:    auditor,
	}
}

func (uc *ConfirmPayment) Execute(
	ctx context.Context,
	appointmentID uint,
	staffUserID uint,
	proofRef string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.ConfirmPayment(ap, proofRef); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	notifyClient(uc.notifier, ap,
		"Turno Confirmado",
		"Seña recibida. Tu turno está confirmado. Te esperamos.",
		models.NotifInfo,
	)

	uc.audit.Dispatch(audit.Event{
		UserID:   &staffUserID,
		Action:   "sena_confirmada",
		Entity:   "turno",
		EntityID: &ap.ID,
	})

	return ap, nil
}
