package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/BohemiaEstudio/salon-scheduler/internal/audit"
	domain "github.com/BohemiaEstudio/salon-scheduler/internal/domain/scheduling"
	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
	"github.com/BohemiaEstudio/salon-scheduler/internal/notify"
	"github.com/BohemiaEstudio/salon-scheduler/internal/policy"
	"github.com/BohemiaEstudio/salon-scheduler/internal/timezone"
)

// ApproveAppointment: el staff acepta un turno solicitado; queda
// esperando la seña con plazo según la política.
type ApproveAppointment struct {
	repo     domain.Repository
	policies *policy.Store
	notifier *notify.Dispatcher
	audit    *audit.Dispatcher
	loc      *time.Location
}

func NewApproveAppointment(
	repo domain.Repository,
	policies *policy.Store,
	notifier *notify.Dispatcher,
	auditor *audit.Dispatcher,
) *ApproveAppointment {
	return &ApproveAppointment{
		repo:     repo,
		policies: policies,
		notifier: notifier,
		audit:    auditor,
		loc:      timezone.Location(""),
	}
}

func (uc *ApproveAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	staffUserID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	pol := uc.policies.Current()
	now := time.Now().In(uc.loc)

	if err := domain.Approve(ap, now, pol.DepositDeadlineHours); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	notifyClient(uc.notifier, ap,
		"Turno Aceptado",
		fmt.Sprintf("Tu turno del %s fue aceptado. ¡Subí tu seña antes de %d horas!", ap.Date, pol.DepositDeadlineHours),
		models.NotifAlert,
	)

	uc.audit.Dispatch(audit.Event{
		UserID:   &staffUserID,
		Action:   "turno_aprobado",
		Entity:   "turno",
		EntityID: &ap.ID,
	})

	return ap, nil
}
