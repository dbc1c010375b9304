package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/BohemiaEstudio/salon-scheduler/internal/audit"
	domain "github.com/BohemiaEstudio/salon-scheduler/internal/domain/scheduling"
	"github.com/BohemiaEstudio/salon-scheduler/internal/httperr"
	"github.com/BohemiaEstudio/salon-scheduler/internal/metrics"
	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
	"github.com/BohemiaEstudio/salon-scheduler/internal/notify"
	"github.com/BohemiaEstudio/salon-scheduler/internal/policy"
	"github.com/BohemiaEstudio/salon-scheduler/internal/timezone"
)

type CancelInput struct {
	AppointmentID uint
	Reason        string
	Actor         domain.Actor
	ActorUserID   *uint
	// CallerClientID acota al cliente a sus propios turnos; nil para staff.
	CallerClientID *uint
}

type CancelOutput struct {
	Appointment models.Appointment `json:"appointment"`
	Offers      OfferSummary       `json:"offers"`
}

// CancelAppointment cancela y después intenta recuperar el hueco
// liberado ofreciéndolo a la lista de espera y a turnos futuros.
type CancelAppointment struct {
	repo      domain.Repository
	policies  *policy.Store
	optimizer *Optimizer
	notifier  *notify.Dispatcher
	audit     *audit.Dispatcher
	loc       *time.Location
}

func NewCancelAppointment(
	repo domain.Repository,
	policies *policy.Store,
	optimizer *Optimizer,
	notifier *notify.Dispatcher,
	auditor *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:      repo,
		policies:  policies,
		optimizer: optimizer,
		notifier:  notifier,
		audit:     auditor,
		loc:       timezone.Location(""),
	}
}

func (uc *CancelAppointment) Execute(ctx context.Context, in CancelInput) (*CancelOutput, error) {
	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	if in.Actor == domain.ActorClient {
		if in.CallerClientID == nil || *in.CallerClientID != ap.ClientID {
			return nil, httperr.ErrBusinessMsg("NOT_OWNER", "El turno no pertenece a este cliente.")
		}
	}

	pol := uc.policies.Current()
	now := time.Now().In(uc.loc)

	// La ventana mínima rige solo para el cliente; el staff cancela
	// cuando hace falta.
	if err := domain.CheckClientWindow(ap, in.Actor, now, uc.loc, pol.CancelCutoffHours); err != nil {
		return nil, err
	}

	// Foto del hueco antes de escribir: el optimizador corre después
	// de persistir la cancelación, con estos datos.
	freed := FreedSlot{
		Date:       ap.Date,
		StartTime:  ap.StartTime,
		ServiceIDs: detailServiceIDs(ap.Details),
		StaffID:    ap.StaffID,
		ClientID:   ap.ClientID,
	}
	wasOccupying := domain.Occupying(ap.Status)

	if err := domain.Cancel(ap, now, in.Reason); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	metrics.AppointmentsCancelled.Inc()

	notifyClient(uc.notifier, ap,
		"Turno Cancelado",
		fmt.Sprintf("Tu turno del %s a las %s fue cancelado.", ap.Date, ap.StartTime),
		models.NotifInfo,
	)

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorUserID,
		Action:   "turno_cancelado",
		Entity:   "turno",
		EntityID: &ap.ID,
	})

	out := &CancelOutput{Appointment: *ap}

	// El recupero solo aplica si la cancelación liberó agenda.
	if wasOccupying {
		out.Offers = uc.optimizer.Run(ctx, freed)
	}

	return out, nil
}
