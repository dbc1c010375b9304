package scheduling

import (
	"context"
	"time"

	"github.com/BohemiaEstudio/salon-scheduler/internal/audit"
	domain "github.com/BohemiaEstudio/salon-scheduler/internal/domain/scheduling"
	"github.com/BohemiaEstudio/salon-scheduler/internal/httperr"
	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
	"github.com/BohemiaEstudio/salon-scheduler/internal/notify"
	"github.com/BohemiaEstudio/salon-scheduler/internal/policy"
	"github.com/BohemiaEstudio/salon-scheduler/internal/timezone"
)

type ReprogramInput struct {
	AppointmentID uint
	NewDate       string
	NewStartTime  string
	Actor         domain.Actor
	ActorUserID   *uint
	// CallerClientID acota al cliente a sus propios turnos; nil para staff.
	CallerClientID *uint
}

type ReprogramAppointment struct {
	repo     domain.Repository
	policies *policy.Store
	notifier *notify.Dispatcher
	audit    *audit.Dispatcher
	loc      *time.Location
}

func NewReprogramAppointment(
	repo domain.Repository,
	policies *policy.Store,
	notifier *notify.Dispatcher,
	auditor *audit.Dispatcher,
) *ReprogramAppointment {
	return &ReprogramAppointment{
		repo:     repo,
		policies: policies,
		notifier: notifier,
		audit:    auditor,
		loc:      timezone.Location(""),
	}
}

// Execute aplica las reglas de reprogramación diferenciadas por
// estado y revalida el nuevo horario contra toda la agenda,
// excluyendo la ocupación previa del propio turno, dentro de la misma
// transacción que lo escribe.
func (uc *ReprogramAppointment) Execute(
	ctx context.Context,
	in ReprogramInput,
) (*models.Appointment, error) {

	date, err := time.ParseInLocation("2006-01-02", in.NewDate, uc.loc)
	if err != nil {
		return nil, httperr.ErrBusinessMsg("INVALID_DATE", "Formato de fecha inválido, use AAAA-MM-DD.")
	}
	if _, err := time.Parse("15:04", in.NewStartTime); err != nil {
		return nil, httperr.ErrBusinessMsg("INVALID_TIME", "Formato de hora inválido, use HH:MM.")
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	if in.Actor == domain.ActorClient {
		if in.CallerClientID == nil || *in.CallerClientID != ap.ClientID {
			return nil, httperr.ErrBusinessMsg("NOT_OWNER", "El turno no pertenece a este cliente.")
		}
	}

	serviceIDs := detailServiceIDs(ap.Details)
	services, err := uc.repo.GetServices(ctx, serviceIDs)
	if err != nil {
		return nil, err
	}

	duration := detailDuration(ap.Details)
	end := domain.AddMinutesHM(in.NewStartTime, duration)

	rules, err := uc.repo.ListRulesForWeekday(ctx, int(date.Weekday()))
	if err != nil {
		return nil, err
	}
	if !coveringRule(rules, date, services, ap.StaffID, in.NewStartTime, end) {
		return nil, httperr.ErrBusinessMsg(
			httperr.CodeSlotUnavailable,
			"No hay horario laboral que cubra el nuevo horario.",
		)
	}

	pol := uc.policies.Current()
	now := time.Now().In(uc.loc)

	err = uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		dup, err := tx.HasClientSlotDuplicate(ctx, ap.ClientID, in.NewDate, in.NewStartTime, ap.ID)
		if err != nil {
			return err
		}
		if dup {
			return httperr.ErrBusinessMsg(httperr.CodeDuplicateSlot, "Ya tenés un turno en esa fecha y hora.")
		}

		dayCtx, err := buildDayContext(ctx, tx, date, uc.loc, serviceIDs, true, now)
		if err != nil {
			return err
		}
		if !dayCtx.SlotAvailable(in.NewStartTime, duration, ap.StaffID, serviceIDs, ap.ID) {
			return httperr.ErrBusinessMsg(httperr.CodeSlotUnavailable, "El nuevo horario no está disponible.")
		}

		if err := domain.ApplyReprogram(
			ap,
			in.NewDate, in.NewStartTime, end,
			in.Actor,
			now, uc.loc,
			pol.MaxReprogramCount,
			pol.CancelCutoffHours,
		); err != nil {
			return err
		}

		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	notifyClient(uc.notifier, ap,
		"Turno Reprogramado",
		"Tu turno pasó al "+ap.Date+" a las "+ap.StartTime+".",
		models.NotifInfo,
	)

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorUserID,
		Action:   "turno_reprogramado",
		Entity:   "turno",
		EntityID: &ap.ID,
	})

	return ap, nil
}
