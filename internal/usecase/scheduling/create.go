package scheduling

import (
	"context"
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

type CreateAppointmentInput struct {
	ClientID   uint
	StaffID    *uint
	ServiceIDs []uint
	Date       string // "2006-01-02"
	StartTime  string // "15:04"
}

type CreateAppointment struct {
	repo     domain.Repository
	policies *policy.Store
	notifier *notify.Dispatcher
	audit    *audit.Dispatcher
	loc      *time.Location
}

func NewCreateAppointment(
	repo domain.Repository,
	policies *policy.Store,
	notifier *notify.Dispatcher,
	auditor *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		policies: policies,
		notifier: notifier,
		audit:    auditor,
		loc:      timezone.Location(""),
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Validaciones de entrada (antes de tocar estado)
	// --------------------------------------------------
	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusinessMsg(httperr.CodeServiceNotFound, "El turno necesita al menos un servicio.")
	}

	// Un pedido de cliente sin profesional asignado se rechaza, no se
	// asigna uno por defecto.
	if in.StaffID == nil {
		return nil, httperr.ErrBusinessMsg(httperr.CodeStaffRequired, "El turno necesita un profesional asignado.")
	}
	if _, err := uc.repo.GetStaff(ctx, *in.StaffID); err != nil {
		return nil, httperr.ErrBusinessMsg(httperr.CodeStaffRequired, "El profesional indicado no existe.")
	}

	client, err := uc.repo.GetClient(ctx, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusinessMsg("CLIENT_NOT_FOUND", "El cliente no existe.")
	}

	date, err := time.ParseInLocation("2006-01-02", in.Date, uc.loc)
	if err != nil {
		return nil, httperr.ErrBusinessMsg("INVALID_DATE", "Formato de fecha inválido, use AAAA-MM-DD.")
	}
	if _, err := time.Parse("15:04", in.StartTime); err != nil {
		return nil, httperr.ErrBusinessMsg("INVALID_TIME", "Formato de hora inválido, use HH:MM.")
	}

	services, err := uc.repo.GetServices(ctx, in.ServiceIDs)
	if err != nil || len(services) != len(in.ServiceIDs) {
		return nil, httperr.ErrBusinessMsg(httperr.CodeServiceNotFound, "Algún servicio pedido no existe o está inactivo.")
	}

	pol := uc.policies.Current()
	now := time.Now().In(uc.loc)

	if pol.BookingHorizonDays > 0 && date.After(now.AddDate(0, 0, pol.BookingHorizonDays)) {
		return nil, httperr.ErrBusinessMsg(
			httperr.CodeSlotUnavailable,
			"La fecha excede el horizonte de reservas.",
		)
	}

	duration := totalDuration(services)
	end := domain.AddMinutesHM(in.StartTime, duration)

	// --------------------------------------------------
	// 2. La regla horaria tiene que cubrir el intervalo
	// --------------------------------------------------
	rules, err := uc.repo.ListRulesForWeekday(ctx, int(date.Weekday()))
	if err != nil {
		return nil, err
	}
	if !coveringRule(rules, date, services, in.StaffID, in.StartTime, end) {
		return nil, httperr.ErrBusinessMsg(
			httperr.CodeSlotUnavailable,
			"No hay horario laboral que cubra ese servicio en esa fecha.",
		)
	}

	// --------------------------------------------------
	// 3. Leer-validar-escribir en una sola transacción
	// --------------------------------------------------
	ap := &models.Appointment{
		ClientID:  in.ClientID,
		StaffID:   in.StaffID,
		Date:      in.Date,
		StartTime: in.StartTime,
		EndTime:   end,
		Status:    string(domain.InitialStatus()),
	}
	for i := range services {
		ap.Details = append(ap.Details, models.AppointmentDetail{
			ServiceID:   services[i].ID,
			Price:       services[i].BasePrice,
			DurationMin: domain.ServiceDuration(&services[i]),
		})
	}

	err = uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		dup, err := tx.HasClientSlotDuplicate(ctx, in.ClientID, in.Date, in.StartTime, 0)
		if err != nil {
			return err
		}
		if dup {
			return httperr.ErrBusinessMsg(httperr.CodeDuplicateSlot, "Ya tenés un turno en esa fecha y hora.")
		}

		dayCtx, err := buildDayContext(ctx, tx, date, uc.loc, in.ServiceIDs, true, now)
		if err != nil {
			return err
		}
		if !dayCtx.SlotAvailable(in.StartTime, duration, in.StaffID, in.ServiceIDs, 0) {
			return httperr.ErrBusinessMsg(httperr.CodeSlotUnavailable, "El horario ya no está disponible.")
		}

		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Efectos posteriores (mejor esfuerzo)
	// --------------------------------------------------
	metrics.AppointmentsCreated.Inc()

	ap.Client = *client
	notifyStaffNewRequest(ctx, uc.repo, uc.notifier, ap, serviceNames(services))

	apID := ap.ID
	uc.audit.Dispatch(audit.Event{
		Action:   "turno_creado",
		Entity:   "turno",
		EntityID: &apID,
	})

	return ap, nil
}
