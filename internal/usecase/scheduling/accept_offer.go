package scheduling

import (
	"context"
	"encoding/json"
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

// AcceptOffer resuelve una oferta de recupero. Gana el primero que
// acepta: la oferta se consume dentro de la misma transacción que
// revalida y escribe, así una segunda aceptación del mismo hueco se
// rechaza limpia con SLOT_NO_LONGER_AVAILABLE.
type AcceptOffer struct {
	repo     domain.Repository
	policies *policy.Store
	notifier *notify.Dispatcher
	audit    *audit.Dispatcher
	loc      *time.Location
}

func NewAcceptOffer(
	repo domain.Repository,
	policies *policy.Store,
	notifier *notify.Dispatcher,
	auditor *audit.Dispatcher,
) *AcceptOffer {
	return &AcceptOffer{
		repo:     repo,
		policies: policies,
		notifier: notifier,
		audit:    auditor,
		loc:      timezone.Location(""),
	}
}

func (uc *AcceptOffer) Execute(ctx context.Context, token string, clientID uint) (*models.Appointment, error) {
	offer, err := uc.repo.GetOfferByToken(ctx, token)
	if err != nil {
		return nil, httperr.ErrBusinessMsg(httperr.CodeSlotNoLongerAvailable, "La oferta no existe o ya no está vigente.")
	}
	if offer.ClientID == nil || *offer.ClientID != clientID {
		return nil, httperr.ErrBusinessMsg(httperr.CodeSlotNoLongerAvailable, "La oferta no pertenece a este cliente.")
	}
	if offer.ConsumedAt != nil {
		return nil, httperr.ErrBusinessMsg(httperr.CodeSlotNoLongerAvailable, "El turno ofrecido ya fue tomado.")
	}

	var payload OfferPayload
	if err := json.Unmarshal([]byte(offer.OfferPayload), &payload); err != nil {
		return nil, httperr.ErrBusinessMsg(httperr.CodeSlotNoLongerAvailable, "La oferta está dañada.")
	}

	date, err := time.ParseInLocation("2006-01-02", payload.Date, uc.loc)
	if err != nil {
		return nil, httperr.ErrBusinessMsg(httperr.CodeSlotNoLongerAvailable, "La oferta está dañada.")
	}

	services, err := uc.repo.GetServices(ctx, payload.ServiceIDs)
	if err != nil || len(services) != len(payload.ServiceIDs) {
		return nil, httperr.ErrBusinessMsg(httperr.CodeServiceNotFound, "Algún servicio de la oferta ya no existe.")
	}

	duration := totalDuration(services)
	end := domain.AddMinutesHM(payload.StartTime, duration)
	now := time.Now().In(uc.loc)

	rules, err := uc.repo.ListRulesForWeekday(ctx, int(date.Weekday()))
	if err != nil {
		return nil, err
	}
	if !coveringRule(rules, date, services, payload.StaffID, payload.StartTime, end) {
		return nil, httperr.ErrBusinessMsg(httperr.CodeSlotNoLongerAvailable, "El horario ofrecido ya no está habilitado.")
	}

	var result *models.Appointment

	err = uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		// releer dentro de la transacción: primero en aceptar gana
		cur, err := tx.GetOfferByToken(ctx, token)
		if err != nil {
			return err
		}
		if cur.ConsumedAt != nil {
			return httperr.ErrBusinessMsg(httperr.CodeSlotNoLongerAvailable, "El turno ofrecido ya fue tomado.")
		}

		var excludeID uint
		var moved *models.Appointment

		if payload.Kind == "advance" {
			moved, err = tx.GetAppointment(ctx, payload.AppointmentID)
			if err != nil {
				return httperr.ErrBusinessMsg(httperr.CodeSlotNoLongerAvailable, "El turno a adelantar ya no existe.")
			}
			if moved.ClientID != clientID || !domain.Occupying(moved.Status) {
				return httperr.ErrBusinessMsg(httperr.CodeSlotNoLongerAvailable, "El turno a adelantar ya no está activo.")
			}
			excludeID = moved.ID
		}

		dayCtx, err := buildDayContext(ctx, tx, date, uc.loc, payload.ServiceIDs, true, now)
		if err != nil {
			return err
		}
		if !dayCtx.SlotAvailable(payload.StartTime, duration, payload.StaffID, payload.ServiceIDs, excludeID) {
			return httperr.ErrBusinessMsg(httperr.CodeSlotNoLongerAvailable, "El turno ofrecido ya fue tomado.")
		}

		switch payload.Kind {
		case "waitlist":
			ap := &models.Appointment{
				ClientID:  clientID,
				StaffID:   payload.StaffID,
				Date:      payload.Date,
				StartTime: payload.StartTime,
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
			if err := tx.CreateAppointment(ctx, ap); err != nil {
				return err
			}
			if payload.WaitlistEntryID != 0 {
				if err := tx.DeactivateWaitlistEntry(ctx, payload.WaitlistEntryID); err != nil {
					return err
				}
			}
			result = ap

		case "advance":
			// adelantar mueve el turno conservando estado y contador;
			// no es una reprogramación pedida por el cliente
			moved.Date = payload.Date
			moved.StartTime = payload.StartTime
			moved.EndTime = end
			if err := tx.UpdateAppointment(ctx, moved); err != nil {
				return err
			}
			result = moved

		default:
			return httperr.ErrBusinessMsg(httperr.CodeSlotNoLongerAvailable, "La oferta está dañada.")
		}

		return tx.ConsumeOffer(ctx, cur.ID, now)
	})
	if err != nil {
		return nil, err
	}

	metrics.OffersAccepted.Inc()

	notifyClient(uc.notifier, result,
		"Turno Tomado",
		fmt.Sprintf("Tomaste el turno del %s a las %s.", result.Date, result.StartTime),
		models.NotifInfo,
	)

	resultID := result.ID
	uc.audit.Dispatch(audit.Event{
		Action:   "oferta_aceptada",
		Entity:   "turno",
		EntityID: &resultID,
	})

	return result, nil
}
