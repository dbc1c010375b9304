package scheduling

import (
	"fmt"
	"time"

	"github.com/BohemiaEstudio/salon-scheduler/internal/httperr"
	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
)

// ===============================
// Actores
// ===============================

type Actor string

const (
	ActorClient Actor = "client"
	ActorStaff  Actor = "staff"
)

// ===============================
// Acciones de dominio
// ===============================

// Approve pasa un turno solicitado a esperando_sena y fija el plazo
// para acreditar la seña.
func Approve(ap *models.Appointment, now time.Time, depositDeadlineHours int) error {
	if err := CanApprove(Status(ap.Status)); err != nil {
		return err
	}

	deadline := now.Add(time.Duration(depositDeadlineHours) * time.Hour)
	ap.Status = string(StatusAwaitingDeposit)
	ap.PaymentDeadline = &deadline
	return nil
}

// ConfirmPayment acredita la seña y limpia el plazo de pago.
func ConfirmPayment(ap *models.Appointment, proofRef string) error {
	if err := CanConfirmPayment(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	ap.PaymentDeadline = nil
	if proofRef != "" {
		ap.PaymentProofRef = proofRef
	}
	return nil
}

// Cancel marca el turno como cancelado. La ventana de cancelación del
// cliente se valida antes con CheckClientWindow; acá solo la guarda de
// estado.
func Cancel(ap *models.Appointment, now time.Time, reason string) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelReason = reason
	ap.CancelledAt = &now
	ap.PaymentDeadline = nil
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

func MarkNoShow(ap *models.Appointment, now time.Time) error {
	if err := CanMarkNoShow(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusNoShow)
	return nil
}

// CheckClientWindow rechaza la operación de un cliente sobre un turno
// confirmado cuando faltan menos horas que el corte de la política.
// El staff está exento.
func CheckClientWindow(ap *models.Appointment, actor Actor, now time.Time, loc *time.Location, cutoffHours int) error {
	if actor != ActorClient || Status(ap.Status) != StatusConfirmed {
		return nil
	}

	scheduled, err := CombineDateTime(ap.Date, ap.StartTime, loc)
	if err != nil {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}

	remaining := scheduled.Sub(now).Hours()
	if remaining < float64(cutoffHours) {
		return httperr.ErrBusinessMsg(
			httperr.CodeTimeWindowExceeded,
			fmt.Sprintf("Se requieren %d horas de anticipación y quedan %.0f.", cutoffHours, remaining),
		)
	}
	return nil
}

// ApplyReprogram muta fecha/hora según el estado actual:
//   - solicitado: cambio en el lugar, sin tocar contador ni estado;
//   - esperando_sena: vuelve a solicitado y se limpia el plazo de seña
//     (la aprobación queda invalidada);
//   - confirmado: cuenta contra el límite de la política y, si la pide
//     el cliente, respeta la ventana de anticipación; la seña se
//     conserva.
//
// La disponibilidad del nuevo horario se valida afuera, contra el
// resto de la agenda y excluyendo la ocupación previa de este turno.
func ApplyReprogram(
	ap *models.Appointment,
	newDate, newStart, newEnd string,
	actor Actor,
	now time.Time,
	loc *time.Location,
	maxReprogram int,
	cutoffHours int,
) error {

	switch Status(ap.Status) {
	case StatusRequested:
		// sin restricciones

	case StatusAwaitingDeposit:
		ap.Status = string(StatusRequested)
		ap.PaymentDeadline = nil

	case StatusConfirmed:
		if err := CheckClientWindow(ap, actor, now, loc, cutoffHours); err != nil {
			return err
		}
		if ap.ReprogramCount >= maxReprogram {
			return httperr.ErrBusinessMsg(
				httperr.CodeReprogramLimitExceeded,
				fmt.Sprintf("Se alcanzó el máximo de %d reprogramaciones.", maxReprogram),
			)
		}
		ap.ReprogramCount++

	default:
		return httperr.ErrBusinessMsg(
			httperr.CodeInvalidState,
			"El turno no admite reprogramación en su estado actual.",
		)
	}

	ap.Date = newDate
	ap.StartTime = newStart
	ap.EndTime = newEnd
	return nil
}
