package scheduling

import "github.com/BohemiaEstudio/salon-scheduler/internal/httperr"

// ===============================
// Estados del turno
// ===============================

type Status string

const (
	StatusRequested       Status = "solicitado"
	StatusAwaitingDeposit Status = "esperando_sena"
	StatusConfirmed       Status = "confirmado"
	StatusCompleted       Status = "realizado"
	StatusCancelled       Status = "cancelado"
	StatusNoShow          Status = "ausente"
)

// Terminal indica que el turno ya no admite transiciones.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// OccupyingStatuses son los estados que bloquean agenda y recursos.
func OccupyingStatuses() []string {
	return []string{
		string(StatusRequested),
		string(StatusAwaitingDeposit),
		string(StatusConfirmed),
	}
}

func Occupying(status string) bool {
	switch Status(status) {
	case StatusRequested, StatusAwaitingDeposit, StatusConfirmed:
		return true
	}
	return false
}

// ===============================
// Guardas de transición
// ===============================

func CanApprove(current Status) error {
	if current != StatusRequested {
		return httperr.ErrBusinessMsg(
			httperr.CodeInvalidState,
			"Solo un turno solicitado puede aprobarse.",
		)
	}
	return nil
}

func CanConfirmPayment(current Status) error {
	if current != StatusAwaitingDeposit {
		return httperr.ErrBusinessMsg(
			httperr.CodeInvalidState,
			"Solo un turno esperando seña puede confirmarse.",
		)
	}
	return nil
}

func CanCancel(current Status) error {
	if current.Terminal() {
		return httperr.ErrBusinessMsg(
			httperr.CodeInvalidState,
			"El turno ya está en un estado final.",
		)
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusinessMsg(
			httperr.CodeInvalidState,
			"Solo un turno confirmado puede marcarse como realizado.",
		)
	}
	return nil
}

func CanMarkNoShow(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusinessMsg(
			httperr.CodeInvalidState,
			"Solo un turno confirmado puede marcarse como ausente.",
		)
	}
	return nil
}

func InitialStatus() Status {
	return StatusRequested
}
