package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BohemiaEstudio/salon-scheduler/internal/httperr"
	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
)

func testLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	require.NoError(t, err)
	return loc
}

func assertBusinessCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	be, ok := httperr.AsBusiness(err)
	require.True(t, ok, "expected business error, got %v", err)
	assert.Equal(t, code, be.Code)
}

func TestApprove(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	ap := &models.Appointment{Status: string(StatusRequested)}

	require.NoError(t, Approve(ap, now, 24))
	assert.Equal(t, string(StatusAwaitingDeposit), ap.Status)
	require.NotNil(t, ap.PaymentDeadline)
	assert.Equal(t, now.Add(24*time.Hour), *ap.PaymentDeadline)

	// segunda aprobación rechazada
	assertBusinessCode(t, Approve(ap, now, 24), httperr.CodeInvalidState)
}

func TestConfirmPayment(t *testing.T) {
	deadline := time.Now()
	ap := &models.Appointment{
		Status:          string(StatusAwaitingDeposit),
		PaymentDeadline: &deadline,
	}

	require.NoError(t, ConfirmPayment(ap, "comprobante-123"))
	assert.Equal(t, string(StatusConfirmed), ap.Status)
	assert.Nil(t, ap.PaymentDeadline)
	assert.Equal(t, "comprobante-123", ap.PaymentProofRef)

	ap2 := &models.Appointment{Status: string(StatusRequested)}
	assertBusinessCode(t, ConfirmPayment(ap2, ""), httperr.CodeInvalidState)
}

func TestCancel_TerminalGuard(t *testing.T) {
	now := time.Now()

	for _, status := range []Status{StatusRequested, StatusAwaitingDeposit, StatusConfirmed} {
		ap := &models.Appointment{Status: string(status)}
		require.NoError(t, Cancel(ap, now, "motivo"))
		assert.Equal(t, string(StatusCancelled), ap.Status)
		assert.Equal(t, "motivo", ap.CancelReason)
		require.NotNil(t, ap.CancelledAt)
	}

	for _, status := range []Status{StatusCancelled, StatusCompleted, StatusNoShow} {
		ap := &models.Appointment{Status: string(status)}
		assertBusinessCode(t, Cancel(ap, now, "motivo"), httperr.CodeInvalidState)
	}
}

func TestCompleteAndNoShow(t *testing.T) {
	now := time.Now()

	ap := &models.Appointment{Status: string(StatusConfirmed)}
	require.NoError(t, Complete(ap, now))
	assert.Equal(t, string(StatusCompleted), ap.Status)
	require.NotNil(t, ap.CompletedAt)

	ap2 := &models.Appointment{Status: string(StatusConfirmed)}
	require.NoError(t, MarkNoShow(ap2, now))
	assert.Equal(t, string(StatusNoShow), ap2.Status)

	// solo desde confirmado
	for _, status := range []Status{StatusRequested, StatusAwaitingDeposit, StatusCancelled} {
		ap := &models.Appointment{Status: string(status)}
		assertBusinessCode(t, Complete(ap, now), httperr.CodeInvalidState)
		ap.Status = string(status)
		assertBusinessCode(t, MarkNoShow(ap, now), httperr.CodeInvalidState)
	}
}

func TestCheckClientWindow(t *testing.T) {
	loc := testLoc(t)
	ap := &models.Appointment{
		Status:    string(StatusConfirmed),
		Date:      "2026-09-10",
		StartTime: "15:00",
	}

	// faltan ~63 horas: dentro de la ventana de 48
	now := time.Date(2026, 9, 7, 23, 0, 0, 0, loc)
	assert.NoError(t, CheckClientWindow(ap, ActorClient, now, loc, 48))

	// faltan ~15 horas: corto
	now = time.Date(2026, 9, 10, 0, 0, 0, 0, loc)
	assertBusinessCode(t, CheckClientWindow(ap, ActorClient, now, loc, 48), httperr.CodeTimeWindowExceeded)

	// el staff está exento
	assert.NoError(t, CheckClientWindow(ap, ActorStaff, now, loc, 48))

	// la ventana solo rige para confirmados
	ap2 := &models.Appointment{Status: string(StatusRequested), Date: "2026-09-10", StartTime: "15:00"}
	assert.NoError(t, CheckClientWindow(ap2, ActorClient, now, loc, 48))
}

func TestApplyReprogram_Requested(t *testing.T) {
	loc := testLoc(t)
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, loc)

	ap := &models.Appointment{
		Status:    string(StatusRequested),
		Date:      "2026-09-10",
		StartTime: "15:00",
		EndTime:   "16:00",
	}

	require.NoError(t, ApplyReprogram(ap, "2026-09-11", "10:00", "11:00", ActorClient, now, loc, 1, 48))
	assert.Equal(t, string(StatusRequested), ap.Status)
	assert.Equal(t, 0, ap.ReprogramCount)
	assert.Equal(t, "2026-09-11", ap.Date)
	assert.Equal(t, "10:00", ap.StartTime)
	assert.Equal(t, "11:00", ap.EndTime)
}

func TestApplyReprogram_AwaitingDepositRevertsToRequested(t *testing.T) {
	loc := testLoc(t)
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, loc)
	deadline := now.Add(24 * time.Hour)

	ap := &models.Appointment{
		Status:          string(StatusAwaitingDeposit),
		Date:            "2026-09-10",
		StartTime:       "15:00",
		EndTime:         "16:00",
		PaymentDeadline: &deadline,
	}

	require.NoError(t, ApplyReprogram(ap, "2026-09-11", "10:00", "11:00", ActorClient, now, loc, 1, 48))
	assert.Equal(t, string(StatusRequested), ap.Status)
	assert.Nil(t, ap.PaymentDeadline)
	assert.Equal(t, 0, ap.ReprogramCount)
}

func TestApplyReprogram_ConfirmedCountsAgainstLimit(t *testing.T) {
	loc := testLoc(t)
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, loc)

	ap := &models.Appointment{
		Status:    string(StatusConfirmed),
		Date:      "2026-09-10",
		StartTime: "15:00",
		EndTime:   "16:00",
	}

	require.NoError(t, ApplyReprogram(ap, "2026-09-11", "10:00", "11:00", ActorClient, now, loc, 1, 48))
	assert.Equal(t, string(StatusConfirmed), ap.Status)
	assert.Equal(t, 1, ap.ReprogramCount)

	err := ApplyReprogram(ap, "2026-09-12", "10:00", "11:00", ActorClient, now, loc, 1, 48)
	assertBusinessCode(t, err, httperr.CodeReprogramLimitExceeded)
	// sin efectos tras el rechazo
	assert.Equal(t, "2026-09-11", ap.Date)
	assert.Equal(t, 1, ap.ReprogramCount)
}

func TestApplyReprogram_ConfirmedClientWindow(t *testing.T) {
	loc := testLoc(t)
	now := time.Date(2026, 9, 10, 0, 0, 0, 0, loc) // faltan 15h

	ap := &models.Appointment{
		Status:    string(StatusConfirmed),
		Date:      "2026-09-10",
		StartTime: "15:00",
		EndTime:   "16:00",
	}

	err := ApplyReprogram(ap, "2026-09-12", "10:00", "11:00", ActorClient, now, loc, 1, 48)
	assertBusinessCode(t, err, httperr.CodeTimeWindowExceeded)

	// el staff puede aunque la ventana esté vencida
	require.NoError(t, ApplyReprogram(ap, "2026-09-12", "10:00", "11:00", ActorStaff, now, loc, 1, 48))
	assert.Equal(t, 1, ap.ReprogramCount)
}

func TestApplyReprogram_TerminalRejected(t *testing.T) {
	loc := testLoc(t)
	now := time.Now()

	for _, status := range []Status{StatusCancelled, StatusCompleted, StatusNoShow} {
		ap := &models.Appointment{Status: string(status), Date: "2026-09-10", StartTime: "15:00"}
		err := ApplyReprogram(ap, "2026-09-12", "10:00", "11:00", ActorStaff, now, loc, 1, 48)
		assertBusinessCode(t, err, httperr.CodeInvalidState)
	}
}
