package scheduling

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BohemiaEstudio/salon-scheduler/internal/domain/scheduling"
	"github.com/BohemiaEstudio/salon-scheduler/internal/httperr"
)

func newReprogramUC(e *testEnv) *ReprogramAppointment {
	return NewReprogramAppointment(e.repo, e.policies, e.notifier, e.auditor)
}

func TestReprogram_ConfirmedFlow(t *testing.T) {
	e := newTestEnv(t, "reprogram_confirmed")

	staffID := e.seedStaff("carla")
	ana := e.seedClient("ana")
	serviceID := e.seedService("Corte", 60)
	e.seedRulesAllWeek(nil, "09:00", "18:00")

	apID := e.seedConfirmedAppointment(ana, &staffID, serviceID, e.dateIn(10), "11:00", "12:00")

	uc := newReprogramUC(e)

	ap, err := uc.Execute(context.Background(), ReprogramInput{
		AppointmentID:  apID,
		NewDate:        e.dateIn(12),
		NewStartTime:   "15:00",
		Actor:          domain.ActorClient,
		CallerClientID: &ana,
	})
	require.NoError(t, err)

	assert.Equal(t, "confirmado", ap.Status)
	assert.Equal(t, e.dateIn(12), ap.Date)
	assert.Equal(t, "15:00", ap.StartTime)
	assert.Equal(t, "16:00", ap.EndTime)
	assert.Equal(t, 1, ap.ReprogramCount)

	// segunda reprogramación del cliente: límite agotado
	_, err = uc.Execute(context.Background(), ReprogramInput{
		AppointmentID:  apID,
		NewDate:        e.dateIn(13),
		NewStartTime:   "10:00",
		Actor:          domain.ActorClient,
		CallerClientID: &ana,
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeReprogramLimitExceeded))
}

func TestReprogram_IntoOccupiedSlotRejected(t *testing.T) {
	e := newTestEnv(t, "reprogram_occupied")

	staffID := e.seedStaff("carla")
	ana := e.seedClient("ana")
	sol := e.seedClient("sol")
	serviceID := e.seedService("Corte", 60)
	e.seedRulesAllWeek(nil, "09:00", "18:00")

	date := e.dateIn(10)
	apID := e.seedConfirmedAppointment(ana, &staffID, serviceID, date, "11:00", "12:00")
	e.seedConfirmedAppointment(sol, &staffID, serviceID, date, "15:00", "16:00")

	_, err := newReprogramUC(e).Execute(context.Background(), ReprogramInput{
		AppointmentID: apID,
		NewDate:       date,
		NewStartTime:  "15:00",
		Actor:         domain.ActorStaff,
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))
}

func TestReprogram_OntoOwnSlotAllowed(t *testing.T) {
	e := newTestEnv(t, "reprogram_own")

	staffID := e.seedStaff("carla")
	ana := e.seedClient("ana")
	serviceID := e.seedService("Corte", 60)
	e.seedRulesAllWeek(nil, "09:00", "18:00")

	date := e.dateIn(10)
	apID := e.seedConfirmedAppointment(ana, &staffID, serviceID, date, "11:00", "12:00")

	// media hora más tarde se superpone solo con su propia ocupación
	ap, err := newReprogramUC(e).Execute(context.Background(), ReprogramInput{
		AppointmentID: apID,
		NewDate:       date,
		NewStartTime:  "11:30",
		Actor:         domain.ActorStaff,
	})
	require.NoError(t, err)
	assert.Equal(t, "11:30", ap.StartTime)
}

func TestReprogram_AwaitingDepositRevertsToRequested(t *testing.T) {
	e := newTestEnv(t, "reprogram_revert")

	staffID := e.seedStaff("carla")
	ana := e.seedClient("ana")
	serviceID := e.seedService("Corte", 60)
	e.seedRulesAllWeek(nil, "09:00", "18:00")

	apID := e.seedConfirmedAppointment(ana, &staffID, serviceID, e.dateIn(10), "11:00", "12:00")
	require.NoError(t, e.db.Model(e.appointment(apID)).Update("status", "esperando_sena").Error)

	ap, err := newReprogramUC(e).Execute(context.Background(), ReprogramInput{
		AppointmentID: apID,
		NewDate:       e.dateIn(12),
		NewStartTime:  "10:00",
		Actor:         domain.ActorStaff,
	})
	require.NoError(t, err)

	// vuelve a solicitado: la aprobación anterior queda sin efecto
	assert.Equal(t, "solicitado", ap.Status)
	assert.Nil(t, ap.PaymentDeadline)
	assert.Equal(t, 0, ap.ReprogramCount)
}
