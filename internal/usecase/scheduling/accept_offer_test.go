package scheduling

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BohemiaEstudio/salon-scheduler/internal/domain/scheduling"
	"github.com/BohemiaEstudio/salon-scheduler/internal/httperr"
	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
)

func newAcceptUC(e *testEnv) *AcceptOffer {
	return NewAcceptOffer(e.repo, e.policies, e.notifier, e.auditor)
}

// cancela el turno y devuelve el token ofrecido al cliente
func cancelAndGetToken(t *testing.T, e *testEnv, apID, offeredClient uint) string {
	t.Helper()

	out, err := newCancelUC(e).Execute(context.Background(), CancelInput{
		AppointmentID: apID,
		Actor:         domain.ActorStaff,
	})
	require.NoError(t, err)
	require.Equal(t, 1, out.Offers.OffersSent)

	offers := offersFor(e, offeredClient)
	require.Len(t, offers, 1)
	return offers[0].OfferToken
}

func TestAcceptOffer_WaitlistCreatesAppointment(t *testing.T) {
	e := newTestEnv(t, "accept_waitlist")

	staffID := e.seedStaff("carla")
	ana := e.seedClient("ana")
	sol := e.seedClient("sol")
	serviceID := e.seedService("Corte", 60)
	e.seedRulesAllWeek(nil, "09:00", "18:00")

	date := e.dateIn(10)
	apID := e.seedConfirmedAppointment(ana, &staffID, serviceID, date, "11:00", "12:00")

	entry := models.WaitlistEntry{
		ClientID:  sol,
		ServiceID: serviceID,
		DateFrom:  e.dateIn(5),
		DateTo:    e.dateIn(15),
		Active:    true,
	}
	require.NoError(t, e.db.Create(&entry).Error)

	token := cancelAndGetToken(t, e, apID, sol)

	ap, err := newAcceptUC(e).Execute(context.Background(), token, sol)
	require.NoError(t, err)

	assert.Equal(t, "solicitado", ap.Status)
	assert.Equal(t, sol, ap.ClientID)
	assert.Equal(t, date, ap.Date)
	assert.Equal(t, "11:00", ap.StartTime)
	assert.Equal(t, "12:00", ap.EndTime)

	// la entrada de lista de espera queda cumplida
	var reloaded models.WaitlistEntry
	require.NoError(t, e.db.First(&reloaded, entry.ID).Error)
	assert.False(t, reloaded.Active)
}

func TestAcceptOffer_SecondAcceptRejected(t *testing.T) {
	e := newTestEnv(t, "accept_twice")

	staffID := e.seedStaff("carla")
	ana := e.seedClient("ana")
	sol := e.seedClient("sol")
	serviceID := e.seedService("Corte", 60)
	e.seedRulesAllWeek(nil, "09:00", "18:00")

	apID := e.seedConfirmedAppointment(ana, &staffID, serviceID, e.dateIn(10), "11:00", "12:00")

	require.NoError(t, e.db.Create(&models.WaitlistEntry{
		ClientID: sol, ServiceID: serviceID,
		DateFrom: e.dateIn(5), DateTo: e.dateIn(15), Active: true,
	}).Error)

	token := cancelAndGetToken(t, e, apID, sol)

	_, err := newAcceptUC(e).Execute(context.Background(), token, sol)
	require.NoError(t, err)

	_, err = newAcceptUC(e).Execute(context.Background(), token, sol)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotNoLongerAvailable))
}

func TestAcceptOffer_SlotRetakenMeanwhile(t *testing.T) {
	e := newTestEnv(t, "accept_retaken")

	staffID := e.seedStaff("carla")
	ana := e.seedClient("ana")
	sol := e.seedClient("sol")
	eva := e.seedClient("eva")
	serviceID := e.seedService("Corte", 60)
	e.seedRulesAllWeek(nil, "09:00", "18:00")

	date := e.dateIn(10)
	apID := e.seedConfirmedAppointment(ana, &staffID, serviceID, date, "11:00", "12:00")

	require.NoError(t, e.db.Create(&models.WaitlistEntry{
		ClientID: sol, ServiceID: serviceID,
		DateFrom: e.dateIn(5), DateTo: e.dateIn(15), Active: true,
	}).Error)

	token := cancelAndGetToken(t, e, apID, sol)

	// eva reserva el hueco por la vía normal antes de que sol acepte
	_, err := newCreateUC(e).Execute(context.Background(), CreateAppointmentInput{
		ClientID:   eva,
		StaffID:    &staffID,
		ServiceIDs: []uint{serviceID},
		Date:       date,
		StartTime:  "11:00",
	})
	require.NoError(t, err)

	_, err = newAcceptUC(e).Execute(context.Background(), token, sol)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotNoLongerAvailable))
}

func TestAcceptOffer_AdvanceMovesAppointment(t *testing.T) {
	e := newTestEnv(t, "accept_advance")

	staffID := e.seedStaff("carla")
	ana := e.seedClient("ana")
	sol := e.seedClient("sol")
	serviceID := e.seedService("Corte", 60)
	e.seedRulesAllWeek(nil, "09:00", "18:00")

	freedDate := e.dateIn(5)
	apID := e.seedConfirmedAppointment(ana, &staffID, serviceID, freedDate, "11:00", "12:00")
	laterID := e.seedConfirmedAppointment(sol, &staffID, serviceID, e.dateIn(20), "11:00", "12:00")

	token := cancelAndGetToken(t, e, apID, sol)

	ap, err := newAcceptUC(e).Execute(context.Background(), token, sol)
	require.NoError(t, err)

	// se mueve el turno existente conservando estado y contador
	assert.Equal(t, laterID, ap.ID)
	assert.Equal(t, "confirmado", ap.Status)
	assert.Equal(t, freedDate, ap.Date)
	assert.Equal(t, "11:00", ap.StartTime)
	assert.Equal(t, 0, ap.ReprogramCount)
}

func TestAcceptOffer_WrongClient(t *testing.T) {
	e := newTestEnv(t, "accept_wrong_client")

	staffID := e.seedStaff("carla")
	ana := e.seedClient("ana")
	sol := e.seedClient("sol")
	eva := e.seedClient("eva")
	serviceID := e.seedService("Corte", 60)
	e.seedRulesAllWeek(nil, "09:00", "18:00")

	apID := e.seedConfirmedAppointment(ana, &staffID, serviceID, e.dateIn(10), "11:00", "12:00")

	require.NoError(t, e.db.Create(&models.WaitlistEntry{
		ClientID: sol, ServiceID: serviceID,
		DateFrom: e.dateIn(5), DateTo: e.dateIn(15), Active: true,
	}).Error)

	token := cancelAndGetToken(t, e, apID, sol)

	_, err := newAcceptUC(e).Execute(context.Background(), token, eva)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotNoLongerAvailable))
}
