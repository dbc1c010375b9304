package scheduling

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BohemiaEstudio/salon-scheduler/internal/domain/scheduling"
	"github.com/BohemiaEstudio/salon-scheduler/internal/httperr"
	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
)

func newCancelUC(e *testEnv) *CancelAppointment {
	opt := NewOptimizer(e.repo, e.sender)
	return NewCancelAppointment(e.repo, e.policies, opt, e.notifier, e.auditor)
}

func offersFor(e *testEnv, clientID uint) []models.Notification {
	var out []models.Notification
	require.NoError(e.t, e.db.
		Where("client_id = ? AND offer_token <> ''", clientID).
		Find(&out).Error)
	return out
}

func TestCancel_OffersFreedSlotToWaitlist(t *testing.T) {
	e := newTestEnv(t, "reclaim_waitlist")

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

	out, err := newCancelUC(e).Execute(context.Background(), CancelInput{
		AppointmentID: apID,
		Reason:        "no puedo ir",
		Actor:         domain.ActorStaff,
	})
	require.NoError(t, err)

	assert.Equal(t, "cancelado", out.Appointment.Status)
	assert.Equal(t, 1, out.Offers.OffersSent)
	assert.Equal(t, []uint{sol}, out.Offers.Recipients)

	offers := offersFor(e, sol)
	require.Len(t, offers, 1)
	assert.NotEmpty(t, offers[0].OfferToken)

	var payload OfferPayload
	require.NoError(t, json.Unmarshal([]byte(offers[0].OfferPayload), &payload))
	assert.Equal(t, "waitlist", payload.Kind)
	assert.Equal(t, date, payload.Date)
	assert.Equal(t, "11:00", payload.StartTime)

	// marcada como notificada: no se le vuelve a ofrecer
	var reloaded models.WaitlistEntry
	require.NoError(t, e.db.First(&reloaded, entry.ID).Error)
	assert.True(t, reloaded.Notified)
}

func TestCancel_WaitlistFiltersServiceAndTimeRange(t *testing.T) {
	e := newTestEnv(t, "reclaim_filters")

	staffID := e.seedStaff("carla")
	ana := e.seedClient("ana")
	sol := e.seedClient("sol")
	eva := e.seedClient("eva")
	corte := e.seedService("Corte", 60)
	color := e.seedService("Color", 60)
	e.seedRulesAllWeek(nil, "09:00", "18:00")

	date := e.dateIn(10)
	apID := e.seedConfirmedAppointment(ana, &staffID, corte, date, "11:00", "12:00")

	// sol espera otro servicio; eva espera por la tarde
	require.NoError(t, e.db.Create(&models.WaitlistEntry{
		ClientID: sol, ServiceID: color,
		DateFrom: e.dateIn(5), DateTo: e.dateIn(15), Active: true,
	}).Error)
	require.NoError(t, e.db.Create(&models.WaitlistEntry{
		ClientID: eva, ServiceID: corte,
		DateFrom: e.dateIn(5), DateTo: e.dateIn(15),
		TimeFrom: "15:00", TimeTo: "18:00", Active: true,
	}).Error)

	out, err := newCancelUC(e).Execute(context.Background(), CancelInput{
		AppointmentID: apID,
		Actor:         domain.ActorStaff,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, out.Offers.OffersSent)
}

func TestCancel_OffersAdvanceToLaterAppointment(t *testing.T) {
	e := newTestEnv(t, "reclaim_advance")

	staffID := e.seedStaff("carla")
	ana := e.seedClient("ana")
	sol := e.seedClient("sol")
	serviceID := e.seedService("Corte", 60)
	e.seedRulesAllWeek(nil, "09:00", "18:00")

	freedDate := e.dateIn(5)
	apID := e.seedConfirmedAppointment(ana, &staffID, serviceID, freedDate, "11:00", "12:00")

	// sol tiene el mismo servicio confirmado más adelante
	e.seedConfirmedAppointment(sol, &staffID, serviceID, e.dateIn(20), "11:00", "12:00")

	out, err := newCancelUC(e).Execute(context.Background(), CancelInput{
		AppointmentID: apID,
		Actor:         domain.ActorStaff,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, out.Offers.OffersSent)
	assert.Equal(t, []uint{sol}, out.Offers.Recipients)

	offers := offersFor(e, sol)
	require.Len(t, offers, 1)

	var payload OfferPayload
	require.NoError(t, json.Unmarshal([]byte(offers[0].OfferPayload), &payload))
	assert.Equal(t, "advance", payload.Kind)
	assert.Equal(t, freedDate, payload.Date)
}

func TestCancel_ClientWindowEnforced(t *testing.T) {
	e := newTestEnv(t, "cancel_window")

	staffID := e.seedStaff("carla")
	ana := e.seedClient("ana")
	serviceID := e.seedService("Corte", 60)
	e.seedRulesAllWeek(nil, "09:00", "18:00")

	// mañana: dentro de las 48 horas de corte
	apID := e.seedConfirmedAppointment(ana, &staffID, serviceID, e.dateIn(1), "11:00", "12:00")

	callerID := ana
	_, err := newCancelUC(e).Execute(context.Background(), CancelInput{
		AppointmentID:  apID,
		Actor:          domain.ActorClient,
		CallerClientID: &callerID,
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeTimeWindowExceeded))

	// el staff cancela igual
	out, err := newCancelUC(e).Execute(context.Background(), CancelInput{
		AppointmentID: apID,
		Actor:         domain.ActorStaff,
	})
	require.NoError(t, err)
	assert.Equal(t, "cancelado", out.Appointment.Status)
}

func TestCancel_OwnershipEnforced(t *testing.T) {
	e := newTestEnv(t, "cancel_ownership")

	staffID := e.seedStaff("carla")
	ana := e.seedClient("ana")
	sol := e.seedClient("sol")
	serviceID := e.seedService("Corte", 60)
	e.seedRulesAllWeek(nil, "09:00", "18:00")

	apID := e.seedConfirmedAppointment(ana, &staffID, serviceID, e.dateIn(10), "11:00", "12:00")

	_, err := newCancelUC(e).Execute(context.Background(), CancelInput{
		AppointmentID:  apID,
		Actor:          domain.ActorClient,
		CallerClientID: &sol,
	})
	assert.True(t, httperr.IsBusiness(err, "NOT_OWNER"))
}
