package scheduling

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAvailabilityUC(e *testEnv) *GetAvailability {
	sweep := NewSweepExpired(e.repo, e.notifier)
	return NewGetAvailability(e.repo, e.policies, sweep)
}

func startsFor(days []DayAvailability, date string) []string {
	for _, d := range days {
		if d.Date == date {
			return d.Starts
		}
	}
	return nil
}

func TestGetAvailability_GridAndIdempotence(t *testing.T) {
	e := newTestEnv(t, "avail_grid")

	e.seedStaff("carla")
	serviceID := e.seedService("Corte", 60)
	e.seedRulesAllWeek(nil, "10:00", "14:00")

	uc := newAvailabilityUC(e)
	date := e.dateIn(3)

	days, err := uc.Execute(context.Background(), AvailabilityInput{ServiceID: serviceID, StartDate: date})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "11:00", "12:00", "13:00"}, startsFor(days, date))

	// misma consulta, mismo resultado
	again, err := uc.Execute(context.Background(), AvailabilityInput{ServiceID: serviceID, StartDate: date})
	require.NoError(t, err)
	assert.Equal(t, days, again)
}

func TestGetAvailability_BookedSlotRemoved(t *testing.T) {
	e := newTestEnv(t, "avail_booked")

	staffID := e.seedStaff("carla")
	clientID := e.seedClient("ana")
	serviceID := e.seedService("Corte", 60)
	e.seedRulesAllWeek(nil, "10:00", "14:00")

	date := e.dateIn(3)
	e.seedConfirmedAppointment(clientID, &staffID, serviceID, date, "11:00", "12:00")

	days, err := newAvailabilityUC(e).Execute(context.Background(), AvailabilityInput{ServiceID: serviceID, StartDate: date})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "12:00", "13:00"}, startsFor(days, date))
}

func TestGetAvailability_UnknownService(t *testing.T) {
	e := newTestEnv(t, "avail_unknown")
	_, err := newAvailabilityUC(e).Execute(context.Background(), AvailabilityInput{ServiceID: 999})
	assert.Error(t, err)
}

func TestGetAvailability_SweepsExpiredFirst(t *testing.T) {
	e := newTestEnv(t, "avail_sweep")

	staffID := e.seedStaff("carla")
	clientID := e.seedClient("ana")
	serviceID := e.seedService("Corte", 60)
	e.seedRulesAllWeek(nil, "10:00", "14:00")

	// turno solicitado ayer: vencido, el barrido lo cancela
	yesterday := e.dateIn(-1)
	ap := e.seedConfirmedAppointment(clientID, &staffID, serviceID, yesterday, "11:00", "12:00")
	require.NoError(t, e.db.Model(e.appointment(ap)).Update("status", "solicitado").Error)

	_, err := newAvailabilityUC(e).Execute(context.Background(), AvailabilityInput{ServiceID: serviceID})
	require.NoError(t, err)

	assert.Equal(t, "cancelado", e.appointment(ap).Status)
}
