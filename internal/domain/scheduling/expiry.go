package scheduling

import (
	"time"

	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
)

const ExpiredReason = "Turno vencido sin confirmación"

// ExpiredIDs devuelve los turnos aún solicitado/esperando_sena cuya
// fecha/hora programada ya pasó. Función pura sobre "now" y el listado:
// el barrido perezoso que la invoca queda testeable por separado de la
// lectura.
func ExpiredIDs(now time.Time, loc *time.Location, aps []models.Appointment) []uint {
	var ids []uint
	for _, ap := range aps {
		switch Status(ap.Status) {
		case StatusRequested, StatusAwaitingDeposit:
		default:
			continue
		}

		scheduled, err := CombineDateTime(ap.Date, ap.StartTime, loc)
		if err != nil {
			continue
		}
		if scheduled.Before(now) {
			ids = append(ids, ap.ID)
		}
	}
	return ids
}
