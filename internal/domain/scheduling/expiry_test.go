package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
)

func TestExpiredIDs(t *testing.T) {
	loc := testLoc(t)
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, loc)

	aps := []models.Appointment{
		{ID: 1, Status: string(StatusRequested), Date: "2026-09-10", StartTime: "10:00"},       // vencido
		{ID: 2, Status: string(StatusAwaitingDeposit), Date: "2026-09-09", StartTime: "18:00"}, // vencido
		{ID: 3, Status: string(StatusRequested), Date: "2026-09-10", StartTime: "15:00"},       // futuro
		{ID: 4, Status: string(StatusConfirmed), Date: "2026-09-09", StartTime: "10:00"},       // confirmado no vence
		{ID: 5, Status: string(StatusRequested), Date: "no-es-fecha", StartTime: "10:00"},      // ilegible, se saltea
	}

	assert.Equal(t, []uint{1, 2}, ExpiredIDs(now, loc, aps))
}

func TestExpiredIDs_Empty(t *testing.T) {
	loc := testLoc(t)
	assert.Empty(t, ExpiredIDs(time.Now(), loc, nil))
}
