package scheduling

import (
	"context"
	"time"

	domain "github.com/BohemiaEstudio/salon-scheduler/internal/domain/scheduling"
	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
	"github.com/BohemiaEstudio/salon-scheduler/internal/policy"
	"github.com/BohemiaEstudio/salon-scheduler/internal/timezone"
)

type CalendarDay struct {
	Date string `json:"date"`
	Open bool   `json:"open"`
}

// AvailabilityCalendar arma el mapa día abierto/cerrado sobre el
// horizonte de reservas: abierto si hay alguna regla horaria vigente
// para ese día de semana y ningún bloqueo de día completo lo tapa.
// No mira la ocupación; para eso está la consulta de disponibilidad.
type AvailabilityCalendar struct {
	repo     domain.Repository
	policies *policy.Store
	loc      *time.Location
}

func NewAvailabilityCalendar(repo domain.Repository, policies *policy.Store) *AvailabilityCalendar {
	return &AvailabilityCalendar{repo: repo, policies: policies, loc: timezone.Location("")}
}

func (uc *AvailabilityCalendar) Execute(ctx context.Context) ([]CalendarDay, error) {
	pol := uc.policies.Current()
	now := time.Now().In(uc.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)

	horizon := pol.BookingHorizonDays
	if horizon <= 0 {
		horizon = 30
	}

	rulesByWeekday := make(map[int][]models.WorkingHours, 7)
	for wd := 0; wd < 7; wd++ {
		rules, err := uc.repo.ListRulesForWeekday(ctx, wd)
		if err != nil {
			return nil, err
		}
		rulesByWeekday[wd] = rules
	}

	blocks, err := uc.repo.ListBlocksBetween(ctx, today, today.AddDate(0, 0, horizon+1))
	if err != nil {
		return nil, err
	}

	days := make([]CalendarDay, 0, horizon+1)
	for i := 0; i <= horizon; i++ {
		date := today.AddDate(0, 0, i)
		day := date.Format("2006-01-02")

		open := false
		for _, rule := range rulesByWeekday[int(date.Weekday())] {
			if !rule.Active {
				continue
			}
			if rule.ValidFrom != "" && day < rule.ValidFrom {
				continue
			}
			if rule.ValidUntil != "" && day > rule.ValidUntil {
				continue
			}
			open = true
			break
		}

		if open && wholeDayBlocked(blocks, date) {
			open = false
		}

		days = append(days, CalendarDay{Date: day, Open: open})
	}

	return days, nil
}

func wholeDayBlocked(blocks []models.ScheduleBlock, date time.Time) bool {
	dayStart := date
	dayEnd := date.AddDate(0, 0, 1)
	for _, b := range blocks {
		if !b.WholeDay {
			continue
		}
		if b.StartAt.Before(dayEnd) && b.EndAt.After(dayStart) {
			return true
		}
	}
	return false
}
