package scheduling

import (
	"context"
	"time"

	domain "github.com/BohemiaEstudio/salon-scheduler/internal/domain/scheduling"
	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
)

// buildDayContext junta en una pasada todo lo que la validación de un
// día necesita: turnos ocupantes (con lock si estamos por escribir),
// bloqueos, capacidad operativa y requisitos de todos los servicios
// involucrados (los nuestros y los de los turnos ya tomados).
func buildDayContext(
	ctx context.Context,
	repo domain.Repository,
	date time.Time,
	loc *time.Location,
	serviceIDs []uint,
	lock bool,
	now time.Time,
) (*domain.DayContext, error) {

	day := date.Format("2006-01-02")

	aps, err := repo.ListOccupyingForDate(ctx, day, lock)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	blocks, err := repo.ListBlocksBetween(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	svcSet := make(map[uint]bool)
	for _, id := range serviceIDs {
		svcSet[id] = true
	}
	for _, ap := range aps {
		for _, det := range ap.Details {
			svcSet[det.ServiceID] = true
		}
	}

	allServiceIDs := make([]uint, 0, len(svcSet))
	for id := range svcSet {
		allServiceIDs = append(allServiceIDs, id)
	}

	reqs, err := repo.ListRequirements(ctx, allServiceIDs)
	if err != nil {
		return nil, err
	}

	units, err := repo.CountOperationalUnits(ctx)
	if err != nil {
		return nil, err
	}

	byService := make(map[uint][]models.ServiceRequirement)
	for _, req := range reqs {
		byService[req.ServiceID] = append(byService[req.ServiceID], req)
	}

	return &domain.DayContext{
		Date:         date,
		Loc:          loc,
		Now:          now,
		Appointments: aps,
		Blocks:       blocks,
		UnitsByType:  units,
		Requirements: byService,
	}, nil
}

// coveringRule busca una regla horaria que habilite TODOS los servicios
// pedidos para ese staff y cubra el intervalo completo. Sin regla que
// cubra, la operación se rechaza: las guardas fallan cerradas.
func coveringRule(
	rules []models.WorkingHours,
	date time.Time,
	services []models.Service,
	staffID *uint,
	start, end string,
) bool {

	for _, rule := range rules {
		if rule.StaffID != nil && staffID != nil && *rule.StaffID != *staffID {
			continue
		}

		ok := true
		for i := range services {
			if !domain.RuleMatches(rule, date, categoryName(&services[i])) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		if start >= rule.StartTime && end <= rule.EndTime {
			return true
		}
	}
	return false
}

func categoryName(svc *models.Service) string {
	if svc.Category != nil {
		return svc.Category.Name
	}
	return ""
}

func totalDuration(services []models.Service) int {
	total := 0
	for i := range services {
		total += domain.ServiceDuration(&services[i])
	}
	return total
}

func detailServiceIDs(details []models.AppointmentDetail) []uint {
	ids := make([]uint, 0, len(details))
	for _, det := range details {
		ids = append(ids, det.ServiceID)
	}
	return ids
}

func detailDuration(details []models.AppointmentDetail) int {
	total := 0
	for _, det := range details {
		total += det.DurationMin
	}
	if total <= 0 {
		total = domain.DefaultDurationMin
	}
	return total
}
