package scheduling

import (
	"context"
	"log"
	"sort"
	"time"

	domain "github.com/BohemiaEstudio/salon-scheduler/internal/domain/scheduling"
	"github.com/BohemiaEstudio/salon-scheduler/internal/httperr"
	"github.com/BohemiaEstudio/salon-scheduler/internal/metrics"
	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
	"github.com/BohemiaEstudio/salon-scheduler/internal/policy"
	"github.com/BohemiaEstudio/salon-scheduler/internal/timezone"
)

// Ventana de búsqueda por defecto; el horizonte de reserva la acota.
const defaultLookAheadDays = 7

type AvailabilityInput struct {
	ServiceID uint
	StartDate string // "2006-01-02", vacío = hoy
}

type DayAvailability struct {
	Date    string   `json:"date"`
	StaffID *uint    `json:"staff_id"`
	Starts  []string `json:"start_times"`
}

type GetAvailability struct {
	repo     domain.Repository
	policies *policy.Store
	sweep    *SweepExpired
	loc      *time.Location
}

func NewGetAvailability(repo domain.Repository, policies *policy.Store, sweep *SweepExpired) *GetAvailability {
	return &GetAvailability{
		repo:     repo,
		policies: policies,
		sweep:    sweep,
		loc:      timezone.Location(""),
	}
}

// Execute genera los candidatos por regla y los filtra con las tres
// verificaciones del día. Lista vacía es la respuesta correcta para
// "no hay nada", nunca un error.
func (uc *GetAvailability) Execute(ctx context.Context, in AvailabilityInput) ([]DayAvailability, error) {
	metrics.AvailabilityQueries.Inc()

	// Barrido perezoso de vencidos antes de leer la agenda
	if _, err := uc.sweep.Execute(ctx); err != nil {
		log.Println("sweep error:", err)
	}

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusinessMsg(httperr.CodeServiceNotFound, "El servicio no existe.")
	}

	pol := uc.policies.Current()
	now := time.Now().In(uc.loc)

	start := now
	if in.StartDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", in.StartDate, uc.loc)
		if err != nil {
			return nil, httperr.ErrBusinessMsg("INVALID_DATE", "Formato de fecha inválido, use AAAA-MM-DD.")
		}
		if parsed.After(start) {
			start = parsed
		}
	}

	lookAhead := defaultLookAheadDays
	if pol.BookingHorizonDays > 0 && pol.BookingHorizonDays < lookAhead {
		lookAhead = pol.BookingHorizonDays
	}

	horizonEnd := now.AddDate(0, 0, pol.BookingHorizonDays)
	duration := domain.ServiceDuration(svc)
	category := categoryName(svc)

	var out []DayAvailability

	for i := 0; i < lookAhead; i++ {
		date := start.AddDate(0, 0, i)
		if pol.BookingHorizonDays > 0 && date.After(horizonEnd) {
			break
		}

		rules, err := uc.repo.ListRulesForWeekday(ctx, int(date.Weekday()))
		if err != nil {
			return nil, err
		}

		matching := domain.MatchingRules(rules, date, category)
		if len(matching) == 0 {
			continue // día cerrado para este servicio
		}

		dayCtx, err := buildDayContext(ctx, uc.repo, date, uc.loc, []uint{svc.ID}, false, now)
		if err != nil {
			return nil, err
		}

		for _, group := range groupRulesByStaff(matching) {
			candidates := domain.CandidateStarts(group.rules, duration, pol.SlotGranularityMin)

			var free []string
			for _, hm := range candidates {
				if dayCtx.SlotAvailable(hm, duration, group.staffID, []uint{svc.ID}, 0) {
					free = append(free, hm)
				}
			}

			if len(free) > 0 {
				out = append(out, DayAvailability{
					Date:    date.Format("2006-01-02"),
					StaffID: group.staffID,
					Starts:  free,
				})
			}
		}
	}

	return out, nil
}

type staffRules struct {
	staffID *uint
	rules   []models.WorkingHours
}

// groupRulesByStaff separa las reglas por profesional; las reglas sin
// staff (todo el salón) forman su propio grupo con staffID nulo.
func groupRulesByStaff(rules []models.WorkingHours) []staffRules {
	byStaff := make(map[uint][]models.WorkingHours)
	var global []models.WorkingHours

	for _, r := range rules {
		if r.StaffID == nil {
			global = append(global, r)
			continue
		}
		byStaff[*r.StaffID] = append(byStaff[*r.StaffID], r)
	}

	ids := make([]uint, 0, len(byStaff))
	for id := range byStaff {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []staffRules
	if len(global) > 0 {
		out = append(out, staffRules{staffID: nil, rules: global})
	}
	for _, id := range ids {
		id := id
		out = append(out, staffRules{staffID: &id, rules: byStaff[id]})
	}
	return out
}
