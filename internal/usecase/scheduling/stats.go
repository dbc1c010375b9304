package scheduling

import (
	"context"
	"time"

	domain "github.com/BohemiaEstudio/salon-scheduler/internal/domain/scheduling"
	"github.com/BohemiaEstudio/salon-scheduler/internal/httperr"
	"github.com/BohemiaEstudio/salon-scheduler/internal/timezone"
)

type DashboardStatsOutput struct {
	From     string           `json:"from"`
	To       string           `json:"to"`
	ByStatus map[string]int64 `json:"by_status"`
	Total    int64            `json:"total"`
}

// DashboardStats: conteo de turnos por estado en un rango de fechas,
// para el panel del staff.
type DashboardStats struct {
	repo domain.Repository
	loc  *time.Location
}

func NewDashboardStats(repo domain.Repository) *DashboardStats {
	return &DashboardStats{repo: repo, loc: timezone.Location("")}
}

func (uc *DashboardStats) Execute(ctx context.Context, from, to string) (*DashboardStatsOutput, error) {
	now := time.Now().In(uc.loc)
	if from == "" {
		from = now.AddDate(0, 0, -30).Format("2006-01-02")
	}
	if to == "" {
		to = now.Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", from); err != nil {
		return nil, httperr.ErrBusinessMsg("INVALID_DATE", "Formato de fecha inválido, use AAAA-MM-DD.")
	}
	if _, err := time.Parse("2006-01-02", to); err != nil {
		return nil, httperr.ErrBusinessMsg("INVALID_DATE", "Formato de fecha inválido, use AAAA-MM-DD.")
	}

	counts, err := uc.repo.CountByStatusBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	out := &DashboardStatsOutput{From: from, To: to, ByStatus: counts}
	for _, n := range counts {
		out.Total += n
	}
	return out, nil
}
