package scheduling

import (
	"sort"
	"time"

	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
)

// Categorías con flag de capacidad propio en las reglas horarias
const (
	CategoryColorDesign = "Diseño de color"
	CategoryComplement  = "Turno de complemento"
)

const DefaultDurationMin = 60

// ServiceDuration devuelve la duración estimada del servicio,
// con 60 minutos por defecto cuando no está cargada.
func ServiceDuration(svc *models.Service) int {
	if svc != nil && svc.DurationMin != nil && *svc.DurationMin > 0 {
		return *svc.DurationMin
	}
	return DefaultDurationMin
}

// IsColorDesign clasifica la categoría del servicio para el filtro
// de capacidad de las reglas horarias.
func IsColorDesign(categoryName string) bool {
	return categoryName == CategoryColorDesign
}

// RuleMatches decide si una regla horaria habilita el servicio en la
// fecha dada: día de semana, vigencia, activa y flag de capacidad.
func RuleMatches(rule models.WorkingHours, date time.Time, categoryName string) bool {
	if !rule.Active {
		return false
	}
	if rule.Weekday != int(date.Weekday()) {
		return false
	}

	day := date.Format("2006-01-02")
	if rule.ValidFrom != "" && day < rule.ValidFrom {
		return false
	}
	if rule.ValidUntil != "" && day > rule.ValidUntil {
		return false
	}

	if IsColorDesign(categoryName) {
		return rule.AllowsColorDesign
	}
	return rule.AllowsComplement
}

// MatchingRules filtra las reglas aplicables a la fecha y servicio.
func MatchingRules(rules []models.WorkingHours, date time.Time, categoryName string) []models.WorkingHours {
	var out []models.WorkingHours
	for _, r := range rules {
		if RuleMatches(r, date, categoryName) {
			out = append(out, r)
		}
	}
	return out
}

// CandidateStarts genera la grilla teórica de horarios de inicio para
// un conjunto de reglas ya filtradas: desde rule.Start hasta rule.End
// en pasos de granularidad, emitiendo mientras inicio+duración <= fin.
// Sin reglas aplicables el resultado es vacío (día cerrado), nunca un
// error. El resultado viene ordenado y sin duplicados entre reglas
// de turno cortado.
func CandidateStarts(rules []models.WorkingHours, durationMin, granularityMin int) []string {
	if granularityMin <= 0 {
		granularityMin = DefaultDurationMin
	}
	if durationMin <= 0 {
		durationMin = DefaultDurationMin
	}

	seen := make(map[string]bool)
	var starts []string

	for _, rule := range rules {
		start, err := time.Parse("15:04", rule.StartTime)
		if err != nil {
			continue
		}
		end, err := time.Parse("15:04", rule.EndTime)
		if err != nil {
			continue
		}

		for cur := start; !cur.Add(time.Duration(durationMin) * time.Minute).After(end); cur = cur.Add(time.Duration(granularityMin) * time.Minute) {
			hm := cur.Format("15:04")
			if !seen[hm] {
				seen[hm] = true
				starts = append(starts, hm)
			}
		}
	}

	sort.Strings(starts)
	return starts
}
