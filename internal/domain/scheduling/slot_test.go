package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BohemiaEstudio/salon-scheduler/internal/models"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestCandidateStarts_GridWalk(t *testing.T) {
	rules := []models.WorkingHours{
		{StartTime: "10:00", EndTime: "14:00", Active: true},
	}

	starts := CandidateStarts(rules, 60, 60)
	assert.Equal(t, []string{"10:00", "11:00", "12:00", "13:00"}, starts)
}

func TestCandidateStarts_ClosingBoundary(t *testing.T) {
	rules := []models.WorkingHours{
		{StartTime: "10:00", EndTime: "14:00", Active: true},
	}

	// 90 minutos: el último inicio que entra completo es 12:00
	starts := CandidateStarts(rules, 90, 60)
	assert.Equal(t, []string{"10:00", "11:00", "12:00"}, starts)
}

func TestCandidateStarts_SplitShiftDedup(t *testing.T) {
	rules := []models.WorkingHours{
		{StartTime: "09:00", EndTime: "13:00", Active: true},
		{StartTime: "12:00", EndTime: "17:00", Active: true},
	}

	starts := CandidateStarts(rules, 60, 60)
	assert.Equal(t, []string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00"}, starts)
}

func TestCandidateStarts_EmptyWithoutRules(t *testing.T) {
	assert.Empty(t, CandidateStarts(nil, 60, 60))
}

func TestCandidateStarts_DefaultsOnZeroGranularity(t *testing.T) {
	rules := []models.WorkingHours{
		{StartTime: "10:00", EndTime: "12:00", Active: true},
	}
	starts := CandidateStarts(rules, 60, 0)
	assert.Equal(t, []string{"10:00", "11:00"}, starts)
}

func TestRuleMatches_CapabilityFlags(t *testing.T) {
	date := mustDate(t, "2026-09-07") // lunes
	rule := models.WorkingHours{
		Weekday:           1,
		StartTime:         "10:00",
		EndTime:           "18:00",
		Active:            true,
		AllowsColorDesign: false,
		AllowsComplement:  true,
	}

	assert.False(t, RuleMatches(rule, date, CategoryColorDesign))
	assert.True(t, RuleMatches(rule, date, CategoryComplement))
	assert.True(t, RuleMatches(rule, date, "Corte"))
}

func TestRuleMatches_ValidityRange(t *testing.T) {
	date := mustDate(t, "2026-09-07")
	rule := models.WorkingHours{
		Weekday:          1,
		StartTime:        "10:00",
		EndTime:          "18:00",
		Active:           true,
		AllowsComplement: true,
	}

	rule.ValidFrom = "2026-09-08"
	assert.False(t, RuleMatches(rule, date, "Corte"))

	rule.ValidFrom = ""
	rule.ValidUntil = "2026-09-06"
	assert.False(t, RuleMatches(rule, date, "Corte"))

	rule.ValidFrom = "2026-09-01"
	rule.ValidUntil = "2026-09-30"
	assert.True(t, RuleMatches(rule, date, "Corte"))
}

func TestRuleMatches_InactiveAndWeekday(t *testing.T) {
	date := mustDate(t, "2026-09-07") // lunes
	rule := models.WorkingHours{
		Weekday:          2,
		StartTime:        "10:00",
		EndTime:          "18:00",
		Active:           true,
		AllowsComplement: true,
	}
	assert.False(t, RuleMatches(rule, date, "Corte"))

	rule.Weekday = 1
	rule.Active = false
	assert.False(t, RuleMatches(rule, date, "Corte"))
}

func TestServiceDuration_Default(t *testing.T) {
	assert.Equal(t, 60, ServiceDuration(&models.Service{}))
	assert.Equal(t, 60, ServiceDuration(nil))

	d := 90
	assert.Equal(t, 90, ServiceDuration(&models.Service{DurationMin: &d}))

	zero := 0
	assert.Equal(t, 60, ServiceDuration(&models.Service{DurationMin: &zero}))
}
