package payroll_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slateworks/crewtime/internal/model"
	"github.com/slateworks/crewtime/internal/payroll"
)

func TestAdjustedHoursForDay(t *testing.T) {
	tests := []struct {
		name  string
		hours float64
		want  float64
	}{
		{"zero", 0, 0},
		{"under regular limit", 6, 6},
		{"exactly regular limit", 8, 8},
		{"one overtime hour", 9, 9.5},
		{"two overtime hours", 10, 11},
		{"full overtime band", 12, 14},
		{"one double time hour", 13, 16},
		{"two double time hours", 14, 18},
		{"fractional regular", 7.25, 7.25},
		{"fractional overtime", 8.5, 8.75},
		{"fractional at band edge", 12.5, 15},
		{"negative clamps to zero", -3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, payroll.AdjustedHoursForDay(tt.hours), 1e-9)
		})
	}
}

func TestBreakdownForDay(t *testing.T) {
	b := payroll.BreakdownForDay(14)
	assert.Equal(t, 8.0, b.Regular)
	assert.Equal(t, 4.0, b.Overtime)
	assert.Equal(t, 2.0, b.DoubleTime)
	assert.Equal(t, 18.0, b.Adjusted)
}

func TestBreakdownMatchesAdjustedHours(t *testing.T) {
	// The single-number function and the component breakdown must agree for
	// any input, including fractional and band-edge values.
	for _, hours := range []float64{0, 0.1, 4, 7.99, 8, 8.01, 8.5, 11.9, 12, 12.5, 13, 16, 24} {
		b := payroll.BreakdownForDay(hours)
		assert.InDelta(t, payroll.AdjustedHoursForDay(hours), b.Adjusted, 1e-9, "hours=%v", hours)
		assert.InDelta(t, b.Regular+b.Overtime*1.5+b.DoubleTime*2, b.Adjusted, 1e-9, "hours=%v", hours)
	}
}

func TestAdjustedHoursDailyEntries(t *testing.T) {
	ignored := 46.0
	tc := model.Timecard{
		// A top-level total alongside daily entries must be ignored.
		TotalHours: &ignored,
		DailyEntries: []model.DailyEntry{
			{WorkDate: "2026-03-02", HoursWorked: 8},
			{WorkDate: "2026-03-03", HoursWorked: 10},
			{WorkDate: "2026-03-04", HoursWorked: 8},
			{WorkDate: "2026-03-05", HoursWorked: 12},
			{WorkDate: "2026-03-06", HoursWorked: 8},
		},
	}
	assert.InDelta(t, 49.0, payroll.AdjustedHours(tc), 1e-9)

	b := payroll.GetBreakdown(tc)
	assert.Equal(t, 40.0, b.Regular)
	assert.Equal(t, 6.0, b.Overtime)
	assert.Equal(t, 0.0, b.DoubleTime)
	assert.InDelta(t, 49.0, b.Adjusted, 1e-9)
}

func TestAdjustedHoursSingleDayFallback(t *testing.T) {
	hours := 10.0
	tc := model.Timecard{TotalHours: &hours}
	assert.InDelta(t, 11.0, payroll.AdjustedHours(tc), 1e-9)
}

func TestAdjustedHoursMissingTotal(t *testing.T) {
	assert.Zero(t, payroll.AdjustedHours(model.Timecard{}))
}

func TestAdjustedHoursEmptyDailyEntries(t *testing.T) {
	// An empty slice dispatches to the fallback path, not a zero-day sum.
	hours := 9.0
	tc := model.Timecard{TotalHours: &hours, DailyEntries: []model.DailyEntry{}}
	assert.InDelta(t, 9.5, payroll.AdjustedHours(tc), 1e-9)
}

func TestCustomTiers(t *testing.T) {
	tiers := payroll.Tiers{RegularLimit: 10, OvertimeLimit: 14, OvertimeRate: 1.25, DoubleTimeRate: 1.75}
	b := tiers.BreakdownForDay(16)
	require.Equal(t, 10.0, b.Regular)
	require.Equal(t, 4.0, b.Overtime)
	require.Equal(t, 2.0, b.DoubleTime)
	assert.InDelta(t, 10+4*1.25+2*1.75, b.Adjusted, 1e-9)
}
