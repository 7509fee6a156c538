// Package payroll converts raw worked hours into payable "adjusted hours"
// using the production-standard overtime ladder: straight time up to 8 hours,
// time-and-a-half from 8 to 12, double time past 12.
//
// This is the reporting model. It is intentionally separate from the pay
// computation in internal/engine, which applies a simpler two-tier
// regular/overtime rate when pricing a single card; the two ladders serve
// different call sites and must not be unified.
package payroll

import "github.com/slateworks/crewtime/internal/model"

// Tiers holds the hour thresholds and premium multipliers for one adjusted-
// hours ladder. Thresholds are cumulative: hours up to RegularLimit count
// straight, hours up to OvertimeLimit count at OvertimeRate, the rest at
// DoubleTimeRate.
type Tiers struct {
	RegularLimit   float64
	OvertimeLimit  float64
	OvertimeRate   float64
	DoubleTimeRate float64
}

// DefaultTiers is the standard 8/12 ladder with 1.5x and 2x premiums.
var DefaultTiers = Tiers{
	RegularLimit:   8,
	OvertimeLimit:  12,
	OvertimeRate:   1.5,
	DoubleTimeRate: 2.0,
}

// Breakdown splits a day's (or card's) hours into premium tiers.
// Regular + Overtime*OvertimeRate + DoubleTime*DoubleTimeRate == Adjusted,
// within floating-point rounding.
type Breakdown struct {
	Regular    float64 `json:"regular_hours"`
	Overtime   float64 `json:"overtime_hours"`
	DoubleTime float64 `json:"double_time_hours"`
	Adjusted   float64 `json:"adjusted_hours"`
}

// BreakdownForDay splits a single day's worked hours into tiers.
// Negative input is treated as zero.
func (t Tiers) BreakdownForDay(hours float64) Breakdown {
	if hours < 0 {
		hours = 0
	}
	regular := min(hours, t.RegularLimit)
	overtime := min(max(hours-t.RegularLimit, 0), t.OvertimeLimit-t.RegularLimit)
	doubleTime := max(hours-t.OvertimeLimit, 0)
	return Breakdown{
		Regular:    regular,
		Overtime:   overtime,
		DoubleTime: doubleTime,
		Adjusted:   regular + overtime*t.OvertimeRate + doubleTime*t.DoubleTimeRate,
	}
}

// AdjustedHoursForDay returns a single day's payable hours after premiums.
func (t Tiers) AdjustedHoursForDay(hours float64) float64 {
	return t.BreakdownForDay(hours).Adjusted
}

// Breakdown tiers a whole timecard. Cards carrying daily entries are tiered
// per day and summed, ignoring any top-level total; single-day cards fall
// back to the card's total hours (missing total counts as zero).
func (t Tiers) Breakdown(tc model.Timecard) Breakdown {
	if len(tc.DailyEntries) > 0 {
		var sum Breakdown
		for _, day := range tc.DailyEntries {
			b := t.BreakdownForDay(day.HoursWorked)
			sum.Regular += b.Regular
			sum.Overtime += b.Overtime
			sum.DoubleTime += b.DoubleTime
			sum.Adjusted += b.Adjusted
		}
		return sum
	}
	var hours float64
	if tc.TotalHours != nil {
		hours = *tc.TotalHours
	}
	return t.BreakdownForDay(hours)
}

// AdjustedHours returns a whole timecard's payable hours after premiums,
// with the same daily-entries dispatch as Breakdown.
func (t Tiers) AdjustedHours(tc model.Timecard) float64 {
	return t.Breakdown(tc).Adjusted
}

// Package-level conveniences over DefaultTiers.

func AdjustedHoursForDay(hours float64) float64 {
	return DefaultTiers.AdjustedHoursForDay(hours)
}

func BreakdownForDay(hours float64) Breakdown {
	return DefaultTiers.BreakdownForDay(hours)
}

func AdjustedHours(tc model.Timecard) float64 {
	return DefaultTiers.AdjustedHours(tc)
}

func GetBreakdown(tc model.Timecard) Breakdown {
	return DefaultTiers.Breakdown(tc)
}
