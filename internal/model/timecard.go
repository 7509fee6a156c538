// Package model defines the core data structures for crewtime.
package model

import "time"

// Timecard represents one crew member's work record for a single day on a
// production. Optional timestamps are pointers; a nil CheckOut marks an open
// (still running) card.
type Timecard struct {
	ID             string       `json:"id"`
	CrewID         string       `json:"crew_id"`
	Production     string       `json:"production"`
	WorkDate       string       `json:"work_date"`
	CheckIn        *time.Time   `json:"check_in"`
	CheckOut       *time.Time   `json:"check_out"`
	BreakStart     *time.Time   `json:"break_start"`
	BreakEnd       *time.Time   `json:"break_end"`
	Status         Status       `json:"status"`
	ManuallyEdited bool         `json:"manually_edited"`
	DailyEntries   []DailyEntry `json:"daily_entries,omitempty"`
	TotalHours     *float64     `json:"total_hours,omitempty"`
	BreakMinutes   *float64     `json:"break_minutes,omitempty"`
	TotalPay       *float64     `json:"total_pay,omitempty"`
	Notes          *string      `json:"notes,omitempty"`
	ExternalID     string       `json:"external_id,omitempty"`
	Source         string       `json:"source"`
}

// DailyEntry is a per-day hour total, used when a card covers several work
// dates (e.g. a distant-location week entered as one card).
type DailyEntry struct {
	WorkDate    string  `json:"work_date"`
	HoursWorked float64 `json:"hours_worked"`
}

// CalculationResult is the outcome of running a timecard through the
// calculation engine. Validation findings never abort the calculation call;
// they are reported here and IsValid reflects their absence.
type CalculationResult struct {
	TotalHours       float64  `json:"total_hours"`
	BreakMinutes     float64  `json:"break_minutes"`
	TotalPay         float64  `json:"total_pay"`
	IsValid          bool     `json:"is_valid"`
	ValidationErrors []string `json:"validation_errors"`
	ManuallyEdited   bool     `json:"manually_edited"`
}

// Time type tags on a role template.
const (
	TimeTypeHourly = "hourly"
	TimeTypeDaily  = "daily"
)

// RoleTemplate carries the department role a rate was assigned under.
type RoleTemplate struct {
	Name        string  `json:"name" yaml:"name"`
	TimeType    string  `json:"time_type" yaml:"time_type"`
	BasePayRate float64 `json:"base_pay_rate" yaml:"base_pay_rate"`
}

// PayRate is the configured compensation for one crew member on one
// production. OvertimeRate and DailyRate are optional; when TimeType is
// "daily" the DailyRate (or the role's base rate) applies regardless of
// hours worked.
type PayRate struct {
	PayRate      float64      `json:"pay_rate" yaml:"pay_rate"`
	OvertimeRate *float64     `json:"overtime_rate,omitempty" yaml:"overtime_rate,omitempty"`
	DailyRate    *float64     `json:"daily_rate,omitempty" yaml:"daily_rate,omitempty"`
	Role         RoleTemplate `json:"role" yaml:"role"`
}

// DayFile is the top-level structure stored in each daily JSON file.
type DayFile struct {
	Date      string     `json:"date"`
	Timecards []Timecard `json:"timecards"`
}
