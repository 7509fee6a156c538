// Package engine validates a single timecard's raw time fields and computes
// its worked duration, break deduction and resulting pay.
//
// Pay is priced on a two-tier regular/overtime-rate model. This is distinct
// from the three-tier adjusted-hours ladder in internal/payroll, which is a
// reporting figure; do not unify the two.
package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/slateworks/crewtime/internal/model"
	"github.com/slateworks/crewtime/internal/timecalc"
)

// Config carries the engine's tunables. All values have working defaults;
// see DefaultConfig and the corresponding config-file section.
type Config struct {
	// DefaultBreakMinutes is the standard meal break a recorded break is
	// snapped to when it falls within the grace window.
	DefaultBreakMinutes float64
	// BreakGraceMinutes is the tolerance around the default break within
	// which an actual break duration is treated as the default.
	BreakGraceMinutes float64
	// ShiftLimitHours is the sanity cap on a single shift's elapsed span;
	// anything longer needs manual review.
	ShiftLimitHours float64
	// OvertimeAfterHours is where the overtime rate kicks in for hourly
	// cards that have one configured.
	OvertimeAfterHours float64
}

// DefaultConfig returns the standard tunables: 30-minute break with a
// 5-minute grace window, 20-hour shift limit, overtime after 8 hours.
func DefaultConfig() Config {
	return Config{
		DefaultBreakMinutes: 30,
		BreakGraceMinutes:   5,
		ShiftLimitHours:     20,
		OvertimeAfterHours:  8,
	}
}

// RateSource looks up the configured pay rate for a crew member on a
// production. A (nil, nil) return means no rate is configured, which is not
// an error; infrastructure failures are returned as errors and propagate
// out of Calculate unwrapped in meaning.
type RateSource interface {
	Lookup(ctx context.Context, crewID, production string) (*model.PayRate, error)
}

// Calculator prices timecards. It is stateless per invocation; concurrent
// Calculate calls are safe as long as the RateSource is.
type Calculator struct {
	cfg   Config
	rates RateSource
}

// New returns a Calculator with the given tunables and rate source.
func New(cfg Config, rates RateSource) *Calculator {
	return &Calculator{cfg: cfg, rates: rates}
}

// ApplyBreakGracePeriod snaps an actual break duration (minutes) to the
// default when it is within graceMinutes of it; otherwise the actual
// duration is used verbatim.
func ApplyBreakGracePeriod(actualMinutes, defaultMinutes, graceMinutes float64) float64 {
	if math.Abs(actualMinutes-defaultMinutes) <= graceMinutes {
		return defaultMinutes
	}
	return actualMinutes
}

// Calculate validates tc and computes its totals. Validation findings are
// reported on the result, never as an error; callers should treat the list
// as an unordered set. The only error return is a failed rate lookup.
// Invalid cards come back with zeroed totals.
func (c *Calculator) Calculate(ctx context.Context, tc model.Timecard) (model.CalculationResult, error) {
	result := model.CalculationResult{
		ManuallyEdited:   tc.ManuallyEdited,
		ValidationErrors: []string{},
	}

	if tc.CheckIn == nil {
		result.ValidationErrors = append(result.ValidationErrors, "Check-in time is required")
	}
	if tc.CheckIn != nil && tc.CheckOut != nil {
		if !tc.CheckOut.After(*tc.CheckIn) {
			result.ValidationErrors = append(result.ValidationErrors, "Check-out time must be after check-in time")
		}
		if tc.CheckOut.Sub(*tc.CheckIn).Hours() > c.cfg.ShiftLimitHours {
			result.ValidationErrors = append(result.ValidationErrors,
				fmt.Sprintf("Shift exceeds %g-hour limit - requires manual review", c.cfg.ShiftLimitHours))
		}
	}

	result.IsValid = len(result.ValidationErrors) == 0
	if !result.IsValid {
		log.Debug().
			Str("timecard", tc.ID).
			Strs("errors", result.ValidationErrors).
			Msg("timecard failed validation")
		return result, nil
	}

	// An open card (no check-out yet) is valid but has nothing to price.
	var rawHours float64
	if tc.CheckIn != nil && tc.CheckOut != nil {
		rawHours = tc.CheckOut.Sub(*tc.CheckIn).Hours()
	}

	var breakMinutes float64
	if tc.BreakStart != nil && tc.BreakEnd != nil {
		actual := tc.BreakEnd.Sub(*tc.BreakStart).Minutes()
		if actual < 0 {
			actual = 0
		}
		breakMinutes = ApplyBreakGracePeriod(actual, c.cfg.DefaultBreakMinutes, c.cfg.BreakGraceMinutes)
	}

	totalHours := rawHours - breakMinutes/60
	if totalHours < 0 {
		totalHours = 0
	}
	totalHours = timecalc.Round2(totalHours)

	result.TotalHours = totalHours
	result.BreakMinutes = breakMinutes

	rate, err := c.rates.Lookup(ctx, tc.CrewID, tc.Production)
	if err != nil {
		return model.CalculationResult{}, fmt.Errorf("pay rate lookup for %s/%s: %w", tc.CrewID, tc.Production, err)
	}
	if rate == nil {
		// No configured rate yields zero pay, not a validation failure.
		log.Debug().
			Str("crew", tc.CrewID).
			Str("production", tc.Production).
			Msg("no pay rate configured; pay set to 0")
		return result, nil
	}

	result.TotalPay = timecalc.Round2(c.pay(totalHours, rate))
	return result, nil
}

// pay prices the worked hours against one rate record.
func (c *Calculator) pay(hours float64, rate *model.PayRate) float64 {
	if rate.Role.TimeType == model.TimeTypeDaily {
		// Flat day rate regardless of hours worked.
		if rate.DailyRate != nil {
			return *rate.DailyRate
		}
		return rate.Role.BasePayRate
	}

	hourly := rate.PayRate
	if hourly == 0 {
		hourly = rate.Role.BasePayRate
	}
	if rate.OvertimeRate != nil && hours > c.cfg.OvertimeAfterHours {
		return c.cfg.OvertimeAfterHours*hourly + (hours-c.cfg.OvertimeAfterHours)*(*rate.OvertimeRate)
	}
	return hours * hourly
}
