package msgraph

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/slateworks/crewtime/internal/model"
	"github.com/slateworks/crewtime/internal/storage"
)

// SyncResult holds counters for a sync operation.
type SyncResult struct {
	Imported int
	Skipped  int
	Updated  int
	Errors   int
}

// SyncOptions configures a sync run.
type SyncOptions struct {
	Base       string
	From       time.Time
	To         time.Time
	DryRun     bool
	CrewID     string
	Production string
}

// parseGraphTime parses a Graph API dateTime string in the given timezone.
// Graph returns times like "2026-02-27T09:00:00.0000000" without a zone suffix
// when a Prefer: outlook.timezone header is set.
func parseGraphTime(dt, tz string) (time.Time, error) {
	// Try RFC3339 first (includes timezone offset).
	if t, err := time.Parse(time.RFC3339, dt); err == nil {
		return t, nil
	}
	// Try RFC3339Nano.
	if t, err := time.Parse(time.RFC3339Nano, dt); err == nil {
		return t, nil
	}

	loc := time.UTC
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}

	// Graph returns fractional seconds: "2026-02-27T09:00:00.0000000"
	for _, layout := range []string{
		"2006-01-02T15:04:05.0000000",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.ParseInLocation(layout, dt, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse graph time %q", dt)
}

// buildNotes combines bodyPreview and location into a notes string.
func buildNotes(event ScheduleEvent) *string {
	parts := []string{}
	if event.BodyPreview != "" {
		parts = append(parts, event.BodyPreview)
	}
	if event.Location.DisplayName != "" {
		parts = append(parts, event.Location.DisplayName)
	}
	if len(parts) == 0 {
		return nil
	}
	s := strings.Join(parts, "\n")
	return &s
}

// shouldSkip returns true if the event should not be imported.
func shouldSkip(event ScheduleEvent) bool {
	if event.IsCancelled {
		return true
	}
	if event.IsAllDay {
		return true
	}
	if event.Sensitivity == "private" {
		return true
	}
	if event.ShowAs == "free" {
		return true
	}
	if event.Start.DateTime == "" || event.End.DateTime == "" {
		return true
	}
	return false
}

// MapEventToTimecard converts a Graph schedule event into a draft timecard:
// the call time becomes the check-in, the scheduled wrap the check-out. The
// card stays in draft so actual times can be corrected before submission.
func MapEventToTimecard(event ScheduleEvent, timezone, crewID, production string) (model.Timecard, time.Time, error) {
	callTime, err := parseGraphTime(event.Start.DateTime, timezone)
	if err != nil {
		return model.Timecard{}, time.Time{}, fmt.Errorf("parsing call time: %w", err)
	}
	wrapTime, err := parseGraphTime(event.End.DateTime, timezone)
	if err != nil {
		return model.Timecard{}, time.Time{}, fmt.Errorf("parsing wrap time: %w", err)
	}

	tc := model.Timecard{
		ID:         uuid.NewString(),
		CrewID:     crewID,
		Production: production,
		WorkDate:   callTime.Format("2006-01-02"),
		CheckIn:    &callTime,
		CheckOut:   &wrapTime,
		Status:     model.StatusDraft,
		Notes:      buildNotes(event),
		ExternalID: event.ID,
		Source:     "outlook",
	}
	return tc, callTime, nil
}

// findByExternalID searches loaded cards for one with the given external_id.
func findByExternalID(cards []model.Timecard, externalID string) *model.Timecard {
	for i := range cards {
		if cards[i].ExternalID == externalID {
			return &cards[i]
		}
	}
	return nil
}

// sameSchedule reports whether an existing card already matches the event's
// call and wrap times.
func sameSchedule(existing *model.Timecard, incoming model.Timecard) bool {
	return existing.CheckIn != nil && incoming.CheckIn != nil && existing.CheckIn.Equal(*incoming.CheckIn) &&
		existing.CheckOut != nil && incoming.CheckOut != nil && existing.CheckOut.Equal(*incoming.CheckOut)
}

// SyncEvents processes a slice of Graph events and persists them as draft
// timecards. It prints progress to stdout and returns a SyncResult. Cards
// that left draft (submitted/approved) are never touched.
func SyncEvents(events []ScheduleEvent, opts SyncOptions, timezone string) (SyncResult, error) {
	var result SyncResult

	for _, event := range events {
		if shouldSkip(event) {
			continue
		}

		tc, callTime, err := MapEventToTimecard(event, timezone, opts.CrewID, opts.Production)
		if err != nil {
			fmt.Printf("  ! Error mapping event %q: %v\n", event.Subject, err)
			result.Errors++
			continue
		}

		// Load the day file to check for an existing card by external_id.
		existing, loadErr := storage.LoadDay(opts.Base, callTime)
		if loadErr != nil {
			fmt.Printf("  ! Error loading day for %q: %v\n", event.Subject, loadErr)
			result.Errors++
			continue
		}

		found := findByExternalID(existing.Timecards, event.ID)
		if found != nil {
			if sameSchedule(found, tc) {
				fmt.Printf("  – Skipped:  %s (already exists)\n", event.Subject)
				result.Skipped++
				continue
			}
			if !model.Editable(found.Status) {
				log.Warn().
					Str("timecard", found.ID).
					Str("status", string(found.Status)).
					Msg("schedule changed but card already left draft; not updating")
				result.Skipped++
				continue
			}
			// Update: preserve the original ID but take the new schedule.
			tc.ID = found.ID
			if !opts.DryRun {
				if err := storage.UpdateTimecard(opts.Base, callTime, tc); err != nil {
					fmt.Printf("  ! Error updating %q: %v\n", event.Subject, err)
					result.Errors++
					continue
				}
			}
			fmt.Printf("  ↑ Updated:  %s (%s–%s)\n", event.Subject,
				tc.CheckIn.Format("15:04"), tc.CheckOut.Format("15:04"))
			result.Updated++
			continue
		}

		// New draft card.
		if !opts.DryRun {
			if err := storage.UpdateTimecard(opts.Base, callTime, tc); err != nil {
				fmt.Printf("  ! Error saving %q: %v\n", event.Subject, err)
				result.Errors++
				continue
			}
		}
		fmt.Printf("  ✓ Imported: %s (%s–%s)\n", event.Subject,
			tc.CheckIn.Format("15:04"), tc.CheckOut.Format("15:04"))
		result.Imported++
	}

	return result, nil
}
