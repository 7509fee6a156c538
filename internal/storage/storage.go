package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/slateworks/crewtime/internal/model"
)

// findLookbackDays bounds the recent-days scans below. Cards older than a
// month are assumed settled; anything needing attention past that is found
// via list/report date ranges instead.
const findLookbackDays = 31

// BaseDir returns the root data directory (~/.crewtime).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".crewtime"), nil
}

// dayFilePath returns the path for the given date's timecard file.
func dayFilePath(base string, t time.Time) string {
	return filepath.Join(base, "timecards", t.Format("2006"), t.Format("01"), t.Format("02")+".json")
}

// LoadDay loads the DayFile for the given date. Returns an empty DayFile if not found.
func LoadDay(base string, t time.Time) (model.DayFile, error) {
	path := dayFilePath(base, t)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return model.DayFile{Date: t.Format("2006-01-02"), Timecards: []model.Timecard{}}, nil
	}
	if err != nil {
		return model.DayFile{}, fmt.Errorf("storage error reading %s: %w", path, err)
	}

	var df model.DayFile
	if err := json.Unmarshal(data, &df); err != nil {
		// Back up corrupt file and abort.
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		return model.DayFile{}, fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", path, backupPath, err)
	}
	return df, nil
}

// SaveDay atomically writes a DayFile for the given date.
func SaveDay(base string, t time.Time, df model.DayFile) error {
	path := dayFilePath(base, t)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	data, err := json.MarshalIndent(df, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

// FindOpenTimecard searches recent day files (most recent first) for a card
// with no check-out. It returns the card and the date it was found on.
func FindOpenTimecard(base string) (*model.Timecard, time.Time, error) {
	// Check today and the past few days to handle crash-recovery across midnight.
	now := time.Now()
	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, -i)
		df, err := LoadDay(base, day)
		if err != nil {
			return nil, time.Time{}, err
		}
		for j := len(df.Timecards) - 1; j >= 0; j-- {
			if df.Timecards[j].CheckOut == nil {
				return &df.Timecards[j], day, nil
			}
		}
	}
	return nil, time.Time{}, nil
}

// FindTimecard locates a card by ID within the lookback window. Workflow
// commands (submit/approve/reject) reference cards this way.
func FindTimecard(base, id string) (*model.Timecard, time.Time, error) {
	now := time.Now()
	for i := 0; i < findLookbackDays; i++ {
		day := now.AddDate(0, 0, -i)
		df, err := LoadDay(base, day)
		if err != nil {
			return nil, time.Time{}, err
		}
		for j := range df.Timecards {
			if df.Timecards[j].ID == id {
				return &df.Timecards[j], day, nil
			}
		}
	}
	return nil, time.Time{}, fmt.Errorf("no timecard %q in the last %d days", id, findLookbackDays)
}

// UpdateTimecard replaces or appends a card in the DayFile for the given date.
func UpdateTimecard(base string, day time.Time, tc model.Timecard) error {
	df, err := LoadDay(base, day)
	if err != nil {
		return err
	}
	for i, existing := range df.Timecards {
		if existing.ID == tc.ID {
			df.Timecards[i] = tc
			return SaveDay(base, day, df)
		}
	}
	df.Timecards = append(df.Timecards, tc)
	return SaveDay(base, day, df)
}

// LoadRange loads all timecards in [from, to] inclusive.
func LoadRange(base string, from, to time.Time) ([]model.Timecard, error) {
	var cards []model.Timecard
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		df, err := LoadDay(base, d)
		if err != nil {
			return nil, err
		}
		cards = append(cards, df.Timecards...)
	}
	return cards, nil
}
