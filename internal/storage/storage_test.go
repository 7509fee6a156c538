package storage_test

import (
	"os"
	"testing"
	"time"

	"github.com/slateworks/crewtime/internal/model"
	"github.com/slateworks/crewtime/internal/storage"
)

func TestLoadDayNotExist(t *testing.T) {
	base := t.TempDir()
	day := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)
	df, err := storage.LoadDay(base, day)
	if err != nil {
		t.Fatalf("LoadDay on missing file: %v", err)
	}
	if df.Date != "2026-02-27" {
		t.Errorf("LoadDay date = %q, want %q", df.Date, "2026-02-27")
	}
	if len(df.Timecards) != 0 {
		t.Errorf("LoadDay timecards = %d, want 0", len(df.Timecards))
	}
}

func TestSaveDayAndLoadDay(t *testing.T) {
	base := t.TempDir()
	day := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)
	checkIn := day.Add(9 * time.Hour)

	df := model.DayFile{
		Date: "2026-02-27",
		Timecards: []model.Timecard{
			{
				ID:         "tc-1",
				CrewID:     "crew-ava",
				Production: "sunset-blvd",
				WorkDate:   "2026-02-27",
				CheckIn:    &checkIn,
				Status:     model.StatusDraft,
				Source:     "manual",
			},
		},
	}

	if err := storage.SaveDay(base, day, df); err != nil {
		t.Fatalf("SaveDay: %v", err)
	}

	loaded, err := storage.LoadDay(base, day)
	if err != nil {
		t.Fatalf("LoadDay after save: %v", err)
	}
	if len(loaded.Timecards) != 1 {
		t.Fatalf("LoadDay timecards = %d, want 1", len(loaded.Timecards))
	}
	if loaded.Timecards[0].Production != "sunset-blvd" {
		t.Errorf("LoadDay production = %q, want %q", loaded.Timecards[0].Production, "sunset-blvd")
	}
	if loaded.Timecards[0].Status != model.StatusDraft {
		t.Errorf("LoadDay status = %q, want %q", loaded.Timecards[0].Status, model.StatusDraft)
	}
}

func TestLoadDayCorruptBackup(t *testing.T) {
	// Verify that a corrupt JSON file is backed up and returns an error.
	base := t.TempDir()
	day := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)

	path := base + "/timecards/2026/02/27.json"
	if err := os.MkdirAll(base+"/timecards/2026/02", 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{bad json"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := storage.LoadDay(base, day)
	if err == nil {
		t.Fatal("expected error for corrupt JSON, got nil")
	}

	// Backup file should exist.
	if _, err2 := os.Stat(path + ".corrupt"); os.IsNotExist(err2) {
		t.Error("expected backup file to exist after corrupt JSON")
	}
}

func TestUpdateTimecard(t *testing.T) {
	base := t.TempDir()
	day := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)
	checkIn := day.Add(9 * time.Hour)

	tc := model.Timecard{
		ID:         "tc-1",
		CrewID:     "crew-ava",
		Production: "sunset-blvd",
		WorkDate:   "2026-02-27",
		CheckIn:    &checkIn,
		Status:     model.StatusDraft,
		Source:     "manual",
	}

	if err := storage.UpdateTimecard(base, day, tc); err != nil {
		t.Fatalf("UpdateTimecard (insert): %v", err)
	}

	// Update the same card.
	checkOut := checkIn.Add(8 * time.Hour)
	tc.CheckOut = &checkOut
	tc.Status = model.StatusSubmitted
	if err := storage.UpdateTimecard(base, day, tc); err != nil {
		t.Fatalf("UpdateTimecard (update): %v", err)
	}

	df, err := storage.LoadDay(base, day)
	if err != nil {
		t.Fatalf("LoadDay: %v", err)
	}
	if len(df.Timecards) != 1 {
		t.Fatalf("expected 1 timecard, got %d", len(df.Timecards))
	}
	if df.Timecards[0].CheckOut == nil || !df.Timecards[0].CheckOut.Equal(checkOut) {
		t.Errorf("check-out = %v, want %v", df.Timecards[0].CheckOut, checkOut)
	}
	if df.Timecards[0].Status != model.StatusSubmitted {
		t.Errorf("status = %q, want %q", df.Timecards[0].Status, model.StatusSubmitted)
	}
}

func TestFindOpenTimecard(t *testing.T) {
	base := t.TempDir()
	yesterday := time.Now().AddDate(0, 0, -1)
	checkIn := yesterday.Add(-2 * time.Hour)

	tc := model.Timecard{
		ID:         "tc-open",
		CrewID:     "crew-ava",
		Production: "sunset-blvd",
		WorkDate:   yesterday.Format("2006-01-02"),
		CheckIn:    &checkIn,
		Status:     model.StatusDraft,
		Source:     "manual",
	}
	if err := storage.UpdateTimecard(base, yesterday, tc); err != nil {
		t.Fatalf("UpdateTimecard: %v", err)
	}

	found, day, err := storage.FindOpenTimecard(base)
	if err != nil {
		t.Fatalf("FindOpenTimecard: %v", err)
	}
	if found == nil {
		t.Fatal("expected an open timecard")
	}
	if found.ID != "tc-open" {
		t.Errorf("ID = %q, want %q", found.ID, "tc-open")
	}
	if day.Format("2006-01-02") != yesterday.Format("2006-01-02") {
		t.Errorf("day = %s, want %s", day.Format("2006-01-02"), yesterday.Format("2006-01-02"))
	}
}

func TestFindOpenTimecardNone(t *testing.T) {
	base := t.TempDir()
	found, _, err := storage.FindOpenTimecard(base)
	if err != nil {
		t.Fatalf("FindOpenTimecard: %v", err)
	}
	if found != nil {
		t.Errorf("expected no open timecard, got %q", found.ID)
	}
}

func TestFindTimecard(t *testing.T) {
	base := t.TempDir()
	day := time.Now().AddDate(0, 0, -3)
	checkIn := day
	checkOut := day.Add(8 * time.Hour)

	tc := model.Timecard{
		ID:       "tc-find",
		CrewID:   "crew-sam",
		WorkDate: day.Format("2006-01-02"),
		CheckIn:  &checkIn,
		CheckOut: &checkOut,
		Status:   model.StatusSubmitted,
		Source:   "manual",
	}
	if err := storage.UpdateTimecard(base, day, tc); err != nil {
		t.Fatalf("UpdateTimecard: %v", err)
	}

	found, foundDay, err := storage.FindTimecard(base, "tc-find")
	if err != nil {
		t.Fatalf("FindTimecard: %v", err)
	}
	if found.CrewID != "crew-sam" {
		t.Errorf("CrewID = %q, want %q", found.CrewID, "crew-sam")
	}
	if foundDay.Format("2006-01-02") != day.Format("2006-01-02") {
		t.Errorf("day = %s, want %s", foundDay.Format("2006-01-02"), day.Format("2006-01-02"))
	}

	if _, _, err := storage.FindTimecard(base, "tc-missing"); err == nil {
		t.Error("expected error for unknown timecard ID")
	}
}

func TestLoadRange(t *testing.T) {
	base := t.TempDir()
	start := time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		day := start.AddDate(0, 0, i)
		checkIn := day.Add(9 * time.Hour)
		tc := model.Timecard{
			ID:       "tc-" + day.Format("02"),
			CrewID:   "crew-ava",
			WorkDate: day.Format("2006-01-02"),
			CheckIn:  &checkIn,
			Status:   model.StatusDraft,
			Source:   "manual",
		}
		if err := storage.UpdateTimecard(base, day, tc); err != nil {
			t.Fatalf("UpdateTimecard day %d: %v", i, err)
		}
	}

	cards, err := storage.LoadRange(base, start, start.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("LoadRange: %v", err)
	}
	if len(cards) != 3 {
		t.Errorf("LoadRange cards = %d, want 3", len(cards))
	}
}
