package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingWritesTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom on missing file: %v", err)
	}
	if cfg.Engine.DefaultBreakMinutes != DefaultBreakMinutes {
		t.Errorf("DefaultBreakMinutes = %v, want %v", cfg.Engine.DefaultBreakMinutes, DefaultBreakMinutes)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected template to be written: %v", err)
	}

	// The written template must itself parse back to the defaults.
	reloaded, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom on written template: %v", err)
	}
	if reloaded.Outlook.TenantID != DefaultTenantID {
		t.Errorf("TenantID = %q, want %q", reloaded.Outlook.TenantID, DefaultTenantID)
	}
	if reloaded.Engine.ShiftLimitHours != DefaultShiftLimitHours {
		t.Errorf("ShiftLimitHours = %v, want %v", reloaded.Engine.ShiftLimitHours, DefaultShiftLimitHours)
	}
}

func TestLoadFromPartialBackfill(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `
// partial config – only the crew section is filled in
{
  "crew": {
    "default_id": "crew-ava"
  },
  "engine": {
    "shift_limit_hours": 16
  }
}
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom: %v", err)
	}
	if cfg.Crew.DefaultID != "crew-ava" {
		t.Errorf("DefaultID = %q, want %q", cfg.Crew.DefaultID, "crew-ava")
	}
	if cfg.Engine.ShiftLimitHours != 16 {
		t.Errorf("ShiftLimitHours = %v, want 16", cfg.Engine.ShiftLimitHours)
	}
	if cfg.Engine.DefaultBreakMinutes != DefaultBreakMinutes {
		t.Errorf("DefaultBreakMinutes = %v, want backfilled %v", cfg.Engine.DefaultBreakMinutes, DefaultBreakMinutes)
	}
	if cfg.Outlook.ClientID != DefaultClientID {
		t.Errorf("ClientID = %q, want backfilled default", cfg.Outlook.ClientID)
	}
}

func TestRatesFilePath(t *testing.T) {
	cfg := defaultConfig()
	if got := cfg.RatesFilePath("/data"); got != filepath.Join("/data", "rates.yaml") {
		t.Errorf("RatesFilePath default = %q", got)
	}
	cfg.Crew.RatesFile = "/etc/crewtime/rates.yaml"
	if got := cfg.RatesFilePath("/data"); got != "/etc/crewtime/rates.yaml" {
		t.Errorf("RatesFilePath override = %q", got)
	}
}

func TestStripLineComments(t *testing.T) {
	// The final empty element of the split keeps its newline; JSON parsing
	// does not care.
	in := []byte("// comment\n{\n  // indented comment\n  \"a\": 1\n}\n")
	got := string(stripLineComments(in))
	want := "{\n  \"a\": 1\n}\n\n"
	if got != want {
		t.Errorf("stripLineComments = %q, want %q", got, want)
	}
}
