package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the root configuration for crewtime, stored in
// ~/.crewtime/config.json. The file supports single-line // comments for
// documentation purposes.
type Config struct {
	Engine  EngineConfig  `json:"engine"`
	Crew    CrewConfig    `json:"crew"`
	Outlook OutlookConfig `json:"outlook"`
}

// EngineConfig holds the timecard calculation tunables. Zero values are
// backfilled with the built-in defaults on load.
type EngineConfig struct {
	// DefaultBreakMinutes is the standard meal break duration.
	DefaultBreakMinutes float64 `json:"default_break_minutes"`
	// BreakGraceMinutes is the window around the default within which a
	// recorded break is snapped to the default.
	BreakGraceMinutes float64 `json:"break_grace_minutes"`
	// ShiftLimitHours is the sanity cap on a single shift's span.
	ShiftLimitHours float64 `json:"shift_limit_hours"`
	// OvertimeAfterHours is where the configured overtime rate kicks in.
	OvertimeAfterHours float64 `json:"overtime_after_hours"`
}

// CrewConfig identifies the local crew member and the rates roster file.
type CrewConfig struct {
	// DefaultID is the crew member recorded on cards created by this machine.
	DefaultID string `json:"default_id"`
	// RatesFile is the path to the YAML pay-rate roster. Empty means
	// ~/.crewtime/rates.yaml.
	RatesFile string `json:"rates_file"`
}

// OutlookConfig holds Microsoft Graph settings for importing scheduled
// call-sheet events as draft timecards.
type OutlookConfig struct {
	// TenantID is the Azure AD tenant. Use "common" for personal/multi-tenant accounts.
	TenantID string `json:"tenant_id"`
	// ClientID is the Azure app (client) ID for the OAuth2 device code flow.
	ClientID string `json:"client_id"`
	// DefaultProduction is the production assigned to imported events.
	DefaultProduction string `json:"default_production"`
	// Timezone is the IANA timezone for event times (e.g. "America/Los_Angeles"). Empty = UTC.
	Timezone string `json:"timezone"`
}

const (
	// DefaultBreakMinutes is the standard 30-minute meal break.
	DefaultBreakMinutes = 30
	// DefaultBreakGraceMinutes is the snap window around the default break.
	DefaultBreakGraceMinutes = 5
	// DefaultShiftLimitHours caps a single shift's elapsed span.
	DefaultShiftLimitHours = 20
	// DefaultOvertimeAfterHours is the hourly overtime threshold.
	DefaultOvertimeAfterHours = 8

	// DefaultTenantID is the Microsoft "common" tenant (supports personal and
	// multi-tenant organisational accounts without additional registration).
	DefaultTenantID = "common"
	// DefaultClientID is the well-known public Azure CLI app ID.
	// It supports device code flow without a client secret and requires no
	// app registration. Replace with your own registered app ID for
	// organisational or production deployments.
	DefaultClientID = "04b07795-8542-4c4a-95af-30b2c573d5ab"
	// DefaultProduction is the production used when none is specified.
	DefaultProduction = "unassigned"
)

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{
		Engine: EngineConfig{
			DefaultBreakMinutes: DefaultBreakMinutes,
			BreakGraceMinutes:   DefaultBreakGraceMinutes,
			ShiftLimitHours:     DefaultShiftLimitHours,
			OvertimeAfterHours:  DefaultOvertimeAfterHours,
		},
		Crew: CrewConfig{
			DefaultID: "",
			RatesFile: "",
		},
		Outlook: OutlookConfig{
			TenantID:          DefaultTenantID,
			ClientID:          DefaultClientID,
			DefaultProduction: DefaultProduction,
			Timezone:          "",
		},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// crewtime configuration – ~/.crewtime/config.json
//
// All settings are optional; the built-in defaults shown below match common
// production payroll rules. Edit this file to customise crewtime behaviour.
{
  // ── Timecard calculation ─────────────────────────────────────────────────
  "engine": {
    // Standard meal break in minutes. Recorded breaks within the grace
    // window below are snapped to this value.
    "default_break_minutes": 30,

    // Snap window (minutes) around the default break.
    "break_grace_minutes": 5,

    // Hard cap on a single shift's elapsed span; longer shifts are flagged
    // for manual review and cannot be submitted.
    "shift_limit_hours": 20,

    // Hours after which a configured overtime rate applies on hourly cards.
    "overtime_after_hours": 8
  },

  // ── Crew member and pay rates ────────────────────────────────────────────
  "crew": {
    // Crew member ID recorded on cards created here. Must match an "id" in
    // the rates roster. Can be overridden per-command with --crew <id>.
    "default_id": "",

    // Path to the YAML pay-rate roster. Empty = ~/.crewtime/rates.yaml.
    "rates_file": ""
  },

  // ── Microsoft Graph / Outlook schedule import ────────────────────────────
  "outlook": {
    // Azure AD tenant ID.
    // • "common"  – personal Microsoft accounts and any organisation (default)
    // • Your organisation's tenant GUID, e.g. "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx"
    "tenant_id": "common",

    // Azure application (client) ID used for the OAuth2 device code flow.
    // The built-in value is the public Azure CLI app – no app registration needed.
    "client_id": "04b07795-8542-4c4a-95af-30b2c573d5ab",

    // Production assigned to imported schedule events.
    // Can be overridden per-sync with: crewtime outlook sync --production <name>
    "default_production": "unassigned",

    // IANA timezone for interpreting event times, e.g. "America/Los_Angeles".
    // Leave empty to use UTC.
    "timezone": ""
  }
}
`

// configFilePath returns the path to ~/.crewtime/config.json.
func configFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".crewtime", "config.json"), nil
}

// RatesFilePath resolves the rates roster location, honouring the config
// override and defaulting to ~/.crewtime/rates.yaml.
func (c Config) RatesFilePath(base string) string {
	if c.Crew.RatesFile != "" {
		return c.Crew.RatesFile
	}
	return filepath.Join(base, "rates.yaml")
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.crewtime/config.json, creating it with annotated defaults on
// first run. Lines starting with // are treated as comments and stripped
// before JSON parsing.
func Load() (Config, error) {
	path, err := configFilePath()
	if err != nil {
		return defaultConfig(), err
	}
	return loadFrom(path)
}

// loadFrom is Load with an explicit path, split out for tests.
func loadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return defaultConfig(), nil
	}
	if err != nil {
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cleaned := stripLineComments(data)
	var cfg Config
	if err := json.Unmarshal(cleaned, &cfg); err != nil {
		return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	// Fill zero-value fields with built-in defaults so callers always get
	// a usable Config even if the user only partially fills in the file.
	if cfg.Engine.DefaultBreakMinutes == 0 {
		cfg.Engine.DefaultBreakMinutes = DefaultBreakMinutes
	}
	if cfg.Engine.BreakGraceMinutes == 0 {
		cfg.Engine.BreakGraceMinutes = DefaultBreakGraceMinutes
	}
	if cfg.Engine.ShiftLimitHours == 0 {
		cfg.Engine.ShiftLimitHours = DefaultShiftLimitHours
	}
	if cfg.Engine.OvertimeAfterHours == 0 {
		cfg.Engine.OvertimeAfterHours = DefaultOvertimeAfterHours
	}
	if cfg.Outlook.TenantID == "" {
		cfg.Outlook.TenantID = DefaultTenantID
	}
	if cfg.Outlook.ClientID == "" {
		cfg.Outlook.ClientID = DefaultClientID
	}
	if cfg.Outlook.DefaultProduction == "" {
		cfg.Outlook.DefaultProduction = DefaultProduction
	}

	return cfg, nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
