package cmd

import (
	"fmt"
	"os"

	"github.com/slateworks/crewtime/internal/config"
	"github.com/slateworks/crewtime/internal/engine"
	"github.com/slateworks/crewtime/internal/rates"
	"github.com/slateworks/crewtime/internal/storage"
)

// mustBaseDir resolves the data directory or exits.
func mustBaseDir() string {
	base, err := storage.BaseDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return base
}

// mustConfig loads the config file or exits.
func mustConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return cfg
}

// engineConfig maps the config-file tunables onto the engine's Config.
func engineConfig(cfg config.Config) engine.Config {
	return engine.Config{
		DefaultBreakMinutes: cfg.Engine.DefaultBreakMinutes,
		BreakGraceMinutes:   cfg.Engine.BreakGraceMinutes,
		ShiftLimitHours:     cfg.Engine.ShiftLimitHours,
		OvertimeAfterHours:  cfg.Engine.OvertimeAfterHours,
	}
}

// newCalculator builds the calculation engine backed by the rates roster.
func newCalculator(cfg config.Config, base string) *engine.Calculator {
	return engine.New(engineConfig(cfg), rates.NewFileSource(cfg.RatesFilePath(base)))
}

// resolveCrew picks the crew member from a flag or the config default.
func resolveCrew(flagValue string, cfg config.Config) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg.Crew.DefaultID != "" {
		return cfg.Crew.DefaultID
	}
	fmt.Fprintln(os.Stderr, "no crew member: set crew.default_id in ~/.crewtime/config.json or pass --crew")
	os.Exit(1)
	return ""
}
