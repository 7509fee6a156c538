package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/slateworks/crewtime/internal/model"
	"github.com/slateworks/crewtime/internal/storage"
)

var (
	checkinCrew  string
	checkinNotes string
)

var checkinCmd = &cobra.Command{
	Use:   "checkin <production>",
	Short: "Check in on a production",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckin,
}

func init() {
	checkinCmd.Flags().StringVar(&checkinCrew, "crew", "", "Crew member ID (default from config)")
	checkinCmd.Flags().StringVar(&checkinNotes, "notes", "", "Optional notes")
}

func runCheckin(cmd *cobra.Command, args []string) error {
	production := args[0]
	now := time.Now()

	base := mustBaseDir()
	cfg := mustConfig()
	crew := resolveCrew(checkinCrew, cfg)

	// An open card means a forgotten checkout; wrap it before starting a new day.
	open, openDay, err := storage.FindOpenTimecard(base)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if open != nil {
		fmt.Fprintf(os.Stderr, "Warning: auto-checking-out open card on %q from %s\n",
			open.Production, open.WorkDate)
		if _, err := finalizeTimecard(base, cfg, open, openDay, now); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	tc := model.Timecard{
		ID:         uuid.NewString(),
		CrewID:     crew,
		Production: production,
		WorkDate:   now.Format("2006-01-02"),
		CheckIn:    &now,
		Status:     model.StatusDraft,
		Source:     "manual",
	}
	if checkinNotes != "" {
		tc.Notes = &checkinNotes
	}

	if err := storage.UpdateTimecard(base, now, tc); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Printf("Checked in on %q at %s (card %s)\n", production, now.Format("15:04:05"), tc.ID)
	return nil
}
