package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/slateworks/crewtime/internal/storage"
	"github.com/slateworks/crewtime/internal/timecalc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the open timecard or today's totals",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	now := time.Now()
	base := mustBaseDir()

	open, _, err := storage.FindOpenTimecard(base)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if open != nil {
		fmt.Println("On the clock:")
		fmt.Printf("  Production: %s\n", open.Production)
		fmt.Printf("  Crew:       %s\n", open.CrewID)
		if open.CheckIn != nil {
			elapsed := int64(now.Sub(*open.CheckIn).Seconds())
			fmt.Printf("  Since:      %s\n", open.CheckIn.Format("15:04"))
			fmt.Printf("  Elapsed:    %s\n", timecalc.FormatDurationHHMMSS(elapsed))
		}
		if open.BreakStart != nil && open.BreakEnd == nil {
			fmt.Printf("  On break since %s\n", open.BreakStart.Format("15:04"))
		}
		return nil
	}

	// Off the clock, show today's closed cards instead.
	df, err := storage.LoadDay(base, now)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var totalHours, totalPay float64
	for _, tc := range df.Timecards {
		if tc.TotalHours != nil {
			totalHours += *tc.TotalHours
		}
		if tc.TotalPay != nil {
			totalPay += *tc.TotalPay
		}
	}

	fmt.Println("Off the clock.")
	fmt.Printf("Today: %d card(s), %s, pay %.2f\n",
		len(df.Timecards), timecalc.FormatHours(totalHours), totalPay)
	return nil
}
