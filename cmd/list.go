package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/slateworks/crewtime/internal/model"
	"github.com/slateworks/crewtime/internal/storage"
	"github.com/slateworks/crewtime/internal/timecalc"
)

var (
	listToday bool
	listWeek  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List timecards",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listToday, "today", false, "Show today's cards")
	listCmd.Flags().BoolVar(&listWeek, "week", false, "Show this week's cards")
}

func runList(cmd *cobra.Command, args []string) error {
	now := time.Now()
	base := mustBaseDir()

	var from, to time.Time
	switch {
	case listWeek:
		from, to = timecalc.WeekRange(now)
	default:
		// Default to today (covers --today and the bare command).
		from = timecalc.StartOfDay(now)
		to = timecalc.EndOfDay(now)
	}

	cards, err := storage.LoadRange(base, from, to)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	printList(cards)
	return nil
}

// printList groups timecards by date and prints them.
func printList(cards []model.Timecard) {
	if len(cards) == 0 {
		fmt.Println("No timecards found.")
		return
	}

	var currentDay string
	for _, tc := range cards {
		if tc.WorkDate != currentDay {
			fmt.Println(tc.WorkDate)
			currentDay = tc.WorkDate
		}

		inStr := "--:--"
		outStr := "open"
		if tc.CheckIn != nil {
			inStr = tc.CheckIn.Format("15:04")
		}
		if tc.CheckOut != nil {
			outStr = tc.CheckOut.Format("15:04")
		}

		hours := ""
		if tc.TotalHours != nil {
			hours = fmt.Sprintf(" (%s)", timecalc.FormatHours(*tc.TotalHours))
		}

		fmt.Printf("%s–%s  %-20s %-10s [%s]%s  %s\n",
			inStr, outStr, tc.Production, tc.CrewID, tc.Status, hours, tc.ID)
	}
}
