package cmd

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/slateworks/crewtime/internal/model"
	"github.com/slateworks/crewtime/internal/payroll"
	"github.com/slateworks/crewtime/internal/storage"
	"github.com/slateworks/crewtime/internal/timecalc"
)

var (
	reportFormat     string
	reportProduction string
	reportAll        bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Weekly payroll report with overtime and double-time premiums",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "md", "Output format: md, csv, json")
	reportCmd.Flags().StringVar(&reportProduction, "production", "", "Restrict to one production")
	reportCmd.Flags().BoolVar(&reportAll, "all", false, "Include cards in any status (default: approved only)")
}

// crewWeek accumulates one crew member's cards for the report week.
type crewWeek struct {
	crewID string
	days   []model.DailyEntry
	pay    float64
}

func runReport(cmd *cobra.Command, args []string) error {
	now := time.Now()
	base := mustBaseDir()

	from, to := timecalc.WeekRange(now)
	label := timecalc.ISOWeekLabel(now)

	cards, err := storage.LoadRange(base, from, to)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Aggregate per crew member. Each closed card contributes a per-day hour
	// figure so the adjusted-hours ladder applies day by day, not to the
	// week's flat total.
	weeks := map[string]*crewWeek{}
	var order []string
	for _, tc := range cards {
		if reportProduction != "" && tc.Production != reportProduction {
			continue
		}
		if !reportAll && tc.Status != model.StatusApproved {
			continue
		}
		if tc.TotalHours == nil {
			continue
		}

		w, seen := weeks[tc.CrewID]
		if !seen {
			w = &crewWeek{crewID: tc.CrewID}
			weeks[tc.CrewID] = w
			order = append(order, tc.CrewID)
		}
		if len(tc.DailyEntries) > 0 {
			w.days = append(w.days, tc.DailyEntries...)
		} else {
			w.days = append(w.days, model.DailyEntry{WorkDate: tc.WorkDate, HoursWorked: *tc.TotalHours})
		}
		if tc.TotalPay != nil {
			w.pay += *tc.TotalPay
		}
	}
	sort.Strings(order)

	var grand payroll.Breakdown
	var grandPay float64
	rows := make(map[string]payroll.Breakdown, len(weeks))
	for id, w := range weeks {
		b := payroll.GetBreakdown(model.Timecard{DailyEntries: w.days})
		rows[id] = b
		grand.Regular += b.Regular
		grand.Overtime += b.Overtime
		grand.DoubleTime += b.DoubleTime
		grand.Adjusted += b.Adjusted
		grandPay += w.pay
	}

	switch reportFormat {
	case "csv":
		fmt.Println("crew,regular_hours,overtime_hours,double_time_hours,adjusted_hours,total_pay")
		for _, id := range order {
			b := rows[id]
			fmt.Printf("%s,%.2f,%.2f,%.2f,%.2f,%.2f\n",
				id, b.Regular, b.Overtime, b.DoubleTime, b.Adjusted, weeks[id].pay)
		}
	case "json":
		fmt.Println("{")
		fmt.Printf("  \"week\": %q,\n", label)
		fmt.Println("  \"crew\": [")
		for i, id := range order {
			b := rows[id]
			comma := ","
			if i == len(order)-1 {
				comma = ""
			}
			fmt.Printf("    {\"crew\": %q, \"regular\": %.2f, \"overtime\": %.2f, \"double_time\": %.2f, \"adjusted\": %.2f, \"pay\": %.2f}%s\n",
				id, b.Regular, b.Overtime, b.DoubleTime, b.Adjusted, weeks[id].pay, comma)
		}
		fmt.Println("  ],")
		fmt.Printf("  \"total_adjusted_hours\": %.2f,\n", grand.Adjusted)
		fmt.Printf("  \"total_pay\": %.2f\n", grandPay)
		fmt.Println("}")
	default: // md
		fmt.Printf("Week %s payroll\n", label)
		fmt.Println("------------------------------------------------------------")
		fmt.Printf("%-16s%5s %5s %5s %10s %8s\n", "crew", "reg", "ot", "dt", "adjusted", "pay")
		for _, id := range order {
			b := rows[id]
			fmt.Printf("%-16s%5.1f %5.1f %5.1f %10.2f %8.2f\n",
				id, b.Regular, b.Overtime, b.DoubleTime, b.Adjusted, weeks[id].pay)
		}
		fmt.Println("------------------------------------------------------------")
		fmt.Printf("%-16s%5.1f %5.1f %5.1f %10.2f %8.2f\n",
			"Total", grand.Regular, grand.Overtime, grand.DoubleTime, grand.Adjusted, grandPay)
	}

	return nil
}
