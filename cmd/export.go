package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/slateworks/crewtime/internal/model"
	"github.com/slateworks/crewtime/internal/storage"
	"github.com/slateworks/crewtime/internal/timecalc"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export this week's timecards to stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, md")
}

func runExport(cmd *cobra.Command, args []string) error {
	now := time.Now()
	base := mustBaseDir()

	from, to := timecalc.WeekRange(now)

	cards, err := storage.LoadRange(base, from, to)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	switch exportFormat {
	case "json":
		data, err := json.MarshalIndent(cards, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "error encoding JSON:", err)
			os.Exit(2)
		}
		fmt.Println(string(data))
	case "md":
		printList(cards)
	default: // csv
		printCSV(cards)
	}

	return nil
}

func printCSV(cards []model.Timecard) {
	fmt.Println("work_date,crew,production,status,check_in,check_out,break_minutes,total_hours,total_pay,manually_edited")
	for _, tc := range cards {
		inStr := ""
		if tc.CheckIn != nil {
			inStr = tc.CheckIn.Format(time.RFC3339)
		}
		outStr := ""
		if tc.CheckOut != nil {
			outStr = tc.CheckOut.Format(time.RFC3339)
		}
		breakMin := 0.0
		if tc.BreakMinutes != nil {
			breakMin = *tc.BreakMinutes
		}
		hours := 0.0
		if tc.TotalHours != nil {
			hours = *tc.TotalHours
		}
		pay := 0.0
		if tc.TotalPay != nil {
			pay = *tc.TotalPay
		}
		fmt.Printf("%s,%s,%s,%s,%s,%s,%g,%.2f,%.2f,%t\n",
			csvEscape(tc.WorkDate),
			csvEscape(tc.CrewID),
			csvEscape(tc.Production),
			csvEscape(string(tc.Status)),
			csvEscape(inStr),
			csvEscape(outStr),
			breakMin,
			hours,
			pay,
			tc.ManuallyEdited,
		)
	}
}

// csvEscape quotes a field when it contains a separator, quote or newline.
func csvEscape(s string) string {
	if strings.ContainsAny(s, ",\"\n\r") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
