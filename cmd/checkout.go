package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/slateworks/crewtime/internal/config"
	"github.com/slateworks/crewtime/internal/model"
	"github.com/slateworks/crewtime/internal/storage"
	"github.com/slateworks/crewtime/internal/timecalc"
)

var checkoutNotes string

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Check out and compute the day's hours and pay",
	Args:  cobra.NoArgs,
	RunE:  runCheckout,
}

func init() {
	checkoutCmd.Flags().StringVar(&checkoutNotes, "notes", "", "Append notes to the card")
}

func runCheckout(cmd *cobra.Command, args []string) error {
	now := time.Now()

	base := mustBaseDir()
	cfg := mustConfig()

	open, openDay, err := storage.FindOpenTimecard(base)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if open == nil {
		fmt.Fprintln(os.Stderr, "No open timecard to check out.")
		os.Exit(1)
	}

	if checkoutNotes != "" {
		if open.Notes != nil {
			merged := *open.Notes + "\n" + checkoutNotes
			open.Notes = &merged
		} else {
			open.Notes = &checkoutNotes
		}
	}

	res, err := finalizeTimecard(base, cfg, open, openDay, now)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Printf("Checked out of %q.\n", open.Production)
	fmt.Printf("  Hours: %s", timecalc.FormatHours(res.TotalHours))
	if res.BreakMinutes > 0 {
		fmt.Printf(" (break %gm)", res.BreakMinutes)
	}
	fmt.Println()
	fmt.Printf("  Pay:   %.2f\n", res.TotalPay)
	if !res.IsValid {
		fmt.Println("  Card needs attention before it can be submitted:")
		for _, msg := range res.ValidationErrors {
			fmt.Printf("    - %s\n", msg)
		}
	}
	return nil
}

// finalizeTimecard closes a card at stopTime, runs the calculation engine and
// persists the card with its computed totals. An unfinished break is closed
// at the wrap time.
func finalizeTimecard(base string, cfg config.Config, tc *model.Timecard, day time.Time, stopTime time.Time) (model.CalculationResult, error) {
	end := stopTime
	tc.CheckOut = &end
	if tc.BreakStart != nil && tc.BreakEnd == nil {
		fmt.Fprintln(os.Stderr, "Warning: break never ended; closing it at checkout time")
		tc.BreakEnd = &end
	}

	calc := newCalculator(cfg, base)
	res, err := calc.Calculate(context.Background(), *tc)
	if err != nil {
		return model.CalculationResult{}, err
	}

	tc.TotalHours = &res.TotalHours
	tc.BreakMinutes = &res.BreakMinutes
	tc.TotalPay = &res.TotalPay

	if err := storage.UpdateTimecard(base, day, *tc); err != nil {
		return model.CalculationResult{}, err
	}
	return res, nil
}
