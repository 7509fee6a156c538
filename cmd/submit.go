package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/slateworks/crewtime/internal/model"
	"github.com/slateworks/crewtime/internal/storage"
)

var submitCmd = &cobra.Command{
	Use:   "submit <timecard-id>",
	Short: "Submit a draft timecard for approval",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubmit,
}

func runSubmit(cmd *cobra.Command, args []string) error {
	base := mustBaseDir()
	cfg := mustConfig()

	tc, day, err := storage.FindTimecard(base, args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if !model.CanTransition(tc.Status, model.StatusSubmitted) {
		fmt.Fprintf(os.Stderr, "Cannot submit a %s card.\n", tc.Status)
		os.Exit(1)
	}
	if tc.CheckOut == nil {
		fmt.Fprintln(os.Stderr, "Cannot submit an open card; check out first.")
		os.Exit(1)
	}

	// Re-run the engine so submission always reflects the card's current
	// fields, not totals stored at checkout time.
	calc := newCalculator(cfg, base)
	res, err := calc.Calculate(context.Background(), *tc)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if !res.IsValid {
		fmt.Fprintln(os.Stderr, "Timecard failed validation:")
		for _, msg := range res.ValidationErrors {
			fmt.Fprintf(os.Stderr, "  - %s\n", msg)
		}
		os.Exit(1)
	}

	tc.TotalHours = &res.TotalHours
	tc.BreakMinutes = &res.BreakMinutes
	tc.TotalPay = &res.TotalPay
	tc.Status = model.StatusSubmitted

	if err := storage.UpdateTimecard(base, day, *tc); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Printf("Submitted card %s (%s, %.2f hours, pay %.2f)\n",
		tc.ID, tc.WorkDate, res.TotalHours, res.TotalPay)
	return nil
}
