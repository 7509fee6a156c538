package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/slateworks/crewtime/internal/storage"
)

var breakCmd = &cobra.Command{
	Use:   "break",
	Short: "Record the meal break on the open timecard",
}

var breakStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the meal break",
	Args:  cobra.NoArgs,
	RunE:  runBreakStart,
}

var breakEndCmd = &cobra.Command{
	Use:   "end",
	Short: "End the meal break",
	Args:  cobra.NoArgs,
	RunE:  runBreakEnd,
}

func init() {
	breakCmd.AddCommand(breakStartCmd)
	breakCmd.AddCommand(breakEndCmd)
}

func runBreakStart(cmd *cobra.Command, args []string) error {
	now := time.Now()
	base := mustBaseDir()

	open, openDay, err := storage.FindOpenTimecard(base)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if open == nil {
		fmt.Fprintln(os.Stderr, "No open timecard; check in first.")
		os.Exit(1)
	}
	if open.BreakStart != nil {
		fmt.Fprintf(os.Stderr, "Break already recorded at %s on this card.\n", open.BreakStart.Format("15:04"))
		os.Exit(1)
	}

	open.BreakStart = &now
	if err := storage.UpdateTimecard(base, openDay, *open); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Printf("Break started at %s\n", now.Format("15:04:05"))
	return nil
}

func runBreakEnd(cmd *cobra.Command, args []string) error {
	now := time.Now()
	base := mustBaseDir()

	open, openDay, err := storage.FindOpenTimecard(base)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if open == nil {
		fmt.Fprintln(os.Stderr, "No open timecard; check in first.")
		os.Exit(1)
	}
	if open.BreakStart == nil {
		fmt.Fprintln(os.Stderr, "No break in progress.")
		os.Exit(1)
	}
	if open.BreakEnd != nil {
		fmt.Fprintln(os.Stderr, "Break already ended on this card.")
		os.Exit(1)
	}

	open.BreakEnd = &now
	if err := storage.UpdateTimecard(base, openDay, *open); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	elapsed := now.Sub(*open.BreakStart)
	fmt.Printf("Break ended after %dm\n", int64(elapsed.Minutes()))
	return nil
}
