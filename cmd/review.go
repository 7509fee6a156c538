package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/slateworks/crewtime/internal/model"
	"github.com/slateworks/crewtime/internal/storage"
)

var rejectReason string

var approveCmd = &cobra.Command{
	Use:   "approve <timecard-id>",
	Short: "Approve a submitted timecard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return transitionCard(args[0], model.StatusApproved, "")
	},
}

var rejectCmd = &cobra.Command{
	Use:   "reject <timecard-id>",
	Short: "Reject a submitted timecard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return transitionCard(args[0], model.StatusRejected, rejectReason)
	},
}

var reopenCmd = &cobra.Command{
	Use:   "reopen <timecard-id>",
	Short: "Return a rejected timecard to draft for correction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return transitionCard(args[0], model.StatusDraft, "")
	},
}

func init() {
	rejectCmd.Flags().StringVar(&rejectReason, "reason", "", "Reason recorded on the card")
}

// transitionCard moves a card to the requested status, enforcing the
// workflow table, and optionally appends a review note.
func transitionCard(id string, to model.Status, note string) error {
	base := mustBaseDir()

	tc, day, err := storage.FindTimecard(base, id)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if !model.CanTransition(tc.Status, to) {
		fmt.Fprintf(os.Stderr, "Cannot move a %s card to %s.\n", tc.Status, to)
		os.Exit(1)
	}

	if note != "" {
		line := "Rejected: " + note
		if tc.Notes != nil {
			merged := *tc.Notes + "\n" + line
			tc.Notes = &merged
		} else {
			tc.Notes = &line
		}
	}

	tc.Status = to
	if err := storage.UpdateTimecard(base, day, *tc); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Printf("Card %s is now %s.\n", tc.ID, to)
	return nil
}
