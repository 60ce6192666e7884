package main

import (
	"context"

	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review [note-id]",
	Short: "Review a note and reschedule it",
	Long: `Run one review: resolve the note's spacing method, prompt for a review
outcome, and persist the new interval, ease, and last-reviewed time in a
single write. With no argument, the most overdue note is reviewed.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}
		ctx := context.Background()

		id := ""
		if len(args) == 1 {
			id = args[0]
		}
		if id == "" {
			entry, ok, err := svc.NextDue(ctx)
			if err != nil {
				fatal("Failed to build review queue", err)
			}
			if !ok {
				return
			}
			id = entry.Note.ID
		}

		if err := exitOnCancel(svc.Review(ctx, id)); err != nil {
			fatal("Failed to review note", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}
