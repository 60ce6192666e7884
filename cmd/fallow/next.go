package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the most overdue note",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}
		entry, ok, err := svc.NextDue(context.Background())
		if err != nil {
			fatal("Failed to build review queue", err)
		}
		if !ok {
			return
		}
		fmt.Printf("%s (due %s)\n", entry.Note.ID, entry.Due.Format(time.RFC3339))
	},
}

func init() {
	rootCmd.AddCommand(nextCmd)
}
