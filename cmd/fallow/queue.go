package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var queueJSON bool

type queueRow struct {
	ID  string    `json:"id"`
	Due time.Time `json:"due"`
}

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "List all due notes, most overdue first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}
		q, err := svc.BuildQueue(context.Background())
		if err != nil {
			fatal("Failed to build review queue", err)
		}
		if q.NoActiveContexts {
			fmt.Println("no active contexts; activate one to build a review queue")
			return
		}

		if queueJSON {
			rows := make([]queueRow, 0, len(q.Entries))
			for _, e := range q.Entries {
				rows = append(rows, queueRow{ID: e.Note.ID, Due: e.Due})
			}
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(rows); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		if len(q.Entries) == 0 {
			fmt.Println("nothing is due for review")
			return
		}
		for _, e := range q.Entries {
			fmt.Printf("%s\t(due %s)\n", e.Note.ID, e.Due.Format(time.RFC3339))
		}
	},
}

func init() {
	rootCmd.AddCommand(queueCmd)
	queueCmd.Flags().BoolVar(&queueJSON, "json", false, "Output in JSON format")
}
