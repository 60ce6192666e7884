package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchPattern string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the vault and report note changes",
	Long: `Watch the vault for note changes until interrupted. After each change
the review queue is rebuilt and the most overdue note is reported.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		events, err := svc.Watch(ctx, watchPattern)
		if err != nil {
			fatal("Failed to start watcher", err)
		}

		fmt.Println("watching for changes (ctrl-c to stop)")
		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-events:
				if !ok {
					return
				}
				fmt.Printf("%s %s\n", e.Type, e.ID)

				entry, found, err := svc.NextDue(ctx)
				if err != nil {
					fmt.Printf("queue rebuild failed: %v\n", err)
					continue
				}
				if found {
					fmt.Printf("next due: %s\n", entry.Note.ID)
				}
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchPattern, "pattern", "", "Only report notes matching this glob")
}
