package main

import (
	"context"

	"github.com/spf13/cobra"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard <note-id>",
	Short: "Register a note with the scheduler",
	Long: `Onboard a note: prompt for context membership and (if more than one
spacing method is registered) an explicit method choice, then write the
method's default interval and ease into the note's frontmatter.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}
		if err := exitOnCancel(svc.Onboard(context.Background(), args[0])); err != nil {
			fatal("Failed to onboard note", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(onboardCmd)
}
