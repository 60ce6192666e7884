package main

import (
	"context"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <note-id>",
	Short: "Take a note out of the scheduler",
	Long: `Remove a note from scheduling: delete its interval, ease,
last-reviewed, contexts, and method frontmatter fields in one write.
The note file itself is untouched.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}
		if err := svc.Remove(context.Background(), args[0]); err != nil {
			fatal("Failed to remove note from scheduling", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
