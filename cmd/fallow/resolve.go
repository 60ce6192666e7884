package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <note-id>",
	Short: "Show which spacing method governs a note",
	Long: `Resolve the note's governing spacing method. If the method had to be
inferred (from the note's first context or the registry fallback), the
choice is written back to the note so later resolutions are stable.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}
		res, err := svc.Resolve(context.Background(), args[0])
		if err != nil {
			fatal("Failed to resolve method", err)
		}
		fmt.Printf("%s is governed by method %q\n", args[0], res.Method.Name)
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
