package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fallow-md/fallow"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of fallow",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fallow version %s\n", fallow.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
