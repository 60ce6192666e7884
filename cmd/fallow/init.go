package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/fallow-md/fallow"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a vault for scheduling",
	Long: `Create the vault directory (if missing) and seed .fallow/settings.yml
with a default spacing method, so the vault always has at least one.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := fallow.New(vaultPath,
			fallow.WithAutoInit(true),
			fallow.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to initialize vault", err)
		}
		fmt.Printf("Vault initialized at %s (settings: %s)\n", vaultPath, svc.Repo.SettingsPath())
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
