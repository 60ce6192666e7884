package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fallow-md/fallow"
	"github.com/fallow-md/fallow/pkg/prompt"
	"github.com/fallow-md/fallow/pkg/schedule"
)

var (
	verbose   bool
	vaultPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fallow",
	Short: "Spaced repetition for Markdown notes with frontmatter",
	Long: `Fallow schedules whole notes for review on spaced intervals.
Review outcomes grade writing progress, not recall; each review pushes
the note's next due date out according to a SuperMemo-2.0 variant.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&vaultPath, "vault", ".", "Path to the note vault")
}

// openService builds a Service for an existing vault, wired with the
// terminal prompter and stdout notifications.
func openService() (*fallow.Service, error) {
	return fallow.New(vaultPath,
		fallow.WithMustExist(true),
		fallow.WithLogger(slog.Default()),
		fallow.WithPrompter(prompt.NewTerminal()),
		fallow.WithNotifier(schedule.NotifierFunc(func(msg string) {
			fmt.Println(msg)
		})),
	)
}

// exitOnCancel maps user cancellation to a clean exit instead of a failure.
func exitOnCancel(err error) error {
	if errors.Is(err, schedule.ErrCancelled) {
		fmt.Println("cancelled")
		return nil
	}
	return err
}
