package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fallow-md/fallow/pkg/schedule"
)

var (
	methodAlgorithm string
	methodInterval  float64
	methodEase      float64
	methodOptions   []string
)

var methodCmd = &cobra.Command{
	Use:   "method",
	Short: "Manage spacing methods",
}

var methodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered spacing methods",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}
		for _, m := range svc.Settings().Methods {
			fmt.Printf("%s\t%s\tinterval=%v", m.Name, m.Algorithm, m.DefaultInterval)
			if m.DefaultEase > 0 {
				fmt.Printf("\tease=%v", m.DefaultEase)
			}
			fmt.Printf("\toptions=%s\n", strings.Join(m.OptionNames(), ","))
		}
	},
}

var methodAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a new spacing method",
	Long: `Register a spacing method. Review options are name=score pairs, e.g.

  fallow method add "Deep work" --option Struggled=1 --option Flowed=5`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}

		m := schedule.Method{
			Name:            args[0],
			Algorithm:       schedule.AlgorithmKind(methodAlgorithm),
			DefaultInterval: methodInterval,
			DefaultEase:     methodEase,
		}
		for _, spec := range methodOptions {
			opt, err := parseOption(spec)
			if err != nil {
				fatal("Invalid review option", err)
			}
			m.ReviewOptions = append(m.ReviewOptions, opt)
		}
		if len(m.ReviewOptions) == 0 {
			m.ReviewOptions = schedule.DefaultMethod().ReviewOptions
		}

		if err := svc.Settings().AddMethod(m); err != nil {
			fatal("Failed to add method", err)
		}
		fmt.Printf("Method %q added.\n", m.Name)
	},
}

var methodRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a spacing method (cascades to bound contexts)",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}
		if err := svc.Settings().RenameMethod(args[0], args[1]); err != nil {
			fatal("Failed to rename method", err)
		}
		fmt.Printf("Method %q renamed to %q.\n", args[0], args[1])
	},
}

var methodRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Delete a spacing method (the last one cannot be deleted)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}
		if err := svc.Settings().RemoveMethod(args[0]); err != nil {
			fatal("Failed to remove method", err)
		}
		fmt.Printf("Method %q removed.\n", args[0])
	},
}

// parseOption parses a "name=score" review option spec.
func parseOption(spec string) (schedule.ReviewOption, error) {
	name, scoreStr, found := strings.Cut(spec, "=")
	if !found || name == "" {
		return schedule.ReviewOption{}, fmt.Errorf("expected name=score, got %q", spec)
	}
	var s float64
	if _, err := fmt.Sscanf(scoreStr, "%g", &s); err != nil {
		return schedule.ReviewOption{}, fmt.Errorf("invalid score in %q: %w", spec, err)
	}
	if s < 0 || s > 5 {
		return schedule.ReviewOption{}, fmt.Errorf("score %v out of range [0, 5]", s)
	}
	return schedule.ReviewOption{Name: name, Score: &s}, nil
}

func init() {
	rootCmd.AddCommand(methodCmd)
	methodCmd.AddCommand(methodListCmd)
	methodCmd.AddCommand(methodAddCmd)
	methodCmd.AddCommand(methodRenameCmd)
	methodCmd.AddCommand(methodRemoveCmd)

	methodAddCmd.Flags().StringVar(&methodAlgorithm, "algorithm", string(schedule.AlgorithmSM2), "Algorithm selector")
	methodAddCmd.Flags().Float64Var(&methodInterval, "interval", 1, "Default interval in days")
	methodAddCmd.Flags().Float64Var(&methodEase, "ease", 2.5, "Default ease factor (SuperMemo2.0 only)")
	methodAddCmd.Flags().StringArrayVar(&methodOptions, "option", nil, "Review option as name=score (repeatable)")
}
