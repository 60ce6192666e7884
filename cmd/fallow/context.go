package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fallow-md/fallow/pkg/schedule"
)

var (
	contextActive bool
	contextMethod string
)

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Manage review contexts",
}

var contextListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered contexts",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}
		for _, c := range svc.Settings().Contexts {
			state := "inactive"
			if c.Active {
				state = "active"
			}
			if c.Method != "" {
				fmt.Printf("%s\t%s\tmethod=%s\n", c.Name, state, c.Method)
			} else {
				fmt.Printf("%s\t%s\n", c.Name, state)
			}
		}
	},
}

var contextAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a new context",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}
		c := schedule.ReviewContext{Name: args[0], Active: contextActive, Method: contextMethod}
		if c.Method != "" {
			if _, ok := svc.Settings().MethodByName(c.Method); !ok {
				fatal("Failed to add context", fmt.Errorf("method %q not found", c.Method))
			}
		}
		if err := svc.Settings().AddContext(c); err != nil {
			fatal("Failed to add context", err)
		}
		fmt.Printf("Context %q added.\n", c.Name)
	},
}

var contextToggleCmd = &cobra.Command{
	Use:   "toggle <name>",
	Short: "Flip a context's active flag",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}
		active, err := svc.Settings().ToggleContext(args[0])
		if err != nil {
			fatal("Failed to toggle context", err)
		}
		if active {
			fmt.Printf("Context %q is now active.\n", args[0])
		} else {
			fmt.Printf("Context %q is now inactive.\n", args[0])
		}
	},
}

var contextBindCmd = &cobra.Command{
	Use:   "bind <name> [method]",
	Short: "Bind a context to a spacing method (omit method to unbind)",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}
		method := ""
		if len(args) == 2 {
			method = args[1]
		}
		if err := svc.Settings().BindContext(args[0], method); err != nil {
			fatal("Failed to bind context", err)
		}
		if method == "" {
			fmt.Printf("Context %q unbound.\n", args[0])
		} else {
			fmt.Printf("Context %q bound to method %q.\n", args[0], method)
		}
	},
}

var contextRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Delete a context",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}
		if err := svc.Settings().RemoveContext(args[0]); err != nil {
			fatal("Failed to remove context", err)
		}
		fmt.Printf("Context %q removed.\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(contextCmd)
	contextCmd.AddCommand(contextListCmd)
	contextCmd.AddCommand(contextAddCmd)
	contextCmd.AddCommand(contextToggleCmd)
	contextCmd.AddCommand(contextBindCmd)
	contextCmd.AddCommand(contextRemoveCmd)

	contextAddCmd.Flags().BoolVar(&contextActive, "active", true, "Register the context as active")
	contextAddCmd.Flags().StringVar(&contextMethod, "method", "", "Bind a spacing method by name")
}
