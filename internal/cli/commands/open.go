package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewOpenCmd creates the open command, which drives the navigation guard
// directly: useful to check where a path would land before scripting
// against it.
func NewOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>",
		Short: "Navigate to a console path and show where you land",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}

			decision := app.Nav.Navigate(args[0])
			if decision.Allowed {
				fmt.Printf("✓ %s\n", decision.Title)
				fmt.Printf("  Location: %s\n", decision.Target)
				return nil
			}

			fmt.Println("Redirected to login (authentication required)")
			fmt.Printf("  Location: %s\n", decision.Target)
			return nil
		},
	}
}
