package commands

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewPasswdCmd creates the passwd command
func NewPasswdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Change the current user's password",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPasswd()
		},
	}
}

func runPasswd() error {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return fmt.Errorf("passwd requires an interactive terminal")
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	if !app.Session.IsAuthenticated() {
		return fmt.Errorf("not logged in. Please run 'clusterview login' first")
	}

	oldPassword, err := readPassword("Current password: ")
	if err != nil {
		return err
	}
	newPassword, err := readPassword("New password: ")
	if err != nil {
		return err
	}
	confirm, err := readPassword("Confirm new password: ")
	if err != nil {
		return err
	}
	if newPassword != confirm {
		return fmt.Errorf("passwords do not match")
	}

	if err := app.Client.ChangePassword(cmdContext(), oldPassword, newPassword); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	fmt.Println("✓ Password changed")
	return nil
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(raw), nil
}
