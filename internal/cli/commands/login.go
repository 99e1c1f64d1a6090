package commands

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/clusterview-dev/clusterview/internal/nav"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the monitoring platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(username, password)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username (or set CLUSTERVIEW_USERNAME)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set CLUSTERVIEW_PASSWORD, will prompt if not provided)")

	return cmd
}

func runLogin(username, password string) error {
	// Check for environment variables (useful for CI/CD)
	if username == "" {
		username = os.Getenv("CLUSTERVIEW_USERNAME")
	}
	if password == "" {
		password = os.Getenv("CLUSTERVIEW_PASSWORD")
	}

	interactive := term.IsTerminal(int(syscall.Stdin))

	if username == "" {
		if !interactive {
			return fmt.Errorf("username is required (use --username flag or CLUSTERVIEW_USERNAME env var)")
		}
		prompt := promptui.Prompt{
			Label: "Username",
			Validate: func(input string) error {
				if strings.TrimSpace(input) == "" {
					return fmt.Errorf("username must not be empty")
				}
				return nil
			},
		}
		entered, err := prompt.Run()
		if err != nil {
			return fmt.Errorf("login cancelled: %w", err)
		}
		username = strings.TrimSpace(entered)
	}

	if password == "" {
		if !interactive {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or CLUSTERVIEW_PASSWORD env var)")
		}
		fmt.Print("Password: ")
		bytePassword, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = string(bytePassword)
		fmt.Println() // New line after password input
	}

	app, err := newApp()
	if err != nil {
		return err
	}

	// Land on the login view first so a rejected credential is handled
	// locally instead of tripping the pipeline's session-expired path
	app.Nav.Navigate(nav.LoginPath)

	fmt.Printf("Logging in to %s...\n", app.Cfg.API.BaseURL)

	result := app.Session.Login(cmdContext(), username, password)
	if !result.Success {
		return fmt.Errorf("login failed: %s", result.Message)
	}

	fmt.Println("✓ Login successful!")
	if profile := app.Session.Profile(); profile != nil {
		fmt.Printf("  User: %s (%s)\n", profile.User.Username, profile.User.Email)
		if len(profile.Roles) > 0 {
			fmt.Printf("  Roles: %s\n", strings.Join(profile.Roles, ", "))
		}
	}

	return nil
}
